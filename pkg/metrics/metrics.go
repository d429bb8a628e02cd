// Package metrics exposes the Prometheus metrics of the Sportradar client.
// All metrics are defined in their respective packages (client, pagination,
// quota, cache) and registered through promauto on the default registry.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Registry is the default Prometheus registry used by the client.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Handler returns the /metrics handler for the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// NewMux returns a mux serving /metrics and /health.
func NewMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})
	return mux
}

// Serve exposes NewMux on addr until ctx is cancelled. It returns once the
// listener is bound; serving continues in the background.
func Serve(ctx context.Context, addr string, logger zerolog.Logger) (net.Addr, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	server := &http.Server{
		Handler:           NewMux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("Metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info().Str("addr", listener.Addr().String()).Msg("Serving metrics")
	return listener.Addr(), nil
}

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - sportradar_requests_total{endpoint, status} (Counter): Requests by first path segment and HTTP status
//   - sportradar_request_duration_seconds{endpoint} (Histogram): Request duration by first path segment
//   - sportradar_errors_total{class} (Counter): Errors by class (client, server, unexpected, network)
//
// Pagination Metrics (pkg/pagination):
//   - sportradar_aggregations_total{kind} (Counter): Aggregations by pagination kind (single, paginated)
//   - sportradar_pages_fetched_total (Counter): Pages fetched, first pages included
//
// Quota Metrics (pkg/quota):
//   - sportradar_quota_current (Gauge): Calls used in the current plan period
//   - sportradar_quota_allotted (Gauge): Calls allotted to the plan period
//   - sportradar_quota_exhausted_total (Counter): Responses reporting an exhausted quota
//
// Cache Metrics (pkg/cache):
//   - sportradar_cache_hits_total{layer="redis"} (Counter): Cache hits by layer
//   - sportradar_cache_misses_total (Counter): Cache misses
//   - sportradar_cache_bytes_total{operation} (Counter): Entry bytes served (get) or stored (set)
//   - sportradar_cache_errors_total{operation} (Counter): Cache operation errors
//
// Example Prometheus Queries:
//
//   # Quota usage
//   sportradar_quota_current / sportradar_quota_allotted
//
//   # Cache Hit Rate
//   sum(rate(sportradar_cache_hits_total[5m])) /
//   (sum(rate(sportradar_cache_hits_total[5m])) + sum(rate(sportradar_cache_misses_total[5m])))
//
//   # Pages per aggregation
//   rate(sportradar_pages_fetched_total[1h]) / sum(rate(sportradar_aggregations_total[1h]))
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(sportradar_request_duration_seconds_bucket[5m]))
