package pagination

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Prometheus metrics for pagination.
var (
	aggregationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sportradar_aggregations_total",
		Help: "Total endpoint aggregations by pagination kind",
	}, []string{"kind"})

	pagesFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sportradar_pages_fetched_total",
		Help: "Total pages fetched, including first pages",
	})
)

// PageFetcher is the interface the Sportradar client implements for
// single-page fetching. A limit of zero means "no offset/limit parameters".
type PageFetcher interface {
	FetchPage(ctx context.Context, endpoint string, offset, limit int) (body []byte, header http.Header, err error)
}

// Aggregator assembles every page of an endpoint into one payload.
type Aggregator struct {
	fetcher PageFetcher
	logger  zerolog.Logger
	verbose bool
}

// NewAggregator creates a new aggregator.
func NewAggregator(fetcher PageFetcher, logger zerolog.Logger) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		logger:  logger,
	}
}

// SetVerbose logs fetch progress at info level instead of debug.
func (a *Aggregator) SetVerbose(verbose bool) {
	a.verbose = verbose
}

// Aggregate fetches endpoint and, when the response is paginated, every
// remaining page, appending each page's key list to the first body.
// key may be empty for endpoints that are never paginated.
func (a *Aggregator) Aggregate(ctx context.Context, endpoint, key string) (Payload, error) {
	start := time.Now()
	logger := a.logger.With().
		Str("endpoint", endpoint).
		Str("fetch_id", uuid.NewString()).
		Logger()

	body, header, err := a.fetcher.FetchPage(ctx, endpoint, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("fetch first page: %w", err)
	}
	pagesFetchedTotal.Inc()

	content, err := Decode(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}

	p := Inspect(header)
	aggregationsTotal.WithLabelValues(p.Kind.String()).Inc()

	if p.Kind == Single {
		a.event(&logger).Msg("Fetch complete (not paginated)")
		return content, nil
	}

	logger.Debug().
		Int("returned", p.Returned).
		Int("max", p.Max).
		Msg("Pagination headers read")

	if p.Remaining() <= 0 {
		a.event(&logger).
			Int("records", content.Len(key)).
			Msg("Fetch complete (single page)")
		return content, nil
	}

	if p.Returned <= 0 {
		logger.Warn().
			Int("returned", p.Returned).
			Int("max", p.Max).
			Msg("Zero page size reported, treating response as a single page")
		return content, nil
	}

	if key == "" {
		return nil, &CollectionError{Endpoint: endpoint, Key: key}
	}

	records, err := content.collection(endpoint, key, 0)
	if err != nil {
		return nil, err
	}

	for offset, ok := p.Next(0); ok; offset, ok = p.Next(offset) {
		pageBody, _, err := a.fetcher.FetchPage(ctx, endpoint, offset, p.Returned)
		if err != nil {
			return nil, fmt.Errorf("fetch page at offset %d: %w", offset, err)
		}
		pagesFetchedTotal.Inc()

		page, err := Decode(pageBody)
		if err != nil {
			return nil, fmt.Errorf("%s (offset %d): %w", endpoint, offset, err)
		}

		items, err := page.collection(endpoint, key, offset)
		if err != nil {
			return nil, err
		}
		records = append(records, items...)
	}
	content[key] = records

	if len(records) != p.Max {
		logger.Debug().
			Int("records", len(records)).
			Int("max", p.Max).
			Msg("Record count differs from reported maximum")
	}

	a.event(&logger).
		Int("records", len(records)).
		Int("pages", p.Pages()).
		Dur("duration", time.Since(start)).
		Msg("Fetch complete")

	return content, nil
}

func (a *Aggregator) event(logger *zerolog.Logger) *zerolog.Event {
	if a.verbose {
		return logger.Info()
	}
	return logger.Debug()
}
