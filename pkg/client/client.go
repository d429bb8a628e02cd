// Package client provides the Sportradar request issuer: URL construction,
// the fixed courtesy delay before every call, status classification and
// request metrics.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Sternrassler/sportradar-client/pkg/quota"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for Sportradar client operations.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sportradar_requests_total",
		Help: "Total Sportradar requests by endpoint and status",
	}, []string{"endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sportradar_request_duration_seconds",
		Help:    "Sportradar request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	}, []string{"endpoint"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sportradar_errors_total",
		Help: "Total Sportradar errors by class",
	}, []string{"class"})
)

// Page selects a window of a paginated endpoint.
type Page struct {
	Offset int
	Limit  int
}

// Response is a fully read 200 OK response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	URL        string
}

// Client is the Sportradar request issuer.
// Calls are sequential and blocking; the client holds no per-call state
// beyond the observational quota tracker.
type Client struct {
	httpClient *http.Client
	quota      *quota.Tracker
	config     Config
	logger     zerolog.Logger
}

// New creates a new Sportradar client.
func New(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := log.With().
		Str("component", "sportradar-client").
		Str("product", cfg.Product).
		Logger()

	httpClient := &http.Client{}
	if cfg.HTTPClient != nil {
		copied := *cfg.HTTPClient
		httpClient = &copied
	}
	httpClient.Timeout = cfg.Timeout

	return &Client{
		httpClient: httpClient,
		quota:      quota.NewTracker(logger),
		config:     cfg,
		logger:     logger,
	}, nil
}

// Config returns the configuration the client was built with.
func (c *Client) Config() Config {
	return c.config
}

// Quota returns the last plan quota reported by the API.
func (c *Client) Quota() quota.State {
	return c.quota.State()
}

// Get performs a GET request against an endpoint such as
// "seasons/sr:season:77453/summaries". page may be nil for unpaginated calls.
// Any status other than 200 is returned as an *APIError.
func (c *Client) Get(ctx context.Context, endpoint string, page *Page) (*Response, error) {
	endpoint = strings.Trim(endpoint, "/")
	if endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}

	label := endpointLabel(endpoint)
	rawURL := c.config.BuildURL(endpoint)

	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("wait before %s: %w", endpoint, err)
	}

	params := url.Values{}
	params.Set("api_key", c.config.APIKey)
	if page != nil {
		params.Set("offset", strconv.Itoa(page.Offset))
		params.Set("limit", strconv.Itoa(page.Limit))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader(c.config.Format))

	event := c.event().Str("endpoint", endpoint)
	if page != nil {
		event = event.Int("offset", page.Offset).Int("limit", page.Limit)
	}
	event.Msg("Calling endpoint")

	startTime := time.Now()
	defer func() {
		requestDuration.WithLabelValues(label).Observe(time.Since(startTime).Seconds())
	}()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		requestsTotal.WithLabelValues(label, "network_error").Inc()
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("HTTP request failed")
		return nil, fmt.Errorf("request %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if err := c.quota.UpdateFromHeaders(resp.Header); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to read plan quota from headers")
	}

	requestsTotal.WithLabelValues(label, strconv.Itoa(resp.StatusCode)).Inc()

	c.event().
		Str("endpoint", endpoint).
		Int("status_code", resp.StatusCode).
		Str("quota", c.quota.State().String()).
		Msg("Response received")

	if errClass := classifyStatus(resp.StatusCode); errClass != "" {
		errorsTotal.WithLabelValues(string(errClass)).Inc()
		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status_code", resp.StatusCode).
			Str("error_class", string(errClass)).
			Msg("Sportradar request error")

		return nil, &APIError{
			StatusCode: resp.StatusCode,
			ErrorClass: errClass,
			Reason:     reasonPhrase(resp),
			URL:        rawURL,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header.Clone(),
		Body:       body,
		URL:        rawURL,
	}, nil
}

// FetchPage fetches one page of an endpoint for the pagination aggregator.
// A limit of zero requests the endpoint without offset and limit parameters.
func (c *Client) FetchPage(ctx context.Context, endpoint string, offset, limit int) ([]byte, http.Header, error) {
	var page *Page
	if limit > 0 {
		page = &Page{Offset: offset, Limit: limit}
	}

	resp, err := c.Get(ctx, endpoint, page)
	if err != nil {
		return nil, nil, err
	}
	return resp.Body, resp.Header, nil
}

// wait sleeps for the configured request delay unless the context ends first.
func (c *Client) wait(ctx context.Context) error {
	if c.config.RequestDelay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(c.config.RequestDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// event returns the log event used for per-request lines.
func (c *Client) event() *zerolog.Event {
	if c.config.Verbose {
		return c.logger.Info()
	}
	return c.logger.Debug()
}

// endpointLabel reduces an endpoint to its first path segment so metric
// labels do not grow with every URN.
func endpointLabel(endpoint string) string {
	if i := strings.IndexByte(endpoint, '/'); i >= 0 {
		return endpoint[:i]
	}
	return endpoint
}

func acceptHeader(format string) string {
	if format == "xml" {
		return "application/xml"
	}
	return "application/json"
}
