package quota

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Prometheus metrics for plan quota tracking.
var (
	quotaCurrent = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sportradar_quota_current",
		Help: "Calls consumed in the current Sportradar plan window",
	})

	quotaAllotted = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sportradar_quota_allotted",
		Help: "Calls allotted by the Sportradar plan",
	})

	quotaExhaustedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sportradar_quota_exhausted_total",
		Help: "Total number of responses reporting an exhausted plan quota",
	})
)

// Tracker keeps the most recent quota state seen on a response.
type Tracker struct {
	mu     sync.RWMutex
	state  State
	logger zerolog.Logger
}

// NewTracker creates a new quota tracker.
func NewTracker(logger zerolog.Logger) *Tracker {
	return &Tracker{logger: logger}
}

// State returns the last recorded quota state.
func (t *Tracker) State() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// UpdateFromHeaders parses the plan quota headers and records them.
// Responses without the current-usage header leave the state untouched.
func (t *Tracker) UpdateFromHeaders(headers http.Header) error {
	currentStr := strings.TrimSpace(headers.Get(HeaderCurrent))
	if currentStr == "" {
		return nil
	}

	current, err := strconv.Atoi(currentStr)
	if err != nil {
		return fmt.Errorf("parse %s header: %w", HeaderCurrent, err)
	}

	allotted := 0
	if allottedStr := strings.TrimSpace(headers.Get(HeaderAllotted)); allottedStr != "" {
		allotted, err = strconv.Atoi(allottedStr)
		if err != nil {
			return fmt.Errorf("parse %s header: %w", HeaderAllotted, err)
		}
	}

	state := State{
		Current:   current,
		Allotted:  allotted,
		UpdatedAt: time.Now(),
	}

	t.mu.Lock()
	t.state = state
	t.mu.Unlock()

	quotaCurrent.Set(float64(current))
	if allotted > 0 {
		quotaAllotted.Set(float64(allotted))
	}

	if state.Exhausted() {
		quotaExhaustedTotal.Inc()
		t.logger.Warn().
			Int("quota_current", current).
			Int("quota_allotted", allotted).
			Msg("Sportradar plan quota exhausted")
		return nil
	}

	t.logger.Debug().
		Int("quota_current", current).
		Int("quota_allotted", allotted).
		Int("quota_remaining", state.Remaining()).
		Msg("Plan quota updated")

	return nil
}
