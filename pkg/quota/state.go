// Package quota tracks the Sportradar plan quota reported on every response.
// It reads the X-Plan-Quota-Current and X-Plan-Quota-Allotted headers and
// exposes the latest values for logging and metrics. The tracker is purely
// observational: it never blocks or delays a request.
package quota

import (
	"fmt"
	"time"
)

// Response headers carrying the plan quota.
const (
	HeaderCurrent  = "X-Plan-Quota-Current"
	HeaderAllotted = "X-Plan-Quota-Allotted"
)

// State is the last plan quota reported by the API.
type State struct {
	// Current is the number of calls already consumed in the plan window.
	Current int `json:"current"`

	// Allotted is the number of calls the plan allows. Zero when the
	// response did not carry the allotted header.
	Allotted int `json:"allotted"`

	// UpdatedAt is when the state was read from a response.
	UpdatedAt time.Time `json:"updated_at"`
}

// Known reports whether any response has carried quota headers yet.
func (s State) Known() bool {
	return !s.UpdatedAt.IsZero()
}

// Remaining returns the number of calls left in the plan window.
// Returns 0 when the allotment is unknown or already used up.
func (s State) Remaining() int {
	remaining := s.Allotted - s.Current
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Exhausted returns true if the plan allotment has been consumed.
func (s State) Exhausted() bool {
	return s.Known() && s.Allotted > 0 && s.Current >= s.Allotted
}

// String renders the state as "current/allotted".
func (s State) String() string {
	if !s.Known() {
		return "unknown"
	}
	if s.Allotted == 0 {
		return fmt.Sprintf("%d/?", s.Current)
	}
	return fmt.Sprintf("%d/%d", s.Current, s.Allotted)
}
