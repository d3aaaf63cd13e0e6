// Package monitor streams verification results to live
// observers over WebSocket, with an aggregate snapshot
// endpoint for dashboards.
package monitor

import (
	"time"

	"digital.vasic.verify/pkg/verify"
)

// EventType represents the type of verification event.
type EventType string

const (
	EventPassed EventType = "passed"
	EventFailed EventType = "failed"
)

// Event represents one completed verification, flattened for
// wire transport.
type Event struct {
	Type      EventType     `json:"type"`
	Message   string        `json:"message"`
	Attempts  int           `json:"attempts"`
	Elapsed   time.Duration `json:"elapsed"`
	Timestamp time.Time     `json:"timestamp"`
	Error     string        `json:"error,omitempty"`
}

// eventFrom converts a verification result to a wire event.
func eventFrom(r verify.Result) Event {
	typ := EventPassed
	if !r.Passed() {
		typ = EventFailed
	}
	return Event{
		Type:      typ,
		Message:   r.Message,
		Attempts:  r.Attempts,
		Elapsed:   r.Elapsed,
		Timestamp: r.EndTime,
		Error:     r.Error,
	}
}

// Snapshot holds aggregate stats for the snapshot endpoint.
type Snapshot struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	PassRate float64 `json:"pass_rate"`
	Started  string  `json:"started"`
}
