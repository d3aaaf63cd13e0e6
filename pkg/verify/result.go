package verify

import (
	"time"

	"digital.vasic.verify/pkg/state"
)

// Status constants for verification outcomes.
const (
	StatusPending = "pending"
	StatusPolling = "polling"
	StatusPassed  = "passed"
	StatusFailed  = "failed"
)

// Result captures the complete outcome of one verification,
// including timing, the final actual value snapshot, and any
// captured diff detail.
type Result struct {
	// Status is StatusPassed or StatusFailed once the
	// verification completes.
	Status string `json:"status"`

	// StartTime is when polling began.
	StartTime time.Time `json:"start_time"`

	// EndTime is when polling finished.
	EndTime time.Time `json:"end_time"`

	// Elapsed is the wall-clock polling time.
	Elapsed time.Duration `json:"elapsed"`

	// Attempts is the number of comparison evaluations
	// performed.
	Attempts int `json:"attempts"`

	// Actual is a snapshot of the last observed actual value.
	Actual any `json:"actual"`

	// Expected is the value or predicate payload the caller
	// supplied.
	Expected any `json:"expected"`

	// Message is the rendered human-readable description of
	// the outcome.
	Message string `json:"message"`

	// Diff holds structured mismatch detail when diff capture
	// was enabled and the verification failed.
	Diff *state.Diff `json:"diff,omitempty"`

	// Error contains the comparison error detail when the
	// comparison itself failed rather than merely not holding.
	Error string `json:"error,omitempty"`
}

// Passed returns true if the verification succeeded.
func (r *Result) Passed() bool {
	return r.Status == StatusPassed
}

// IsFinal returns true if the status is a terminal state.
func (r *Result) IsFinal() bool {
	return r.Status == StatusPassed || r.Status == StatusFailed
}
