// Package wait provides typed convenience verifiers over the
// polling primitive in pkg/verify. Each value category (object,
// number, iterable, map, file) gets a small wrapper that builds
// the comparison and a default human-readable message, then
// forwards to the shared verifier. Per-call overrides go
// through a single Opts struct instead of overload fan-out:
// callers supply only the fields they need, and omitted fields
// resolve to the verifier's documented defaults.
package wait

import (
	"fmt"
	"time"

	"digital.vasic.verify/pkg/state"
	"digital.vasic.verify/pkg/verify"
)

// Opts carries per-call overrides for a single verifyX call.
// The zero value means "use the verifier's defaults".
type Opts struct {
	// Timeout overrides the polling timeout. Use verify.Once
	// for a single evaluation.
	Timeout time.Duration

	// Interval overrides the sleep between polls.
	Interval time.Duration

	// Message overrides the generated default message. It is
	// a printf-style template resolved with Args.
	Message string

	// Args are the positional arguments for Message.
	Args []any

	// CaptureDiff includes mismatch detail in a failed result.
	CaptureDiff bool
}

// first collapses the optional trailing Opts into one value.
func first(opts []Opts) Opts {
	if len(opts) > 0 {
		return opts[0]
	}
	return Opts{}
}

// request assembles the verify.Request for one typed call.
func request(
	sup verify.Supplier,
	expected any,
	cmp state.Compare,
	defaultMsg string,
	o Opts,
) verify.Request {
	req := verify.Request{
		Supplier:    sup,
		Expected:    expected,
		Compare:     cmp,
		Timeout:     o.Timeout,
		Interval:    o.Interval,
		Message:     o.Message,
		Args:        o.Args,
		CaptureDiff: o.CaptureDiff,
	}
	if req.Message == "" {
		req.Message = defaultMsg
		req.Args = nil
	}
	return req
}

// describe renders the default message for a verifyX call.
func describe(name, op string, expected any) string {
	if expected == nil {
		return fmt.Sprintf("%s %s", name, op)
	}
	return fmt.Sprintf("%s %s %v", name, op, expected)
}
