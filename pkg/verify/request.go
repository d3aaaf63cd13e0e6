package verify

import (
	"time"

	"digital.vasic.verify/pkg/state"
)

// Once requests exactly one comparison evaluation with no
// sleeping, for callers asserting the current state rather
// than waiting for it.
const Once = time.Duration(-1)

// Supplier produces the current actual value. It is re-invoked
// on every poll iteration; the verifier never caches a stale
// actual value across iterations.
type Supplier func() any

// Request describes one verification. It is created per verify
// call and consumed once. Zero-valued optional fields fall back
// to the Verifier's configured defaults.
type Request struct {
	// Supplier produces the actual value on each poll.
	// Required.
	Supplier Supplier

	// Expected is the reference value or predicate payload
	// handed to the comparison on each poll.
	Expected any

	// Compare decides whether actual satisfies expected.
	// Required. It must be pure aside from reporting diff
	// detail through its Outcome.
	Compare state.Compare

	// Timeout bounds the total polling time. Zero falls back
	// to the Verifier default; Once requests a single
	// evaluation with no sleeping.
	Timeout time.Duration

	// Interval is the sleep between polls. Zero or negative
	// falls back to the Verifier default.
	Interval time.Duration

	// Message is an optional printf-style template rendered
	// into the result. When empty, the comparison's own
	// message is used.
	Message string

	// Args are the positional arguments for Message.
	Args []any

	// CaptureDiff includes the comparison's diff detail in a
	// failed result.
	CaptureDiff bool
}

// ValueOf wraps an already-fetched value as a Supplier, for
// callers verifying a snapshot rather than a live source.
func ValueOf(v any) Supplier {
	return func() any { return v }
}
