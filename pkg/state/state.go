// Package state provides the typed comparison layer for the
// verify module. Each value category (object, number, iterable,
// map, file) exposes semantic comparisons as Compare functions
// that return a structured Outcome instead of mutating shared
// diff state.
package state

// Compare evaluates an actual value against an expected value.
// It returns the structured outcome of the comparison, or an
// error when the comparison itself cannot be performed (e.g.,
// a type mismatch). A returned error is terminal: the polling
// verifier fails immediately and does not retry.
type Compare func(actual, expected any) (Outcome, error)

// Outcome captures the result of a single comparison
// evaluation.
type Outcome struct {
	// Passed indicates whether the comparison succeeded.
	Passed bool `json:"passed"`

	// Message is a human-readable description of the outcome.
	Message string `json:"message"`

	// Diff holds structured mismatch detail when the
	// comparison failed and diff capture applies. Nil when
	// the comparison passed or produced no element-level
	// detail.
	Diff *Diff `json:"diff,omitempty"`
}

// Diff enumerates exactly which elements or entries caused a
// containment or equality mismatch.
type Diff struct {
	// Missing holds expected elements absent from actual.
	Missing []any `json:"missing,omitempty"`

	// Unexpected holds actual elements absent from expected.
	Unexpected []any `json:"unexpected,omitempty"`

	// Entries holds missing or mismatched map entries, keyed
	// by the rendered key.
	Entries map[string]any `json:"entries,omitempty"`
}

// Empty returns true if the diff carries no detail.
func (d *Diff) Empty() bool {
	if d == nil {
		return true
	}
	return len(d.Missing) == 0 &&
		len(d.Unexpected) == 0 &&
		len(d.Entries) == 0
}

// pass builds a passing outcome with the given message.
func pass(msg string) Outcome {
	return Outcome{Passed: true, Message: msg}
}

// fail builds a failing outcome with the given message.
func fail(msg string) Outcome {
	return Outcome{Passed: false, Message: msg}
}

// failDiff builds a failing outcome carrying mismatch detail.
func failDiff(msg string, diff *Diff) Outcome {
	if diff.Empty() {
		return fail(msg)
	}
	return Outcome{Passed: false, Message: msg, Diff: diff}
}
