package verify

import (
	"sync"

	"digital.vasic.verify/pkg/logging"
)

// Observer is notified of each result as it is appended to a
// Queue. Observers run under the queue lock and must return
// quickly.
type Observer func(Result)

// Queue is the ordered, append-only sink collecting
// verification outcomes for one test run. Appends are
// mutex-serialized so concurrent verifiers against the same
// queue observe a defined order; the failure-aggregation step
// at the end of a run depends on having seen every append.
//
// Lifecycle: created at test start, written throughout, read
// or drained at the test-run boundary.
type Queue struct {
	mu        sync.Mutex
	results   []Result
	logger    logging.Logger
	observers []Observer
}

// NewQueue creates an empty queue logging through the given
// sink. A nil logger is replaced with a no-op one.
func NewQueue(logger logging.Logger) *Queue {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Queue{logger: logger}
}

// Append records a completed result in order. Failed results
// with diff detail are dumped at debug level through the
// queue's logger.
func (q *Queue) Append(r Result) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.results = append(q.results, r)

	if r.Status == StatusFailed {
		args := []any{
			"message", r.Message,
			"attempts", r.Attempts,
			"elapsed", r.Elapsed.String(),
		}
		if r.Error != "" {
			args = append(args, "error", r.Error)
		}
		q.logger.Warn("verification failed", args...)
		if !r.Diff.Empty() {
			q.logger.Debug("verification diff",
				"missing", r.Diff.Missing,
				"unexpected", r.Diff.Unexpected,
				"entries", r.Diff.Entries,
			)
		}
	} else {
		q.logger.Debug("verification passed",
			"message", r.Message,
			"attempts", r.Attempts,
			"elapsed", r.Elapsed.String(),
		)
	}

	for _, obs := range q.observers {
		obs(r)
	}
}

// Subscribe registers an observer for subsequent appends.
func (q *Queue) Subscribe(obs Observer) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.observers = append(q.observers, obs)
}

// Results returns a copy of the recorded results in append
// order.
func (q *Queue) Results() []Result {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Result, len(q.results))
	copy(out, q.results)
	return out
}

// Failed returns the recorded results that did not pass.
func (q *Queue) Failed() []Result {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []Result
	for _, r := range q.results {
		if !r.Passed() {
			out = append(out, r)
		}
	}
	return out
}

// AllPassed returns true if no recorded result failed.
func (q *Queue) AllPassed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, r := range q.results {
		if !r.Passed() {
			return false
		}
	}
	return true
}

// Len returns the number of recorded results.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.results)
}

// Drain returns all recorded results and resets the queue,
// ready for the next run.
func (q *Queue) Drain() []Result {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.results
	q.results = nil
	return out
}
