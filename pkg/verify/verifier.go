// Package verify provides the polling verification primitive:
// it repeatedly evaluates a comparison between an actual value
// (re-fetched via a supplier) and an expected value until it
// succeeds or a deadline elapses, then records a single
// pass/fail result into a verification queue.
package verify

import (
	"fmt"
	"time"

	"digital.vasic.verify/pkg/logging"
	"digital.vasic.verify/pkg/state"
)

// Default polling parameters used when neither the request nor
// the verifier configuration supplies them.
const (
	DefaultTimeout  = 10 * time.Second
	DefaultInterval = 500 * time.Millisecond
)

// Verifier executes verification requests with configured
// defaults. It holds no per-request state and is safe for
// concurrent use; results land in the configured queue, whose
// appends are serialized.
type Verifier struct {
	timeout     time.Duration
	interval    time.Duration
	captureDiff bool
	queue       *Queue
	logger      logging.Logger

	// sleep is replaced in tests to observe sleeping without
	// real delays.
	sleep func(time.Duration)
}

// New creates a Verifier with the supplied options. Without a
// queue option the verifier runs in immediate mode: a failed
// verification is returned as a *FailureError instead of being
// enqueued.
func New(opts ...Option) *Verifier {
	v := &Verifier{
		timeout:  DefaultTimeout,
		interval: DefaultInterval,
		logger:   logging.NewNop(),
		sleep:    time.Sleep,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Queue returns the configured queue, or nil in immediate mode.
func (v *Verifier) Queue() *Queue {
	return v.queue
}

// Verify runs one request to completion: poll the comparison
// until it holds or the deadline passes, then record the
// outcome. The comparison is always evaluated before the
// deadline is checked, so at least one evaluation lands at or
// after the deadline boundary even under scheduling jitter.
//
// A comparison error (returned or panicked) fails immediately
// without retrying, with the detail embedded in the result.
//
// The loop is bounded purely by the deadline; there is no
// external cancel signal, and a hanging supplier blocks the
// poll indefinitely.
func (v *Verifier) Verify(req Request) (Result, error) {
	timeout := req.Timeout
	if timeout == 0 {
		timeout = v.timeout
	}
	if timeout < 0 {
		timeout = 0
	}
	interval := req.Interval
	if interval <= 0 {
		interval = v.interval
	}
	captureDiff := req.CaptureDiff || v.captureDiff

	start := time.Now()
	deadline := start.Add(timeout)

	var (
		attempts int
		actual   any
		outcome  state.Outcome
		cmpErr   error
	)

	for {
		attempts++
		actual = req.Supplier()
		outcome, cmpErr = evaluate(req.Compare, actual, req.Expected)
		if cmpErr != nil {
			break
		}
		if outcome.Passed {
			break
		}
		if timeout == 0 || !time.Now().Before(deadline) {
			break
		}
		v.sleep(interval)
	}

	end := time.Now()
	r := Result{
		StartTime: start,
		EndTime:   end,
		Elapsed:   end.Sub(start),
		Attempts:  attempts,
		Actual:    actual,
		Expected:  req.Expected,
	}

	switch {
	case cmpErr != nil:
		r.Status = StatusFailed
		r.Error = cmpErr.Error()
		detail := fmt.Sprintf("comparison error: %v", cmpErr)
		if req.Message == "" {
			r.Message = detail
		} else {
			// Keep the caller's message but never lose the
			// error detail.
			r.Message = renderMessage(req, detail) +
				" (" + detail + ")"
		}
	case outcome.Passed:
		r.Status = StatusPassed
		r.Message = renderMessage(req, outcome.Message)
	default:
		r.Status = StatusFailed
		r.Message = renderMessage(req, outcome.Message)
		if captureDiff {
			r.Diff = outcome.Diff
		}
	}

	if v.queue == nil {
		if !r.Passed() {
			v.logger.Error("verification failed",
				"message", r.Message,
				"attempts", r.Attempts,
				"elapsed", r.Elapsed.String(),
			)
			return r, &FailureError{Result: r}
		}
		return r, nil
	}

	v.queue.Append(r)
	return r, nil
}

// evaluate invokes the comparison, converting a panic into a
// comparison error so the polling loop never propagates one.
func evaluate(
	cmp state.Compare,
	actual, expected any,
) (out state.Outcome, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("comparison panicked: %v", rec)
		}
	}()
	if cmp == nil {
		return state.Outcome{}, fmt.Errorf(
			"no comparison function supplied",
		)
	}
	return cmp(actual, expected)
}

// renderMessage resolves the request's message template at
// result construction time, falling back to the comparison's
// own message.
func renderMessage(req Request, fallback string) string {
	if req.Message == "" {
		return fallback
	}
	if len(req.Args) == 0 {
		return req.Message
	}
	return fmt.Sprintf(req.Message, req.Args...)
}
