package verify

import (
	"time"

	"digital.vasic.verify/pkg/logging"
)

// Option configures a Verifier.
type Option func(*Verifier)

// WithTimeout sets the default polling timeout for requests
// that do not specify their own.
func WithTimeout(timeout time.Duration) Option {
	return func(v *Verifier) {
		v.timeout = timeout
	}
}

// WithInterval sets the default sleep between polls.
func WithInterval(interval time.Duration) Option {
	return func(v *Verifier) {
		v.interval = interval
	}
}

// WithQueue sets the queue receiving completed results. Without
// one the verifier runs in immediate mode.
func WithQueue(q *Queue) Option {
	return func(v *Verifier) {
		v.queue = q
	}
}

// WithLogger sets the logger used for immediate-mode failure
// output.
func WithLogger(logger logging.Logger) Option {
	return func(v *Verifier) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithDiffCapture enables diff capture on every request, so
// failed results carry element-level mismatch detail without
// each call site opting in.
func WithDiffCapture() Option {
	return func(v *Verifier) {
		v.captureDiff = true
	}
}

// withSleep replaces the sleep function. Testing only.
func withSleep(sleep func(time.Duration)) Option {
	return func(v *Verifier) {
		v.sleep = sleep
	}
}
