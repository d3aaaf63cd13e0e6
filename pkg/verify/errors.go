package verify

import "fmt"

// FailureError is returned from Verifier.Verify in immediate
// mode (no queue configured) when the verification fails. It
// carries the full result for inspection at the call site.
type FailureError struct {
	Result Result
}

// Error implements the error interface.
func (e *FailureError) Error() string {
	if e.Result.Error != "" {
		return fmt.Sprintf(
			"verification failed: %s (%s)",
			e.Result.Message, e.Result.Error,
		)
	}
	return fmt.Sprintf(
		"verification failed: %s", e.Result.Message,
	)
}
