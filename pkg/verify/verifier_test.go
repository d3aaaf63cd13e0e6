package verify

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.verify/pkg/state"
)

// countingCompare returns a Compare that fails the first n
// calls and passes afterwards, counting invocations.
func countingCompare(failFirst int, calls *int) state.Compare {
	return func(_, _ any) (state.Outcome, error) {
		*calls++
		if *calls <= failFirst {
			return state.Outcome{
				Passed:  false,
				Message: "not yet",
			}, nil
		}
		return state.Outcome{
			Passed:  true,
			Message: "satisfied",
		}, nil
	}
}

func TestVerify_OnceEvaluatesExactlyOnce(t *testing.T) {
	calls := 0
	sleeps := 0
	v := New(
		withSleep(func(time.Duration) { sleeps++ }),
	)

	r, err := v.Verify(Request{
		Supplier: ValueOf("x"),
		Expected: "y",
		Compare:  countingCompare(100, &calls),
		Timeout:  Once,
	})

	require.Error(t, err)
	assert.Equal(t, StatusFailed, r.Status)
	assert.Equal(t, 1, calls,
		"single-shot request must evaluate exactly once")
	assert.Equal(t, 1, r.Attempts)
	assert.Zero(t, sleeps, "single-shot request must not sleep")
}

func TestVerify_PassOnFirstEvaluation(t *testing.T) {
	sleeps := 0
	q := NewQueue(nil)
	v := New(
		WithQueue(q),
		withSleep(func(time.Duration) { sleeps++ }),
	)

	r, err := v.Verify(Request{
		Supplier: ValueOf(42),
		Expected: 42,
		Compare:  state.NumberEquals,
	})

	require.NoError(t, err)
	assert.Equal(t, StatusPassed, r.Status)
	assert.Equal(t, 1, r.Attempts)
	assert.Zero(t, sleeps,
		"no sleep when the first evaluation passes")
	assert.Less(t, r.Elapsed, time.Second)
}

func TestVerify_AlwaysFalse_TerminatesAtDeadline(t *testing.T) {
	timeout := 60 * time.Millisecond
	start := time.Now()
	deadline := start.Add(timeout)

	var lastEval time.Time
	v := New(
		WithTimeout(timeout),
		WithInterval(10*time.Millisecond),
	)

	r, err := v.Verify(Request{
		Supplier: ValueOf(false),
		Expected: true,
		Compare: func(_, _ any) (state.Outcome, error) {
			lastEval = time.Now()
			return state.Outcome{Message: "never"}, nil
		},
	})

	require.Error(t, err)
	assert.Equal(t, StatusFailed, r.Status)
	assert.GreaterOrEqual(t, r.Elapsed, timeout)
	assert.GreaterOrEqual(t, r.Attempts, 2)
	assert.False(t, lastEval.Before(deadline),
		"final evaluation must land at or after the deadline")
}

func TestVerify_PassesAfterRetries(t *testing.T) {
	calls := 0
	q := NewQueue(nil)
	v := New(
		WithQueue(q),
		WithTimeout(5*time.Second),
		WithInterval(20*time.Millisecond),
	)

	r, err := v.Verify(Request{
		Supplier: ValueOf("ready"),
		Expected: "ready",
		Compare:  countingCompare(3, &calls),
	})

	require.NoError(t, err)
	assert.Equal(t, StatusPassed, r.Status)
	assert.Equal(t, 4, calls,
		"three failing polls plus the passing one")
	assert.Equal(t, 4, r.Attempts)
	assert.GreaterOrEqual(t, r.Elapsed, 60*time.Millisecond)
	assert.Less(t, r.Elapsed, time.Second)
}

func TestVerify_CompareErrorFailsImmediately(t *testing.T) {
	calls := 0
	sleeps := 0
	v := New(
		WithTimeout(5*time.Second),
		withSleep(func(time.Duration) { sleeps++ }),
	)

	r, err := v.Verify(Request{
		Supplier: ValueOf("oops"),
		Expected: 1,
		Compare: func(_, _ any) (state.Outcome, error) {
			calls++
			return state.Outcome{}, fmt.Errorf("boom")
		},
	})

	require.Error(t, err)
	assert.Equal(t, StatusFailed, r.Status)
	assert.Equal(t, 1, calls, "comparison errors are not retried")
	assert.Zero(t, sleeps)
	assert.Equal(t, "boom", r.Error)
	assert.Contains(t, r.Message, "comparison error")
	assert.Contains(t, r.Message, "boom")
}

func TestVerify_CompareErrorKeptInCustomMessage(t *testing.T) {
	v := New(WithTimeout(Once))

	r, err := v.Verify(Request{
		Supplier: ValueOf("oops"),
		Expected: 1,
		Message:  "order %d should settle",
		Args:     []any{42},
		Compare: func(_, _ any) (state.Outcome, error) {
			return state.Outcome{}, fmt.Errorf("boom")
		},
	})

	require.Error(t, err)
	assert.Equal(t, StatusFailed, r.Status)
	assert.Equal(t, "boom", r.Error)
	assert.Contains(t, r.Message, "order 42 should settle")
	assert.Contains(t, r.Message, "comparison error: boom")
}

func TestVerify_ComparePanicFailsImmediately(t *testing.T) {
	calls := 0
	v := New(WithTimeout(5 * time.Second))

	r, err := v.Verify(Request{
		Supplier: ValueOf(nil),
		Expected: nil,
		Compare: func(_, _ any) (state.Outcome, error) {
			calls++
			panic("bad comparison")
		},
	})

	require.Error(t, err)
	assert.Equal(t, StatusFailed, r.Status)
	assert.Equal(t, 1, calls)
	assert.Contains(t, r.Error, "bad comparison")
	assert.Contains(t, r.Error, "panicked")
}

func TestVerify_NilCompareFails(t *testing.T) {
	v := New()

	r, err := v.Verify(Request{
		Supplier: ValueOf(1),
		Expected: 1,
		Timeout:  Once,
	})

	require.Error(t, err)
	assert.Equal(t, StatusFailed, r.Status)
	assert.Contains(t, r.Error, "no comparison function")
}

func TestVerify_Idempotent(t *testing.T) {
	v := New()

	req := Request{
		Supplier: ValueOf(7),
		Expected: 7,
		Compare:  state.NumberEquals,
		Timeout:  Once,
	}

	first, err1 := v.Verify(req)
	second, err2 := v.Verify(req)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.Message, second.Message)
	assert.Equal(t, first.Attempts, second.Attempts)
}

func TestVerify_ImmediateModeFailure(t *testing.T) {
	v := New(WithTimeout(Once))

	r, err := v.Verify(Request{
		Supplier: ValueOf(1),
		Expected: 2,
		Compare:  state.NumberEquals,
	})

	require.Error(t, err)
	var failure *FailureError
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, StatusFailed, failure.Result.Status)
	assert.Equal(t, r.Message, failure.Result.Message)
	assert.Contains(t, failure.Error(), "verification failed")
}

func TestVerify_QueueModeDefersFailure(t *testing.T) {
	q := NewQueue(nil)
	v := New(WithQueue(q), WithTimeout(Once))

	_, err := v.Verify(Request{
		Supplier: ValueOf(1),
		Expected: 2,
		Compare:  state.NumberEquals,
	})

	require.NoError(t, err,
		"queue mode records failures instead of raising them")
	require.Equal(t, 1, q.Len())
	assert.False(t, q.AllPassed())
	assert.Len(t, q.Failed(), 1)
}

func TestVerify_DiffCaptureSetDifference(t *testing.T) {
	q := NewQueue(nil)
	v := New(WithQueue(q), WithTimeout(Once))

	r, err := v.Verify(Request{
		Supplier:    ValueOf([]int{1, 2, 3}),
		Expected:    []int{2, 3, 4},
		Compare:     state.ContainsAll,
		CaptureDiff: true,
	})

	require.NoError(t, err)
	assert.Equal(t, StatusFailed, r.Status)
	require.NotNil(t, r.Diff)
	assert.Equal(t, []any{4}, r.Diff.Missing)
	assert.Empty(t, r.Diff.Unexpected)
}

func TestVerify_DiffCaptureComplement(t *testing.T) {
	v := New(WithTimeout(Once), WithDiffCapture())

	r, _ := v.Verify(Request{
		Supplier: ValueOf([]int{1, 2, 3}),
		Expected: []int{2, 3}, // all present: asymmetry check fails
		Compare:  state.NotContainsAll,
	})

	assert.Equal(t, StatusFailed, r.Status)
	require.NotNil(t, r.Diff)
	assert.Equal(t, []any{1}, r.Diff.Unexpected)
}

func TestVerify_DiffCaptureDisabled(t *testing.T) {
	v := New(WithTimeout(Once))

	r, _ := v.Verify(Request{
		Supplier: ValueOf([]int{1, 2, 3}),
		Expected: []int{2, 3, 4},
		Compare:  state.ContainsAll,
	})

	assert.Equal(t, StatusFailed, r.Status)
	assert.Nil(t, r.Diff,
		"diff is only captured when requested")
}

func TestVerify_MapMissingEntryDiff(t *testing.T) {
	q := NewQueue(nil)
	v := New(WithQueue(q), WithTimeout(Once))

	r, err := v.Verify(Request{
		Supplier:    ValueOf(map[string]string{"a": "b"}),
		Expected:    state.Entry{Key: "k", Value: "v"},
		Compare:     state.MapContains,
		CaptureDiff: true,
	})

	require.NoError(t, err)
	assert.Equal(t, StatusFailed, r.Status)
	require.NotNil(t, r.Diff)
	assert.Equal(t, map[string]any{"k": "v"}, r.Diff.Entries)
}

func TestVerify_MessageTemplateRendered(t *testing.T) {
	v := New(WithTimeout(Once))

	r, _ := v.Verify(Request{
		Supplier: ValueOf(3),
		Expected: 5,
		Compare:  state.NumberEquals,
		Message:  "queue depth of %s should reach %d",
		Args:     []any{"ingest", 5},
	})

	assert.Equal(t,
		"queue depth of ingest should reach 5", r.Message)
}

func TestVerify_SupplierReinvokedEachPoll(t *testing.T) {
	fetches := 0
	q := NewQueue(nil)
	v := New(
		WithQueue(q),
		WithTimeout(5*time.Second),
		WithInterval(5*time.Millisecond),
	)

	r, err := v.Verify(Request{
		Supplier: func() any {
			fetches++
			return fetches
		},
		Expected: 3,
		Compare:  state.NumberEquals,
	})

	require.NoError(t, err)
	assert.Equal(t, StatusPassed, r.Status)
	assert.Equal(t, 3, fetches,
		"the actual value must be re-fetched on every poll")
	assert.Equal(t, 3, r.Actual,
		"result snapshots the final actual value")
}
