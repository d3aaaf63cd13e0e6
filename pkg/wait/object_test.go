package wait

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.verify/pkg/verify"
)

// newHarness builds a queue-backed verifier with fast polling
// for tests.
func newHarness() (*verify.Verifier, *verify.Queue) {
	q := verify.NewQueue(nil)
	v := verify.New(
		verify.WithQueue(q),
		verify.WithTimeout(2*time.Second),
		verify.WithInterval(5*time.Millisecond),
	)
	return v, q
}

func TestObject_VerifyEquals(t *testing.T) {
	v, q := newHarness()

	status := "starting"
	obj := ForObject("service status", func() string {
		prev := status
		status = "ready"
		return prev
	}, v)

	r, err := obj.VerifyEquals("ready")
	require.NoError(t, err)
	assert.True(t, r.Passed())
	assert.GreaterOrEqual(t, r.Attempts, 2,
		"first poll sees the stale value")
	assert.Equal(t, 1, q.Len())
}

func TestObject_VerifyEquals_DefaultMessage(t *testing.T) {
	v, _ := newHarness()

	obj := ForObject("answer", func() int { return 42 }, v)

	r, err := obj.VerifyEquals(42)
	require.NoError(t, err)
	assert.Equal(t, "answer equals 42", r.Message)
}

func TestObject_VerifyEquals_CustomMessage(t *testing.T) {
	v, _ := newHarness()

	obj := ForObject("answer", func() int { return 42 }, v)

	r, err := obj.VerifyEquals(42, Opts{
		Message: "the %s answer",
		Args:    []any{"ultimate"},
	})
	require.NoError(t, err)
	assert.Equal(t, "the ultimate answer", r.Message)
}

func TestObject_VerifyNotEquals(t *testing.T) {
	v, _ := newHarness()

	obj := ForObject("value", func() string { return "a" }, v)

	r, err := obj.VerifyNotEquals("b", Opts{
		Timeout: verify.Once,
	})
	require.NoError(t, err)
	assert.True(t, r.Passed())
}

func TestObject_VerifyNilness(t *testing.T) {
	v, _ := newHarness()

	var ptr *int
	nilObj := ForObject("pointer", func() *int {
		return ptr
	}, v)

	r, err := nilObj.VerifyIsNil(Opts{Timeout: verify.Once})
	require.NoError(t, err)
	assert.True(t, r.Passed())

	ptr = new(int)
	r, err = nilObj.VerifyIsNotNil(Opts{Timeout: verify.Once})
	require.NoError(t, err)
	assert.True(t, r.Passed())
}

func TestObject_VerifyMatches(t *testing.T) {
	v, _ := newHarness()

	count := 0
	obj := ForObject("counter", func() int {
		count++
		return count
	}, v)

	r, err := obj.VerifyMatches("actual >= 3")
	require.NoError(t, err)
	assert.True(t, r.Passed())
	assert.Equal(t, 3, r.Attempts)
}

func TestObject_VerifyMatches_CompileError(t *testing.T) {
	v, q := newHarness()

	obj := ForObject("counter", func() int { return 1 }, v)

	_, err := obj.VerifyMatches("actual >")
	require.Error(t, err)
	assert.Zero(t, q.Len(),
		"a compile error never reaches the queue")
}
