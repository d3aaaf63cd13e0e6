package wait

import (
	"digital.vasic.verify/pkg/state"
	"digital.vasic.verify/pkg/verify"
)

// Numeric constrains the number verifier to built-in numeric
// types.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Number verifies a numeric value of type T against expected
// values and bounds.
type Number[T Numeric] struct {
	name     string
	supplier func() T
	verifier *verify.Verifier
}

// ForNumber creates a number verifier. The supplier is
// re-invoked on every poll.
func ForNumber[T Numeric](
	name string,
	supplier func() T,
	verifier *verify.Verifier,
) *Number[T] {
	return &Number[T]{
		name:     name,
		supplier: supplier,
		verifier: verifier,
	}
}

func (n *Number[T]) supply() verify.Supplier {
	return func() any { return n.supplier() }
}

func (n *Number[T]) run(
	expected any,
	cmp state.Compare,
	op string,
	opts []Opts,
) (verify.Result, error) {
	return n.verifier.Verify(request(
		n.supply(), expected, cmp,
		describe(n.name, op, expected),
		first(opts),
	))
}

// VerifyEquals polls until the number equals expected.
func (n *Number[T]) VerifyEquals(
	expected T,
	opts ...Opts,
) (verify.Result, error) {
	return n.run(expected, state.NumberEquals, "equals", opts)
}

// VerifyNotEquals polls until the number differs from expected.
func (n *Number[T]) VerifyNotEquals(
	expected T,
	opts ...Opts,
) (verify.Result, error) {
	return n.run(
		expected, state.NumberNotEquals, "differs from", opts,
	)
}

// VerifyGreater polls until the number exceeds expected.
func (n *Number[T]) VerifyGreater(
	expected T,
	opts ...Opts,
) (verify.Result, error) {
	return n.run(expected, state.Greater, "is greater than", opts)
}

// VerifyGreaterOrEqual polls until the number is at least
// expected.
func (n *Number[T]) VerifyGreaterOrEqual(
	expected T,
	opts ...Opts,
) (verify.Result, error) {
	return n.run(
		expected, state.GreaterOrEqual, "is at least", opts,
	)
}

// VerifyLess polls until the number is below expected.
func (n *Number[T]) VerifyLess(
	expected T,
	opts ...Opts,
) (verify.Result, error) {
	return n.run(expected, state.Less, "is less than", opts)
}

// VerifyLessOrEqual polls until the number is at most expected.
func (n *Number[T]) VerifyLessOrEqual(
	expected T,
	opts ...Opts,
) (verify.Result, error) {
	return n.run(expected, state.LessOrEqual, "is at most", opts)
}

// VerifyBetweenInclusive polls until low <= number <= high.
func (n *Number[T]) VerifyBetweenInclusive(
	low, high T,
	opts ...Opts,
) (verify.Result, error) {
	r := state.Range{Low: low, High: high}
	return n.run(
		r, state.BetweenInclusive, "is between (inclusive)", opts,
	)
}

// VerifyBetweenExclusive polls until low < number < high.
func (n *Number[T]) VerifyBetweenExclusive(
	low, high T,
	opts ...Opts,
) (verify.Result, error) {
	r := state.Range{Low: low, High: high}
	return n.run(
		r, state.BetweenExclusive, "is between (exclusive)", opts,
	)
}
