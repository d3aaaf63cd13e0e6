package wait

import (
	"digital.vasic.verify/pkg/state"
	"digital.vasic.verify/pkg/verify"
)

// Iterable verifies a slice-valued source against containment,
// size, and set-equality expectations.
type Iterable[T any] struct {
	name     string
	supplier func() []T
	verifier *verify.Verifier
}

// ForIterable creates an iterable verifier. The supplier is
// re-invoked on every poll.
func ForIterable[T any](
	name string,
	supplier func() []T,
	verifier *verify.Verifier,
) *Iterable[T] {
	return &Iterable[T]{
		name:     name,
		supplier: supplier,
		verifier: verifier,
	}
}

func (it *Iterable[T]) supply() verify.Supplier {
	return func() any { return it.supplier() }
}

func (it *Iterable[T]) run(
	expected any,
	cmp state.Compare,
	op string,
	opts []Opts,
) (verify.Result, error) {
	return it.verifier.Verify(request(
		it.supply(), expected, cmp,
		describe(it.name, op, expected),
		first(opts),
	))
}

// VerifyContains polls until the iterable holds the element.
func (it *Iterable[T]) VerifyContains(
	element T,
	opts ...Opts,
) (verify.Result, error) {
	return it.run(element, state.Contains, "contains", opts)
}

// VerifyNotContains polls until the iterable lacks the element.
func (it *Iterable[T]) VerifyNotContains(
	element T,
	opts ...Opts,
) (verify.Result, error) {
	return it.run(
		element, state.NotContains, "does not contain", opts,
	)
}

// VerifyContainsAll polls until every expected element is
// present.
func (it *Iterable[T]) VerifyContainsAll(
	expected []T,
	opts ...Opts,
) (verify.Result, error) {
	return it.run(
		expected, state.ContainsAll, "contains all of", opts,
	)
}

// VerifyNotContainsAll polls until at least one expected
// element is absent.
func (it *Iterable[T]) VerifyNotContainsAll(
	expected []T,
	opts ...Opts,
) (verify.Result, error) {
	return it.run(
		expected, state.NotContainsAll,
		"does not contain all of", opts,
	)
}

// VerifyEqualsIgnoringOrder polls until the iterable holds
// exactly the expected elements in any order.
func (it *Iterable[T]) VerifyEqualsIgnoringOrder(
	expected []T,
	opts ...Opts,
) (verify.Result, error) {
	return it.run(
		expected, state.EqualsIgnoringOrder,
		"equals ignoring order", opts,
	)
}

// VerifySizeEquals polls until the iterable has the expected
// length.
func (it *Iterable[T]) VerifySizeEquals(
	size int,
	opts ...Opts,
) (verify.Result, error) {
	return it.run(size, state.SizeEquals, "has size", opts)
}

// VerifyIsEmpty polls until the iterable has no elements.
func (it *Iterable[T]) VerifyIsEmpty(
	opts ...Opts,
) (verify.Result, error) {
	return it.run(nil, state.Empty, "is empty", opts)
}

// VerifyIsNotEmpty polls until the iterable has at least one
// element.
func (it *Iterable[T]) VerifyIsNotEmpty(
	opts ...Opts,
) (verify.Result, error) {
	return it.run(nil, state.NotEmpty, "is not empty", opts)
}
