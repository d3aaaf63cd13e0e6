package wait

import (
	"digital.vasic.verify/pkg/state"
	"digital.vasic.verify/pkg/verify"
)

// Object verifies a generic value of type T against expected
// values by deep equality.
type Object[T any] struct {
	name     string
	supplier func() T
	verifier *verify.Verifier
}

// ForObject creates an object verifier. The name appears in
// generated messages; the supplier is re-invoked on every poll.
func ForObject[T any](
	name string,
	supplier func() T,
	verifier *verify.Verifier,
) *Object[T] {
	return &Object[T]{
		name:     name,
		supplier: supplier,
		verifier: verifier,
	}
}

func (o *Object[T]) supply() verify.Supplier {
	return func() any { return o.supplier() }
}

// VerifyEquals polls until the value deep-equals expected.
func (o *Object[T]) VerifyEquals(
	expected T,
	opts ...Opts,
) (verify.Result, error) {
	return o.verifier.Verify(request(
		o.supply(), expected, state.Equals,
		describe(o.name, "equals", expected),
		first(opts),
	))
}

// VerifyNotEquals polls until the value differs from expected.
func (o *Object[T]) VerifyNotEquals(
	expected T,
	opts ...Opts,
) (verify.Result, error) {
	return o.verifier.Verify(request(
		o.supply(), expected, state.NotEquals,
		describe(o.name, "differs from", expected),
		first(opts),
	))
}

// VerifyIsNil polls until the value is nil.
func (o *Object[T]) VerifyIsNil(
	opts ...Opts,
) (verify.Result, error) {
	return o.verifier.Verify(request(
		o.supply(), nil, state.Nil,
		describe(o.name, "is nil", nil),
		first(opts),
	))
}

// VerifyIsNotNil polls until the value is non-nil.
func (o *Object[T]) VerifyIsNotNil(
	opts ...Opts,
) (verify.Result, error) {
	return o.verifier.Verify(request(
		o.supply(), nil, state.NotNil,
		describe(o.name, "is not nil", nil),
		first(opts),
	))
}

// VerifyMatches polls until the expr-lang predicate holds for
// the value. The expression sees the current value as `actual`.
// A compile error is returned without polling.
func (o *Object[T]) VerifyMatches(
	predicate string,
	opts ...Opts,
) (verify.Result, error) {
	cmp, err := state.Predicate(predicate)
	if err != nil {
		return verify.Result{}, err
	}
	return o.verifier.Verify(request(
		o.supply(), nil, cmp,
		describe(o.name, "matches", predicate),
		first(opts),
	))
}
