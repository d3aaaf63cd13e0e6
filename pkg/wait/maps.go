package wait

import (
	"digital.vasic.verify/pkg/state"
	"digital.vasic.verify/pkg/verify"
)

// Map verifies a map-valued source against key, entry, and
// size expectations.
type Map[K comparable, V any] struct {
	name     string
	supplier func() map[K]V
	verifier *verify.Verifier
}

// ForMap creates a map verifier. The supplier is re-invoked on
// every poll.
func ForMap[K comparable, V any](
	name string,
	supplier func() map[K]V,
	verifier *verify.Verifier,
) *Map[K, V] {
	return &Map[K, V]{
		name:     name,
		supplier: supplier,
		verifier: verifier,
	}
}

func (m *Map[K, V]) supply() verify.Supplier {
	return func() any { return m.supplier() }
}

func (m *Map[K, V]) run(
	expected any,
	cmp state.Compare,
	op string,
	opts []Opts,
) (verify.Result, error) {
	return m.verifier.Verify(request(
		m.supply(), expected, cmp,
		describe(m.name, op, expected),
		first(opts),
	))
}

// VerifyContainsKey polls until the map has the key.
func (m *Map[K, V]) VerifyContainsKey(
	key K,
	opts ...Opts,
) (verify.Result, error) {
	return m.run(key, state.MapContainsKey, "contains key", opts)
}

// VerifyNotContainsKey polls until the map lacks the key.
func (m *Map[K, V]) VerifyNotContainsKey(
	key K,
	opts ...Opts,
) (verify.Result, error) {
	return m.run(
		key, state.MapNotContainsKey,
		"does not contain key", opts,
	)
}

// VerifyContains polls until the map holds the entry: the key
// must be present and map to the value.
func (m *Map[K, V]) VerifyContains(
	key K,
	value V,
	opts ...Opts,
) (verify.Result, error) {
	e := state.Entry{Key: key, Value: value}
	return m.run(e, state.MapContains, "contains entry", opts)
}

// VerifyNotContains polls until the map does not hold the
// entry.
func (m *Map[K, V]) VerifyNotContains(
	key K,
	value V,
	opts ...Opts,
) (verify.Result, error) {
	e := state.Entry{Key: key, Value: value}
	return m.run(
		e, state.MapNotContains, "does not contain entry", opts,
	)
}

// VerifyContainsAll polls until every expected entry is
// present with an equal value.
func (m *Map[K, V]) VerifyContainsAll(
	expected map[K]V,
	opts ...Opts,
) (verify.Result, error) {
	return m.run(
		expected, state.MapContainsAll,
		"contains all entries of", opts,
	)
}

// VerifySizeEquals polls until the map has the expected number
// of entries.
func (m *Map[K, V]) VerifySizeEquals(
	size int,
	opts ...Opts,
) (verify.Result, error) {
	return m.run(size, state.MapSizeEquals, "has size", opts)
}

// VerifyIsEmpty polls until the map has no entries.
func (m *Map[K, V]) VerifyIsEmpty(
	opts ...Opts,
) (verify.Result, error) {
	return m.run(nil, state.MapEmpty, "is empty", opts)
}

// VerifyIsNotEmpty polls until the map has at least one entry.
func (m *Map[K, V]) VerifyIsNotEmpty(
	opts ...Opts,
) (verify.Result, error) {
	return m.run(nil, state.MapNotEmpty, "is not empty", opts)
}
