package state

import (
	"fmt"
	"reflect"
)

// Contains checks that the actual slice contains the expected
// element.
func Contains(actual, expected any) (Outcome, error) {
	items, err := toSlice(actual)
	if err != nil {
		return Outcome{}, err
	}
	for _, item := range items {
		if reflect.DeepEqual(item, expected) {
			return pass(fmt.Sprintf(
				"iterable contains %v", expected,
			)), nil
		}
	}
	return failDiff(
		fmt.Sprintf("iterable does not contain %v", expected),
		&Diff{Missing: []any{expected}},
	), nil
}

// NotContains checks that the actual slice does not contain
// the expected element.
func NotContains(actual, expected any) (Outcome, error) {
	items, err := toSlice(actual)
	if err != nil {
		return Outcome{}, err
	}
	for _, item := range items {
		if reflect.DeepEqual(item, expected) {
			return failDiff(
				fmt.Sprintf(
					"iterable contains %v", expected,
				),
				&Diff{Unexpected: []any{expected}},
			), nil
		}
	}
	return pass(fmt.Sprintf(
		"iterable does not contain %v", expected,
	)), nil
}

// ContainsAll checks that every expected element is present in
// actual. On failure the diff lists the expected elements
// missing from actual.
func ContainsAll(actual, expected any) (Outcome, error) {
	items, err := toSlice(actual)
	if err != nil {
		return Outcome{}, err
	}
	want, err := toSlice(expected)
	if err != nil {
		return Outcome{}, err
	}

	missing := subtract(want, items)
	if len(missing) == 0 {
		return pass("iterable contains all expected elements"), nil
	}
	return failDiff(
		fmt.Sprintf(
			"iterable is missing %d expected element(s)",
			len(missing),
		),
		&Diff{Missing: missing},
	), nil
}

// NotContainsAll checks that at least one expected element is
// absent from actual. On failure (all present) the diff lists
// the actual elements not covered by expected, so callers can
// see the set asymmetry.
func NotContainsAll(actual, expected any) (Outcome, error) {
	items, err := toSlice(actual)
	if err != nil {
		return Outcome{}, err
	}
	want, err := toSlice(expected)
	if err != nil {
		return Outcome{}, err
	}

	missing := subtract(want, items)
	if len(missing) > 0 {
		return pass(fmt.Sprintf(
			"iterable lacks %d expected element(s)",
			len(missing),
		)), nil
	}
	return failDiff(
		"iterable contains all expected elements",
		&Diff{Unexpected: subtract(items, want)},
	), nil
}

// EqualsIgnoringOrder checks that actual and expected hold the
// same elements regardless of order. The diff lists both
// directions of the asymmetry.
func EqualsIgnoringOrder(actual, expected any) (Outcome, error) {
	items, err := toSlice(actual)
	if err != nil {
		return Outcome{}, err
	}
	want, err := toSlice(expected)
	if err != nil {
		return Outcome{}, err
	}

	missing := subtractCounting(want, items)
	unexpected := subtractCounting(items, want)
	if len(missing) == 0 && len(unexpected) == 0 {
		return pass("iterables hold the same elements"), nil
	}
	return failDiff(
		"iterables hold different elements",
		&Diff{Missing: missing, Unexpected: unexpected},
	), nil
}

// SizeEquals checks that the actual slice has the expected
// length. The expected value must be numeric.
func SizeEquals(actual, expected any) (Outcome, error) {
	items, err := toSlice(actual)
	if err != nil {
		return Outcome{}, err
	}
	want, ok := toFloat64(expected)
	if !ok {
		return Outcome{}, fmt.Errorf(
			"expected size is not numeric: %T", expected,
		)
	}
	if float64(len(items)) == want {
		return pass(fmt.Sprintf("size equals %v", expected)), nil
	}
	return fail(fmt.Sprintf(
		"expected size %v, got %d", expected, len(items),
	)), nil
}

// Empty checks that the actual slice has no elements. The
// expected value is ignored.
func Empty(actual, _ any) (Outcome, error) {
	items, err := toSlice(actual)
	if err != nil {
		return Outcome{}, err
	}
	if len(items) == 0 {
		return pass("iterable is empty"), nil
	}
	return failDiff(
		fmt.Sprintf("iterable has %d element(s)", len(items)),
		&Diff{Unexpected: items},
	), nil
}

// NotEmpty checks that the actual slice has at least one
// element. The expected value is ignored.
func NotEmpty(actual, _ any) (Outcome, error) {
	items, err := toSlice(actual)
	if err != nil {
		return Outcome{}, err
	}
	if len(items) > 0 {
		return pass(fmt.Sprintf(
			"iterable has %d element(s)", len(items),
		)), nil
	}
	return fail("iterable is empty"), nil
}

// subtract returns the elements of a that do not appear in b,
// using deep equality.
func subtract(a, b []any) []any {
	var out []any
	for _, x := range a {
		found := false
		for _, y := range b {
			if reflect.DeepEqual(x, y) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, x)
		}
	}
	return out
}

// subtractCounting returns the elements of a left unmatched
// after pairing each against a distinct element of b, so
// repeated elements must appear as many times in b as in a.
func subtractCounting(a, b []any) []any {
	pool := make([]any, len(b))
	copy(pool, b)
	var out []any
	for _, x := range a {
		matched := false
		for i, y := range pool {
			if reflect.DeepEqual(x, y) {
				pool[i] = pool[len(pool)-1]
				pool = pool[:len(pool)-1]
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, x)
		}
	}
	return out
}

// toSlice converts any slice or array value to []any.
func toSlice(v any) ([]any, error) {
	if v == nil {
		return nil, fmt.Errorf("value is nil, not an iterable")
	}
	if s, ok := v.([]any); ok {
		return s, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf(
			"value is not an iterable: %T", v,
		)
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}
