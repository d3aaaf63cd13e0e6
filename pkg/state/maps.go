package state

import (
	"fmt"
	"reflect"
)

// Entry is a single key-value pair used as the expected value
// for the map entry comparisons.
type Entry struct {
	// Key is the map key to look up.
	Key any `json:"key"`

	// Value is the value the key must map to.
	Value any `json:"value"`
}

// MapContainsKey checks that the actual map has the expected
// key.
func MapContainsKey(actual, expected any) (Outcome, error) {
	m, err := toMap(actual)
	if err != nil {
		return Outcome{}, err
	}
	for k := range m {
		if reflect.DeepEqual(k, expected) {
			return pass(fmt.Sprintf(
				"map contains key %v", expected,
			)), nil
		}
	}
	return failDiff(
		fmt.Sprintf("map is missing key %v", expected),
		&Diff{Entries: map[string]any{
			renderKey(expected): nil,
		}},
	), nil
}

// MapNotContainsKey checks that the actual map lacks the
// expected key.
func MapNotContainsKey(actual, expected any) (Outcome, error) {
	m, err := toMap(actual)
	if err != nil {
		return Outcome{}, err
	}
	for k, v := range m {
		if reflect.DeepEqual(k, expected) {
			return failDiff(
				fmt.Sprintf(
					"map contains key %v", expected,
				),
				&Diff{Entries: map[string]any{
					renderKey(k): v,
				}},
			), nil
		}
	}
	return pass(fmt.Sprintf(
		"map does not contain key %v", expected,
	)), nil
}

// MapContains checks that the actual map holds the expected
// entry: the key must be present and map to the expected
// value. The expected value must be an Entry. On failure the
// diff carries the expected entry.
func MapContains(actual, expected any) (Outcome, error) {
	e, ok := expected.(Entry)
	if !ok {
		return Outcome{}, fmt.Errorf(
			"expected value is not an Entry: %T", expected,
		)
	}
	m, err := toMap(actual)
	if err != nil {
		return Outcome{}, err
	}
	for k, v := range m {
		if reflect.DeepEqual(k, e.Key) {
			if reflect.DeepEqual(v, e.Value) {
				return pass(fmt.Sprintf(
					"map contains entry %v=%v",
					e.Key, e.Value,
				)), nil
			}
			return failDiff(
				fmt.Sprintf(
					"key %v maps to %v, expected %v",
					e.Key, v, e.Value,
				),
				&Diff{Entries: map[string]any{
					renderKey(e.Key): e.Value,
				}},
			), nil
		}
	}
	return failDiff(
		fmt.Sprintf(
			"map is missing entry %v=%v", e.Key, e.Value,
		),
		&Diff{Entries: map[string]any{
			renderKey(e.Key): e.Value,
		}},
	), nil
}

// MapNotContains checks that the actual map does not hold the
// expected entry. The expected value must be an Entry.
func MapNotContains(actual, expected any) (Outcome, error) {
	out, err := MapContains(actual, expected)
	if err != nil {
		return Outcome{}, err
	}
	if out.Passed {
		e := expected.(Entry)
		return failDiff(
			fmt.Sprintf(
				"map contains entry %v=%v", e.Key, e.Value,
			),
			&Diff{Entries: map[string]any{
				renderKey(e.Key): e.Value,
			}},
		), nil
	}
	return pass("map does not contain the entry"), nil
}

// MapContainsAll checks that every entry of the expected map
// is present in actual with an equal value. On failure the
// diff enumerates the missing or mismatched entries.
func MapContainsAll(actual, expected any) (Outcome, error) {
	m, err := toMap(actual)
	if err != nil {
		return Outcome{}, err
	}
	want, err := toMap(expected)
	if err != nil {
		return Outcome{}, err
	}

	missing := make(map[string]any)
	for wk, wv := range want {
		found := false
		for k, v := range m {
			if reflect.DeepEqual(k, wk) {
				found = reflect.DeepEqual(v, wv)
				break
			}
		}
		if !found {
			missing[renderKey(wk)] = wv
		}
	}

	if len(missing) == 0 {
		return pass("map contains all expected entries"), nil
	}
	return failDiff(
		fmt.Sprintf(
			"map is missing %d expected entries",
			len(missing),
		),
		&Diff{Entries: missing},
	), nil
}

// MapSizeEquals checks that the actual map has the expected
// number of entries.
func MapSizeEquals(actual, expected any) (Outcome, error) {
	m, err := toMap(actual)
	if err != nil {
		return Outcome{}, err
	}
	want, ok := toFloat64(expected)
	if !ok {
		return Outcome{}, fmt.Errorf(
			"expected size is not numeric: %T", expected,
		)
	}
	if float64(len(m)) == want {
		return pass(fmt.Sprintf("size equals %v", expected)), nil
	}
	return fail(fmt.Sprintf(
		"expected size %v, got %d", expected, len(m),
	)), nil
}

// MapEmpty checks that the actual map has no entries. The
// expected value is ignored.
func MapEmpty(actual, _ any) (Outcome, error) {
	m, err := toMap(actual)
	if err != nil {
		return Outcome{}, err
	}
	if len(m) == 0 {
		return pass("map is empty"), nil
	}
	return fail(fmt.Sprintf(
		"map has %d entries", len(m),
	)), nil
}

// MapNotEmpty checks that the actual map has at least one
// entry. The expected value is ignored.
func MapNotEmpty(actual, _ any) (Outcome, error) {
	m, err := toMap(actual)
	if err != nil {
		return Outcome{}, err
	}
	if len(m) > 0 {
		return pass(fmt.Sprintf(
			"map has %d entries", len(m),
		)), nil
	}
	return fail("map is empty"), nil
}

// toMap converts any map value to map[any]any.
func toMap(v any) (map[any]any, error) {
	if v == nil {
		return nil, fmt.Errorf("value is nil, not a map")
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, fmt.Errorf("value is not a map: %T", v)
	}
	out := make(map[any]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().Interface()] = iter.Value().Interface()
	}
	return out, nil
}

// renderKey renders a map key for diff entries.
func renderKey(k any) string {
	return fmt.Sprintf("%v", k)
}
