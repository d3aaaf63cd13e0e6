package state

import "fmt"

// Range describes an inclusive or exclusive numeric interval,
// used as the expected value for the Between comparisons.
type Range struct {
	// Low is the lower bound.
	Low any `json:"low"`

	// High is the upper bound.
	High any `json:"high"`
}

// NumberEquals checks numeric equality after coercing both
// sides to float64.
func NumberEquals(actual, expected any) (Outcome, error) {
	a, e, err := coercePair(actual, expected)
	if err != nil {
		return Outcome{}, err
	}
	if a == e {
		return pass(fmt.Sprintf("number equals %v", expected)), nil
	}
	return fail(fmt.Sprintf(
		"expected %v, got %v", expected, actual,
	)), nil
}

// NumberNotEquals checks numeric inequality.
func NumberNotEquals(actual, expected any) (Outcome, error) {
	a, e, err := coercePair(actual, expected)
	if err != nil {
		return Outcome{}, err
	}
	if a != e {
		return pass(fmt.Sprintf(
			"number differs from %v", expected,
		)), nil
	}
	return fail(fmt.Sprintf(
		"expected number to differ from %v", expected,
	)), nil
}

// Greater checks actual > expected.
func Greater(actual, expected any) (Outcome, error) {
	return ordered(actual, expected, "greater than",
		func(a, e float64) bool { return a > e })
}

// GreaterOrEqual checks actual >= expected.
func GreaterOrEqual(actual, expected any) (Outcome, error) {
	return ordered(actual, expected, "at least",
		func(a, e float64) bool { return a >= e })
}

// Less checks actual < expected.
func Less(actual, expected any) (Outcome, error) {
	return ordered(actual, expected, "less than",
		func(a, e float64) bool { return a < e })
}

// LessOrEqual checks actual <= expected.
func LessOrEqual(actual, expected any) (Outcome, error) {
	return ordered(actual, expected, "at most",
		func(a, e float64) bool { return a <= e })
}

// BetweenInclusive checks low <= actual <= high. The expected
// value must be a Range.
func BetweenInclusive(actual, expected any) (Outcome, error) {
	return between(actual, expected, true)
}

// BetweenExclusive checks low < actual < high. The expected
// value must be a Range.
func BetweenExclusive(actual, expected any) (Outcome, error) {
	return between(actual, expected, false)
}

func between(
	actual, expected any,
	inclusive bool,
) (Outcome, error) {
	r, ok := expected.(Range)
	if !ok {
		return Outcome{}, fmt.Errorf(
			"expected value is not a Range: %T", expected,
		)
	}
	a, ok := toFloat64(actual)
	if !ok {
		return Outcome{}, fmt.Errorf(
			"actual value is not numeric: %T", actual,
		)
	}
	low, ok := toFloat64(r.Low)
	if !ok {
		return Outcome{}, fmt.Errorf(
			"range lower bound is not numeric: %T", r.Low,
		)
	}
	high, ok := toFloat64(r.High)
	if !ok {
		return Outcome{}, fmt.Errorf(
			"range upper bound is not numeric: %T", r.High,
		)
	}

	in := a >= low && a <= high
	bounds := "inclusive"
	if !inclusive {
		in = a > low && a < high
		bounds = "exclusive"
	}

	if in {
		return pass(fmt.Sprintf(
			"%v is between %v and %v (%s)",
			actual, r.Low, r.High, bounds,
		)), nil
	}
	return fail(fmt.Sprintf(
		"%v is not between %v and %v (%s)",
		actual, r.Low, r.High, bounds,
	)), nil
}

func ordered(
	actual, expected any,
	word string,
	cmp func(a, e float64) bool,
) (Outcome, error) {
	a, e, err := coercePair(actual, expected)
	if err != nil {
		return Outcome{}, err
	}
	if cmp(a, e) {
		return pass(fmt.Sprintf(
			"%v is %s %v", actual, word, expected,
		)), nil
	}
	return fail(fmt.Sprintf(
		"%v is not %s %v", actual, word, expected,
	)), nil
}

func coercePair(actual, expected any) (float64, float64, error) {
	a, ok := toFloat64(actual)
	if !ok {
		return 0, 0, fmt.Errorf(
			"actual value is not numeric: %T", actual,
		)
	}
	e, ok := toFloat64(expected)
	if !ok {
		return 0, 0, fmt.Errorf(
			"expected value is not numeric: %T", expected,
		)
	}
	return a, e, nil
}

// toFloat64 coerces common numeric types to float64.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
