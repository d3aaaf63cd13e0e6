package state

import (
	"fmt"
	"reflect"
)

// Equals checks deep equality between actual and expected.
func Equals(actual, expected any) (Outcome, error) {
	if reflect.DeepEqual(actual, expected) {
		return pass(fmt.Sprintf("value equals %v", expected)), nil
	}
	return fail(fmt.Sprintf(
		"expected %v, got %v", expected, actual,
	)), nil
}

// NotEquals checks that actual and expected are not deeply
// equal.
func NotEquals(actual, expected any) (Outcome, error) {
	if !reflect.DeepEqual(actual, expected) {
		return pass(fmt.Sprintf(
			"value differs from %v", expected,
		)), nil
	}
	return fail(fmt.Sprintf(
		"expected value to differ from %v", expected,
	)), nil
}

// Nil checks that the actual value is nil. The expected value
// is ignored.
func Nil(actual, _ any) (Outcome, error) {
	if isNil(actual) {
		return pass("value is nil"), nil
	}
	return fail(fmt.Sprintf("expected nil, got %v", actual)), nil
}

// NotNil checks that the actual value is non-nil. The expected
// value is ignored.
func NotNil(actual, _ any) (Outcome, error) {
	if !isNil(actual) {
		return pass("value is not nil"), nil
	}
	return fail("expected non-nil value"), nil
}

// isNil reports nil-ness through interfaces holding nil
// pointers, maps, slices, and channels.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice,
		reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
