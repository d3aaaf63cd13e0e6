package state

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Predicate compiles an expr-lang boolean expression into a
// Compare. The expression is evaluated against an environment
// exposing `actual` and `expected`, e.g. "actual > 10" or
// "len(actual) == expected". Compilation happens once;
// evaluation runs on every poll.
func Predicate(src string) (Compare, error) {
	program, err := expr.Compile(src,
		expr.Env(map[string]any{}),
		expr.AllowUndefinedVariables(),
		expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf(
			"compile predicate %q: %w", src, err,
		)
	}
	return predicateCompare(src, program), nil
}

func predicateCompare(
	src string,
	program *vm.Program,
) Compare {
	return func(actual, expected any) (Outcome, error) {
		env := map[string]any{
			"actual":   actual,
			"expected": expected,
		}
		output, err := expr.Run(program, env)
		if err != nil {
			return Outcome{}, fmt.Errorf(
				"eval predicate %q: %w", src, err,
			)
		}
		ok, isBool := output.(bool)
		if !isBool {
			return Outcome{}, fmt.Errorf(
				"predicate %q did not return bool (got %T)",
				src, output,
			)
		}
		if ok {
			return pass(fmt.Sprintf(
				"predicate %q holds", src,
			)), nil
		}
		return fail(fmt.Sprintf(
			"predicate %q does not hold for %v", src, actual,
		)), nil
	}
}
