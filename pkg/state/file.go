package state

import (
	"fmt"
	"os"
	"strings"
)

// File comparisons take the file path as the actual value and
// stat or read the file on every invocation, so a polling
// verifier observes the current on-disk state each iteration.

// FileExists checks that the actual path exists. The expected
// value is ignored.
func FileExists(actual, _ any) (Outcome, error) {
	path, err := toPath(actual)
	if err != nil {
		return Outcome{}, err
	}
	if _, statErr := os.Stat(path); statErr == nil {
		return pass(fmt.Sprintf("file %s exists", path)), nil
	} else if !os.IsNotExist(statErr) {
		return Outcome{}, fmt.Errorf(
			"stat %s: %w", path, statErr,
		)
	}
	return fail(fmt.Sprintf("file %s does not exist", path)), nil
}

// FileNotExists checks that the actual path does not exist.
// The expected value is ignored.
func FileNotExists(actual, _ any) (Outcome, error) {
	out, err := FileExists(actual, nil)
	if err != nil {
		return Outcome{}, err
	}
	if out.Passed {
		path, _ := toPath(actual)
		return fail(fmt.Sprintf("file %s exists", path)), nil
	}
	return pass("file does not exist"), nil
}

// FileSizeEquals checks that the file at the actual path has
// the expected size in bytes.
func FileSizeEquals(actual, expected any) (Outcome, error) {
	path, err := toPath(actual)
	if err != nil {
		return Outcome{}, err
	}
	want, ok := toFloat64(expected)
	if !ok {
		return Outcome{}, fmt.Errorf(
			"expected size is not numeric: %T", expected,
		)
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return fail(fmt.Sprintf(
				"file %s does not exist", path,
			)), nil
		}
		return Outcome{}, fmt.Errorf("stat %s: %w", path, statErr)
	}
	if float64(info.Size()) == want {
		return pass(fmt.Sprintf(
			"file size equals %v", expected,
		)), nil
	}
	return fail(fmt.Sprintf(
		"expected file size %v, got %d", expected, info.Size(),
	)), nil
}

// FileContentEquals checks that the file content at the actual
// path equals the expected string exactly.
func FileContentEquals(actual, expected any) (Outcome, error) {
	path, content, out, err := readForCompare(actual, expected)
	if err != nil || out != nil {
		return deref(out), err
	}
	want := expected.(string)
	if content == want {
		return pass(fmt.Sprintf(
			"file %s content matches", path,
		)), nil
	}
	return fail(fmt.Sprintf(
		"file %s content differs from expected", path,
	)), nil
}

// FileContentContains checks that the file content at the
// actual path contains the expected substring.
func FileContentContains(actual, expected any) (Outcome, error) {
	path, content, out, err := readForCompare(actual, expected)
	if err != nil || out != nil {
		return deref(out), err
	}
	want := expected.(string)
	if strings.Contains(content, want) {
		return pass(fmt.Sprintf(
			"file %s contains %q", path, want,
		)), nil
	}
	return failDiff(
		fmt.Sprintf("file %s does not contain %q", path, want),
		&Diff{Missing: []any{want}},
	), nil
}

// readForCompare validates inputs and reads the file. A non-nil
// Outcome means the comparison already resolved (missing file).
func readForCompare(
	actual, expected any,
) (string, string, *Outcome, error) {
	path, err := toPath(actual)
	if err != nil {
		return "", "", nil, err
	}
	if _, ok := expected.(string); !ok {
		return "", "", nil, fmt.Errorf(
			"expected content is not a string: %T", expected,
		)
	}
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		if os.IsNotExist(readErr) {
			o := fail(fmt.Sprintf(
				"file %s does not exist", path,
			))
			return path, "", &o, nil
		}
		return "", "", nil, fmt.Errorf(
			"read %s: %w", path, readErr,
		)
	}
	return path, string(data), nil, nil
}

func deref(o *Outcome) Outcome {
	if o == nil {
		return Outcome{}
	}
	return *o
}

func toPath(v any) (string, error) {
	path, ok := v.(string)
	if !ok {
		return "", fmt.Errorf(
			"actual value is not a file path: %T", v,
		)
	}
	if path == "" {
		return "", fmt.Errorf("file path is empty")
	}
	return path, nil
}
