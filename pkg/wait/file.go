package wait

import (
	"path/filepath"

	"digital.vasic.verify/pkg/state"
	"digital.vasic.verify/pkg/verify"
)

// File verifies on-disk state at a fixed path. The file is
// re-stat'ed or re-read on every poll, so a file appearing or
// changing mid-wait is observed.
type File struct {
	path     string
	verifier *verify.Verifier
}

// ForFile creates a file verifier for the given path.
func ForFile(path string, verifier *verify.Verifier) *File {
	return &File{path: path, verifier: verifier}
}

// Path returns the path under verification.
func (f *File) Path() string { return f.path }

func (f *File) supply() verify.Supplier {
	return verify.ValueOf(f.path)
}

func (f *File) run(
	expected any,
	cmp state.Compare,
	op string,
	opts []Opts,
) (verify.Result, error) {
	return f.verifier.Verify(request(
		f.supply(), expected, cmp,
		describe(filepath.Base(f.path), op, expected),
		first(opts),
	))
}

// VerifyExists polls until the file exists.
func (f *File) VerifyExists(opts ...Opts) (verify.Result, error) {
	return f.run(nil, state.FileExists, "exists", opts)
}

// VerifyNotExists polls until the file is gone.
func (f *File) VerifyNotExists(
	opts ...Opts,
) (verify.Result, error) {
	return f.run(nil, state.FileNotExists, "does not exist", opts)
}

// VerifySizeEquals polls until the file has the expected size
// in bytes.
func (f *File) VerifySizeEquals(
	size int64,
	opts ...Opts,
) (verify.Result, error) {
	return f.run(size, state.FileSizeEquals, "has size", opts)
}

// VerifyContentEquals polls until the file content equals the
// expected string exactly.
func (f *File) VerifyContentEquals(
	content string,
	opts ...Opts,
) (verify.Result, error) {
	return f.run(
		content, state.FileContentEquals, "has content", opts,
	)
}

// VerifyContentContains polls until the file content contains
// the expected substring.
func (f *File) VerifyContentContains(
	substring string,
	opts ...Opts,
) (verify.Result, error) {
	return f.run(
		substring, state.FileContentContains, "contains", opts,
	)
}
