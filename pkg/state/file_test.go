package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "verify.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileExists(t *testing.T) {
	path := writeTempFile(t, "hello")

	out, err := FileExists(path, nil)
	require.NoError(t, err)
	assert.True(t, out.Passed)

	out, err = FileExists(
		filepath.Join(t.TempDir(), "missing.txt"), nil,
	)
	require.NoError(t, err)
	assert.False(t, out.Passed)
}

func TestFileNotExists(t *testing.T) {
	out, err := FileNotExists(
		filepath.Join(t.TempDir(), "missing.txt"), nil,
	)
	require.NoError(t, err)
	assert.True(t, out.Passed)

	path := writeTempFile(t, "x")
	out, err = FileNotExists(path, nil)
	require.NoError(t, err)
	assert.False(t, out.Passed)
}

func TestFileSizeEquals(t *testing.T) {
	path := writeTempFile(t, "12345")

	out, err := FileSizeEquals(path, 5)
	require.NoError(t, err)
	assert.True(t, out.Passed)

	out, err = FileSizeEquals(path, 4)
	require.NoError(t, err)
	assert.False(t, out.Passed)

	out, err = FileSizeEquals(
		filepath.Join(t.TempDir(), "missing"), 5,
	)
	require.NoError(t, err)
	assert.False(t, out.Passed)
	assert.Contains(t, out.Message, "does not exist")
}

func TestFileContentEquals(t *testing.T) {
	path := writeTempFile(t, "expected content")

	out, err := FileContentEquals(path, "expected content")
	require.NoError(t, err)
	assert.True(t, out.Passed)

	out, err = FileContentEquals(path, "other")
	require.NoError(t, err)
	assert.False(t, out.Passed)
}

func TestFileContentContains(t *testing.T) {
	path := writeTempFile(t, "startup complete, ready")

	out, err := FileContentContains(path, "ready")
	require.NoError(t, err)
	assert.True(t, out.Passed)

	out, err = FileContentContains(path, "failed")
	require.NoError(t, err)
	assert.False(t, out.Passed)
	require.NotNil(t, out.Diff)
	assert.Equal(t, []any{"failed"}, out.Diff.Missing)
}

func TestFileComparisons_BadInputs(t *testing.T) {
	_, err := FileExists(42, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a file path")

	_, err = FileExists("", nil)
	require.Error(t, err)

	path := writeTempFile(t, "x")
	_, err = FileContentEquals(path, 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a string")
}
