package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	d := New()

	assert.Equal(t, 10, d.TimeoutSeconds)
	assert.Equal(t, 500, d.IntervalMillis)
	assert.False(t, d.CaptureDiff)
	assert.Equal(t, "info", d.LogLevel)
	assert.Equal(t, "console", d.LogFormat)
	require.NoError(t, d.Validate())
}

func TestLoad_FromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verify.yaml")
	content := `
timeout_seconds: 30
interval_millis: 250
capture_diff: true
log_level: debug
log_format: json
`
	require.NoError(t,
		os.WriteFile(path, []byte(content), 0644))

	d, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 30, d.TimeoutSeconds)
	assert.Equal(t, 250, d.IntervalMillis)
	assert.True(t, d.CaptureDiff)
	assert.Equal(t, "debug", d.LogLevel)
	assert.Equal(t, "json", d.LogFormat)
	assert.Equal(t, 30*time.Second, d.Timeout())
	assert.Equal(t, 250*time.Millisecond, d.Interval())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verify.yaml")
	require.NoError(t,
		os.WriteFile(path, []byte("timeout_seconds: 3\n"), 0644))

	d, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, d.TimeoutSeconds)
	assert.Equal(t, 500, d.IntervalMillis)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verify.yaml")
	require.NoError(t, os.WriteFile(
		path, []byte("interval_millis: 0\n"), 0644,
	))

	d, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interval_millis")
	assert.Nil(t, d)
}

func TestLoad_EnvOverrideFixesInvalidFileValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verify.yaml")
	require.NoError(t, os.WriteFile(
		path, []byte("interval_millis: 0\n"), 0644,
	))
	t.Setenv(EnvIntervalMillis, "200")

	// Validation happens after env overrides apply.
	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 200, d.IntervalMillis)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv(EnvTimeoutSeconds, "7")
	t.Setenv(EnvIntervalMillis, "123")
	t.Setenv(EnvCaptureDiff, "true")
	t.Setenv(EnvLogLevel, "warn")

	d := FromEnv()

	assert.Equal(t, 7, d.TimeoutSeconds)
	assert.Equal(t, 123, d.IntervalMillis)
	assert.True(t, d.CaptureDiff)
	assert.Equal(t, "warn", d.LogLevel)
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verify.yaml")
	require.NoError(t, os.WriteFile(
		path, []byte("timeout_seconds: 30\n"), 0644,
	))
	t.Setenv(EnvTimeoutSeconds, "5")

	d, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, d.TimeoutSeconds)
}

func TestFromEnv_IgnoresMalformedNumbers(t *testing.T) {
	t.Setenv(EnvTimeoutSeconds, "not-a-number")

	d := FromEnv()

	assert.Equal(t, 10, d.TimeoutSeconds)
}

func TestOptions_ZeroTimeoutMapsToOnce(t *testing.T) {
	d := New()
	d.TimeoutSeconds = 0

	opts := d.Options()
	assert.Len(t, opts, 2)
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"1", "true", "YES", " on "} {
		assert.True(t, parseBool(v), "%q", v)
	}
	for _, v := range []string{"0", "false", "", "off"} {
		assert.False(t, parseBool(v), "%q", v)
	}
}
