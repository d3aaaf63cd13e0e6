// Package config holds the process-wide default wait
// parameters. Defaults are loaded once from a YAML file and
// environment overrides, then passed explicitly into verifier
// construction; there is no global mutable state.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"digital.vasic.verify/pkg/verify"
)

// Environment variable names recognized by FromEnv and Load.
const (
	EnvTimeoutSeconds = "VERIFY_TIMEOUT_SECONDS"
	EnvIntervalMillis = "VERIFY_INTERVAL_MILLIS"
	EnvCaptureDiff    = "VERIFY_CAPTURE_DIFF"
	EnvLogLevel       = "VERIFY_LOG_LEVEL"
	EnvLogFormat      = "VERIFY_LOG_FORMAT"
)

// Defaults holds the default wait timeout and poll interval
// read at call sites when a verify call omits them explicitly.
type Defaults struct {
	// TimeoutSeconds is the default wait timeout in seconds.
	TimeoutSeconds int `yaml:"timeout_seconds" json:"timeout_seconds"`

	// IntervalMillis is the default poll interval in
	// milliseconds.
	IntervalMillis int `yaml:"interval_millis" json:"interval_millis"`

	// CaptureDiff enables diff capture on every verification.
	CaptureDiff bool `yaml:"capture_diff" json:"capture_diff"`

	// LogLevel is the minimum logging level.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// LogFormat is "console" or "json".
	LogFormat string `yaml:"log_format" json:"log_format"`
}

// New creates Defaults with sensible values: 10s timeout,
// 500ms interval, info-level console logging.
func New() *Defaults {
	return &Defaults{
		TimeoutSeconds: 10,
		IntervalMillis: 500,
		LogLevel:       "info",
		LogFormat:      "console",
	}
}

// Load reads defaults from a YAML file, then applies
// environment overrides. OS environment always wins over file
// values. A missing file is an error; use FromEnv when no file
// is expected.
func Load(path string) (*Defaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	d := New()
	if err := yaml.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	d.applyEnv()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// FromEnv creates Defaults from built-in values plus
// environment overrides only.
func FromEnv() *Defaults {
	d := New()
	d.applyEnv()
	return d
}

func (d *Defaults) applyEnv() {
	if v := os.Getenv(EnvTimeoutSeconds); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			d.TimeoutSeconds = n
		}
	}
	if v := os.Getenv(EnvIntervalMillis); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			d.IntervalMillis = n
		}
	}
	if v := os.Getenv(EnvCaptureDiff); v != "" {
		d.CaptureDiff = parseBool(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		d.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		d.LogFormat = v
	}
}

// Validate checks the loaded values: the timeout may be zero
// (single evaluation) but not negative, and the interval must
// be positive.
func (d *Defaults) Validate() error {
	if d.TimeoutSeconds < 0 {
		return fmt.Errorf(
			"timeout_seconds must be >= 0, got %d",
			d.TimeoutSeconds,
		)
	}
	if d.IntervalMillis <= 0 {
		return fmt.Errorf(
			"interval_millis must be > 0, got %d",
			d.IntervalMillis,
		)
	}
	return nil
}

// Timeout returns the default wait timeout as a duration.
func (d *Defaults) Timeout() time.Duration {
	return time.Duration(d.TimeoutSeconds) * time.Second
}

// Interval returns the default poll interval as a duration.
func (d *Defaults) Interval() time.Duration {
	return time.Duration(d.IntervalMillis) * time.Millisecond
}

// Options expresses the defaults as verifier options. A zero
// timeout maps to verify.Once (single evaluation).
func (d *Defaults) Options() []verify.Option {
	timeout := d.Timeout()
	if timeout == 0 {
		timeout = verify.Once
	}
	opts := []verify.Option{
		verify.WithTimeout(timeout),
		verify.WithInterval(d.Interval()),
	}
	if d.CaptureDiff {
		opts = append(opts, verify.WithDiffCapture())
	}
	return opts
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
