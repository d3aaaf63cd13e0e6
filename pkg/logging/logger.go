// Package logging provides structured logging for the verify
// module, backed by zerolog with console and JSON output.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger defines the minimal logging interface used across the
// verify module. The verification queue uses it for trace-level
// diff dumps; callers may plug in their own implementation.
type Logger interface {
	// Info logs an informational message with key-value pairs.
	Info(msg string, args ...any)

	// Warn logs a warning message.
	Warn(msg string, args ...any)

	// Error logs an error message.
	Error(msg string, args ...any)

	// Debug logs a debug-level message.
	Debug(msg string, args ...any)

	// Close flushes and closes the logger.
	Close() error
}

// Options configures a zerolog-backed logger.
type Options struct {
	// Level is the minimum level: "debug", "info", "warn",
	// or "error". Defaults to "info".
	Level string

	// Format is "console" or "json". Defaults to "console".
	Format string

	// Writer receives the output. Defaults to os.Stdout.
	Writer io.Writer

	// Component is attached to every entry when non-empty.
	Component string
}

// zeroLogger adapts a zerolog.Logger to the Logger interface.
type zeroLogger struct {
	log zerolog.Logger
}

// New builds a zerolog-backed Logger from the given options.
func New(opt Options) Logger {
	var w io.Writer = os.Stdout
	if opt.Writer != nil {
		w = opt.Writer
	}
	if opt.Format != "json" {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}

	ctx := zerolog.New(w).
		Level(parseLevel(opt.Level)).
		With().
		Timestamp()
	if opt.Component != "" {
		ctx = ctx.Str("component", opt.Component)
	}

	return &zeroLogger{log: ctx.Logger()}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "", "info":
		return zerolog.InfoLevel
	}
	return zerolog.InfoLevel
}

func (l *zeroLogger) Info(msg string, args ...any) {
	emit(l.log.Info(), msg, args)
}

func (l *zeroLogger) Warn(msg string, args ...any) {
	emit(l.log.Warn(), msg, args)
}

func (l *zeroLogger) Error(msg string, args ...any) {
	emit(l.log.Error(), msg, args)
}

func (l *zeroLogger) Debug(msg string, args ...any) {
	emit(l.log.Debug(), msg, args)
}

func (l *zeroLogger) Close() error { return nil }

// emit attaches alternating key-value args to the event. A
// trailing key without a value is logged under "extra".
func emit(ev *zerolog.Event, msg string, args []any) {
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", args[i])
		}
		ev = ev.Interface(key, args[i+1])
	}
	if len(args)%2 == 1 {
		ev = ev.Interface("extra", args[len(args)-1])
	}
	ev.Msg(msg)
}

// nopLogger discards everything.
type nopLogger struct{}

// NewNop returns a Logger that discards all output. Useful in
// tests and as the default sink when none is configured.
func NewNop() Logger { return nopLogger{} }

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Close() error         { return nil }
