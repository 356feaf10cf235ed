// Package log provides structured logging for grove estimators and the
// training workflow.
//
// The package defines a minimal, slog-compatible Logger interface backed
// by zerolog. Fields are passed as alternating key-value pairs, and the
// standard attribute keys in this package keep field names consistent
// across components:
//
//	logger := log.GetLoggerWithName("ensemble.forest")
//	logger.Info("training started",
//	    log.SamplesKey, 1000,
//	    log.FeaturesKey, 12,
//	)
package log

import "context"

// Logger is a structured logger with alternating key-value fields,
// compatible with the calling convention of log/slog.
type Logger interface {
	// Debug logs detailed diagnostic information.
	Debug(msg string, fields ...any)

	// Info logs general operational information.
	Info(msg string, fields ...any)

	// Warn logs potentially problematic conditions that do not stop
	// execution.
	Warn(msg string, fields ...any)

	// Error logs error conditions. If an error value appears among the
	// fields it is rendered with its stack trace when one is attached.
	Error(msg string, fields ...any)

	// With returns a Logger that includes the given fields in every
	// subsequent record.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level. Values are compatible with slog.Level.
type Level int

// Standard logging levels.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
