// zerolog-backed implementation of the Logger interface.

package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

var (
	mu          sync.RWMutex
	minLevel    = LevelInfo
	baseOut     io.Writer = os.Stderr
	defaultRoot Logger
)

// SetLevel sets the minimum level for loggers returned by GetLogger and
// GetLoggerWithName.
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = level
	defaultRoot = nil
}

// SetOutput redirects log output. The default is standard error.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	baseOut = w
	defaultRoot = nil
}

// GetLogger returns the process-wide default logger.
func GetLogger() Logger {
	mu.Lock()
	defer mu.Unlock()
	if defaultRoot == nil {
		zl := zerolog.New(baseOut).With().Timestamp().Logger().Level(toZerologLevel(minLevel))
		defaultRoot = &zerologLogger{zl: zl, level: minLevel}
	}
	return defaultRoot
}

// GetLoggerWithName returns a logger tagged with a component name.
func GetLoggerWithName(name string) Logger {
	return GetLogger().With(ComponentKey, name)
}

func toZerologLevel(l Level) zerolog.Level {
	switch {
	case l <= LevelDebug:
		return zerolog.DebugLevel
	case l <= LevelInfo:
		return zerolog.InfoLevel
	case l <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// zerologLogger adapts a zerolog.Logger to the Logger interface.
type zerologLogger struct {
	zl    zerolog.Logger
	level Level
}

func (z *zerologLogger) Debug(msg string, fields ...any) {
	z.emit(z.zl.Debug(), msg, fields)
}

func (z *zerologLogger) Info(msg string, fields ...any) {
	z.emit(z.zl.Info(), msg, fields)
}

func (z *zerologLogger) Warn(msg string, fields ...any) {
	z.emit(z.zl.Warn(), msg, fields)
}

func (z *zerologLogger) Error(msg string, fields ...any) {
	z.emit(z.zl.Error(), msg, fields)
}

func (z *zerologLogger) With(fields ...any) Logger {
	ctx := z.zl.With()
	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprintf("%v", fields[i])
		ctx = ctx.Interface(key, fields[i+1])
	}
	return &zerologLogger{zl: ctx.Logger(), level: z.level}
}

func (z *zerologLogger) Enabled(_ context.Context, level Level) bool {
	return level >= z.level
}

// emit attaches the key-value fields to the event. Error values get a
// stacktrace attribute when cockroachdb/errors recorded one.
func (z *zerologLogger) emit(e *zerolog.Event, msg string, fields []any) {
	if e == nil {
		return
	}
	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprintf("%v", fields[i])
		value := fields[i+1]
		if err, ok := value.(error); ok {
			e = e.AnErr(key, err)
			if st := extractStacktrace(err); st != "" {
				e = e.Str(StacktraceAttrKey, st)
			}
			continue
		}
		e = e.Interface(key, value)
	}
	e.Msg(msg)
}

func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}
