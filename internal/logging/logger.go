// Package logging provides the logging interface and default implementation
// used across the channel engine.
//
// Design: four-level interface (Error, Warn, Info, Debug), a plain
// printf-style shape so callers can wrap their own structured logger
// (slog, zap) if needed.
//
// Log format: YYYY/MM/DD HH:MM:SS LEVEL [component] message
//
// Example: 2026/08/01 18:45:13 INFO [writer] closed channel id=1 pos=4096
//
// Component namespace prefixes:
//   - [writer]  — writer state machine events (create, close, abort, full)
//   - [reader]  — reader terminal transitions and corruption
//   - [mmap]    — mapped-region setup (create, map); unmapping is not logged
//   - [timeout] — timeout-reader liveness transitions
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"reflect"
)

// Level represents the logging level.
type Level int

const (
	// LevelError logs only errors.
	LevelError Level = iota
	// LevelWarn logs warnings and errors.
	LevelWarn
	// LevelInfo logs info, warnings, and errors.
	LevelInfo
	// LevelDebug logs everything including debug messages.
	LevelDebug
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// Logger defines the interface used for all engine-side logging.
//
// Concurrency: DefaultLogger and Discard are safe for concurrent use.
// User-provided implementations must be safe for concurrent use, since a
// writer and any number of readers may log from independent goroutines.
//
// None of the hot-path operations (Write, try_read) log unconditionally —
// only slow-path events (create, open, terminal transitions, corruption) do,
// so a Logger on the hot path never threatens the wait-free/lock-free
// contract of the engine.
type Logger interface {
	Errorf(format string, args ...any)
	Warnf(format string, args ...any)
	Infof(format string, args ...any)
	Debugf(format string, args ...any)
}

// DefaultLogger writes to a configured output at a configured level.
// It is stateless beyond its embedded *log.Logger, which is itself
// safe for concurrent use.
type DefaultLogger struct {
	logger *log.Logger
	level  Level
}

// NewDefaultLogger creates a logger that writes to stderr.
func NewDefaultLogger(level Level) *DefaultLogger {
	return &DefaultLogger{
		logger: log.New(os.Stderr, "", log.LstdFlags),
		level:  level,
	}
}

// NewLogger creates a logger writing to w at the given level.
func NewLogger(w io.Writer, level Level) *DefaultLogger {
	return &DefaultLogger{
		logger: log.New(w, "", log.LstdFlags),
		level:  level,
	}
}

// Level returns the logger's configured level.
func (l *DefaultLogger) Level() Level {
	return l.level
}

// Errorf logs a formatted error message.
func (l *DefaultLogger) Errorf(format string, args ...any) {
	if l.level >= LevelError {
		_ = l.logger.Output(2, "ERROR "+fmt.Sprintf(format, args...))
	}
}

// Warnf logs a formatted warning message.
func (l *DefaultLogger) Warnf(format string, args ...any) {
	if l.level >= LevelWarn {
		_ = l.logger.Output(2, "WARN "+fmt.Sprintf(format, args...))
	}
}

// Infof logs a formatted informational message.
func (l *DefaultLogger) Infof(format string, args ...any) {
	if l.level >= LevelInfo {
		_ = l.logger.Output(2, "INFO "+fmt.Sprintf(format, args...))
	}
}

// Debugf logs a formatted debug message.
func (l *DefaultLogger) Debugf(format string, args ...any) {
	if l.level >= LevelDebug {
		_ = l.logger.Output(2, "DEBUG "+fmt.Sprintf(format, args...))
	}
}

// Namespace prefixes for log messages.
const (
	NSWriter  = "[writer] "
	NSReader  = "[reader] "
	NSMmap    = "[mmap] "
	NSTimeout = "[timeout] "
)

// IsNil returns true if l is nil or a typed-nil interface value.
//
//	var l *DefaultLogger = nil
//	opts.Logger = l // interface is non-nil, underlying pointer is
//
// Calling methods on a typed-nil panics, so writer/reader construction
// checks this before storing a caller-supplied Logger.
func IsNil(l Logger) bool {
	if l == nil {
		return true
	}
	v := reflect.ValueOf(l)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// OrDefault returns l if valid, otherwise the package-level Discard logger.
func OrDefault(l Logger) Logger {
	if IsNil(l) {
		return Discard
	}
	return l
}
