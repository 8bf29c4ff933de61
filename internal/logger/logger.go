// Package logger provides leveled and structured logging for the portal.
//
// The package-level functions (Debug, Info, Warn, Error, Section) write
// through a shared zerolog logger. Verbose mode, enabled via the --verbose
// flag, lowers the level to debug so every cache hit, miss and query is shown.
//
// For reports per content domain, For returns a DomainLogger that tags each
// entry with its domain and implements driven.EventLogger.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu      sync.RWMutex
	verbose bool
	pretty  bool
	level             = zerolog.WarnLevel
	output  io.Writer = os.Stderr
	base              = build()
)

// build assembles the shared logger from the current settings (caller must hold lock).
func build() zerolog.Logger {
	w := zerolog.SyncWriter(output)
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	lvl := level
	if verbose {
		lvl = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// current returns the shared logger.
func current() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Configure sets the minimum level ("trace", "debug", "info", "warn", "error")
// and whether output is human-readable instead of JSON.
func Configure(lvl string, prettyOutput bool) {
	mu.Lock()
	defer mu.Unlock()
	level = ParseLevel(lvl)
	pretty = prettyOutput
	base = build()
}

// ParseLevel converts a level name to a zerolog level. Unknown names map to warn.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	base = build()
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	base = build()
}

// L returns the shared zerolog logger for adapters that log structured fields directly.
func L() zerolog.Logger {
	return current()
}

// Debug logs a formatted debug message.
func Debug(format string, args ...any) {
	l := current()
	l.Debug().Msgf(format, args...)
}

// Section logs a section header at debug level.
func Section(name string) {
	l := current()
	l.Debug().Str("section", name).Msg("=== " + name + " ===")
}

// Info logs a formatted informational message.
func Info(format string, args ...any) {
	l := current()
	l.Info().Msgf(format, args...)
}

// Warn logs a formatted warning.
func Warn(format string, args ...any) {
	l := current()
	l.Warn().Msgf(format, args...)
}

// Error logs a formatted error.
func Error(format string, args ...any) {
	l := current()
	l.Error().Msgf(format, args...)
}
