package config

import (
	"io"
	"log/slog"
	"strings"
)

// NopLogger returns a logger that discards all output.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLogLevel maps a level name to a slog level.
//
// Accepted names are case-insensitive:
//   - "debug", "info", "error"
//   - "warn" and its alias "warning"
//
// The second return value is false for empty or unknown names.
func ParseLogLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return 0, false
	}
}

// NewLogger returns a text logger on w at the named level.
// Unknown or empty level names disable logging.
func NewLogger(w io.Writer, level string) *slog.Logger {
	lvl, ok := ParseLogLevel(level)
	if !ok {
		return NopLogger()
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
