// Package logging configures the structured logger. The dashboard owns
// the terminal, so logs go to a file instead of stdout.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// NewLogger creates a structured logger using log/slog at the specified
// level. Supported levels: "debug", "info", "warn", "error". Defaults to
// "info" if the level string is not recognised.
func NewLogger(w io.Writer, level string) *slog.Logger {
	var slevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		slevel = slog.LevelDebug
	case "info":
		slevel = slog.LevelInfo
	case "warn":
		slevel = slog.LevelWarn
	case "error":
		slevel = slog.LevelError
	default:
		slevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slevel,
	})
	return slog.New(handler)
}

// NewFileLogger opens (or creates) the log file at path and returns a
// logger writing to it. Falls back to a no-op logger when the file cannot
// be opened, so logging problems never take the dashboard down.
func NewFileLogger(path, level string) (*slog.Logger, func()) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return NewLogger(io.Discard, level), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return NewLogger(io.Discard, level), func() {}
	}
	return NewLogger(f, level), func() { _ = f.Close() }
}
