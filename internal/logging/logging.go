// Package logging builds the process logger.
package logging

import (
	"io"
	"log/slog"
	"strings"

	wailslogger "github.com/wailsapp/wails/v2/pkg/logger"
)

// ParseLevel maps a config value to a slog level. Unknown values mean info.
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug", "trace":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a text logger writing to w at the given level.
func New(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// WailsLevel maps the same config value onto the Wails runtime log level.
func WailsLevel(value string) wailslogger.LogLevel {
	switch ParseLevel(value) {
	case slog.LevelDebug:
		return wailslogger.DEBUG
	case slog.LevelWarn:
		return wailslogger.WARNING
	case slog.LevelError:
		return wailslogger.ERROR
	default:
		return wailslogger.INFO
	}
}
