package logger

import (
	"io"
	"log/slog"
	"strings"
)

const serviceName = "astromaster"

// NewWithWriter constructs the JSON slog logger shared by the server and the CLI.
func NewWithWriter(w io.Writer, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return slog.New(handler).With("service", serviceName)
}

// ParseLevel maps a textual level onto slog, defaulting to info.
func ParseLevel(level string) slog.Leveler {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
