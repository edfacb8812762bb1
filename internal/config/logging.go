package config

import (
	"log/slog"
	"os"
	"strings"
)

// ParseLogLevel maps a LOG_LEVEL value to a slog level. Unknown values are info.
func ParseLogLevel(logLevel string) slog.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetupLogging installs the process-wide slog handler. Call once at startup.
func SetupLogging(logLevel string) {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: ParseLogLevel(logLevel),
	})
	slog.SetDefault(slog.New(handler))
}
