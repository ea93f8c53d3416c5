package config

import (
	"log/slog"
	"os"
	"strings"
)

// NewLogger creates a structured JSON logger based on configuration
func (c *LoggerConfig) NewLogger() *slog.Logger {
	level := parseLogLevel(c.Level)

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug || level == slog.LevelError,
	})

	return slog.New(handler).With("service", "backoffice")
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
