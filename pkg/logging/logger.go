// Package logging configures the process-wide structured logger.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Init installs a text-handler slog logger at the given level as the
// process default and returns it.
func Init(levelStr string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(levelStr),
		AddSource: strings.EqualFold(levelStr, "debug"),
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
	slog.SetDefault(logger)
	return logger
}

func parseLevel(levelStr string) slog.Level {
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
