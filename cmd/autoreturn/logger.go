package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lmittmann/tint"

	"github.com/autoreturn/autoreturn/src/config"
)

// createCLILogger builds a colorized stderr logger for command output.
func createCLILogger(cfg *config.Config) *slog.Logger {
	if cfg.Log.File != "" {
		return createFileLogger(cfg)
	}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: parseLogLevel(cfg.Log.Level),
		}))
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: parseLogLevel(cfg.Log.Level),
	}))
}

// createFileLogger writes JSON logs to the configured file so they don't
// interleave with chat output. Falls back to a discard logger when the file
// cannot be opened.
func createFileLogger(cfg *config.Config) *slog.Logger {
	if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
		return discardLogger()
	}
	file, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return discardLogger()
	}
	return slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

func parseLogLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
