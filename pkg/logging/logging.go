// Package logging configures colored structured logging with tint.
//
// Usage:
//
//	logger := logging.Setup()  // level from LOG_LEVEL, installed as slog default
//
// Environment variables:
//
//	LOG_LEVEL: debug, info, warn, error (default: info)
//	NO_COLOR:  any value disables ANSI colors
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs a tint handler on stderr as the default logger, at the level
// given by LOG_LEVEL, and returns it.
func Setup() *slog.Logger {
	_, noColor := os.LookupEnv("NO_COLOR")
	logger := New(os.Stderr, ParseLevel(os.Getenv("LOG_LEVEL")), noColor)
	slog.SetDefault(logger)
	return logger
}

// New builds a tint logger writing to w.
func New(w io.Writer, level slog.Level, noColor bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  level == slog.LevelDebug,
		NoColor:    noColor,
	}))
}

// ParseLevel maps a level name to a slog level. Unknown names mean info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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
