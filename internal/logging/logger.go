// Package logging constructs the application's zerolog logger.
package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds a zerolog logger from the configured level and format.
// Unknown levels fall back to info; format "console" switches from the
// default JSON output to a human-friendly writer for local development.
func New(level, format, env string) zerolog.Logger {
	lvl := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level))); err == nil {
		lvl = parsed
	}

	var out = os.Stdout
	zerolog.TimeFieldFormat = time.RFC3339Nano
	logger := zerolog.New(out)
	if strings.EqualFold(strings.TrimSpace(format), "console") {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	}

	return logger.Level(lvl).With().
		Timestamp().
		Str("app", "pitch-booking").
		Str("env", env).
		Logger()
}
