package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New constructs a zerolog.Logger writing to w. Development builds get
// human-readable console output at debug level.
func New(env string, w io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	if env == "development" {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()

	if env == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
	}

	return logger
}

// Plain returns an uncolored console logger, used where output lands in a
// buffer rendered by the TUI instead of a terminal.
func Plain(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05"}).
		With().
		Timestamp().
		Logger()
}
