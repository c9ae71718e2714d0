package world

import (
	"os"

	"github.com/rs/zerolog"
)

// NewConsoleLogger builds a human-readable zerolog.Logger writing to
// stderr, the default a caller reaches for when it wants World's pair
// start/stop diagnostics without setting up its own zerolog sink.
func NewConsoleLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
