package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// newLogger builds the human-readable stderr logger.
// quiet keeps errors only; verbose adds debug output.
func newLogger(w io.Writer, quiet, verbose, noColor bool) zerolog.Logger {
	level := zerolog.InfoLevel
	switch {
	case quiet:
		level = zerolog.ErrorLevel
	case verbose:
		level = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: time.TimeOnly,
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
