// Package logging configures the zerolog logger shared by all sentinel
// components.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// New creates the process logger.
//
// Log levels are set as follows:
//   - verbose=true: Debug level (most detailed)
//   - default: Info level (normal operation)
//
// Output format is determined by the terminal: a TTY without NO_COLOR
// gets the console writer, everything else gets JSON on stderr.
func New(verbose bool) zerolog.Logger {
	return zerolog.New(selectOutput()).Level(selectLevel(verbose)).With().Timestamp().Logger()
}

func selectLevel(verbose bool) zerolog.Level {
	if verbose {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

func selectOutput() io.Writer {
	if term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	}
	return os.Stderr
}
