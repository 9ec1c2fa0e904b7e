package unittest

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var verbose = flag.Bool("vv", false, "print debugging logs")

// Logger returns a debug level logger which discards its output unless the tests
// run with -vv.
func Logger() zerolog.Logger {
	if *verbose {
		return LoggerWithWriter(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339Nano})
	}
	return LoggerWithWriter(io.Discard)
}

// LoggerWithWriter returns a debug level logger writing JSON lines to w, for tests
// which assert on what was logged.
func LoggerWithWriter(w io.Writer) zerolog.Logger {
	return zerolog.New(w).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}
