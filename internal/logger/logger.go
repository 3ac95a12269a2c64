package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

func New() zerolog.Logger {
	return NewWriter(os.Stdout, os.Getenv("LOG_LEVEL"))
}

// NewWriter builds a logger at the named level, defaulting to info when the
// level is empty or unknown.
func NewWriter(w io.Writer, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(w).
		With().
		Timestamp().
		Caller().
		Logger()

	return logger.Level(ParseLevel(level))
}

// Console is the human readable variant used by the CLI, written to stderr so
// that command output stays machine readable.
func Console(level string) zerolog.Logger {
	return NewWriter(zerolog.ConsoleWriter{Out: os.Stderr}, level)
}

func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
