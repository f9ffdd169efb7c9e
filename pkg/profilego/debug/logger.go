package debug

import (
	"io"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
)

func NewLogger() zerolog.Logger {
	return NewLoggerTo(colorable.NewColorableStdout())
}

// NewLoggerTo is NewLogger with a different output, for programs that own
// stdout themselves.
func NewLoggerTo(out io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.Stamp,
	}).With().Timestamp().Logger()
}
