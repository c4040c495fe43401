package httpapi

import (
	"io"

	"github.com/rs/zerolog"
)

func newBufferLogger(w io.Writer) zerolog.Logger {
	if w == nil {
		return zerolog.Nop()
	}
	return zerolog.New(w).Level(zerolog.DebugLevel)
}
