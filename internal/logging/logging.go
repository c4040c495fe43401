// Package logging builds the zerolog loggers used across sigd.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevelStrict maps a level name to a zerolog level. It accepts zerolog's
// names plus "warning", "err" and "off"; empty input is info.
func ParseLevelStrict(s string) (zerolog.Level, error) {
	switch name := strings.ToLower(strings.TrimSpace(s)); name {
	case "":
		return zerolog.InfoLevel, nil
	case "warning":
		return zerolog.WarnLevel, nil
	case "err":
		return zerolog.ErrorLevel, nil
	case "off":
		return zerolog.Disabled, nil
	default:
		lvl, err := zerolog.ParseLevel(name)
		if err != nil || lvl == zerolog.NoLevel {
			return zerolog.NoLevel, fmt.Errorf("invalid log level %q", s)
		}
		return lvl, nil
	}
}

// ParseLevel is ParseLevelStrict with unknown names falling back to info.
func ParseLevel(s string) zerolog.Level {
	lvl, err := ParseLevelStrict(s)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// New returns a logger writing to w at the given level. format "json" emits
// one JSON object per line; anything else uses the console writer.
func New(level, format string, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if strings.ToLower(format) != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: !isTerminal(w)}
	}
	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
