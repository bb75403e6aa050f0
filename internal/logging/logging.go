// Package logging builds the zerolog logger used for diagnostics on stderr.
package logging

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// New returns a logger writing to w. jsonLines selects JSON output; otherwise
// the human console writer is used. An unknown level falls back to warn.
func New(level string, jsonLines bool, w io.Writer) zerolog.Logger {
	var out io.Writer = w
	if !jsonLines {
		out = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05"}
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
