package logging

import (
	"io"
	"log/slog"
	"time"

	"github.com/rs/zerolog"
)

const (
	BackendSlog    = "slog"
	BackendZerolog = "zerolog"
)

// New builds a Logger for the named backend writing to w. Unknown backends
// fall back to slog. When json is false the slog backend uses the text
// handler and zerolog uses its console writer.
func New(backend string, w io.Writer, json bool) Logger {
	switch backend {
	case BackendZerolog:
		out := w
		if !json {
			out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
		}
		return NewZerologLogger(zerolog.New(out).With().Timestamp().Logger())
	default:
		var h slog.Handler
		if json {
			h = slog.NewJSONHandler(w, nil)
		} else {
			h = slog.NewTextHandler(w, nil)
		}
		return NewSlogLogger(slog.New(h))
	}
}
