// Package logger configures the process-wide diagnostic logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var global = zerolog.New(io.Discard)

// Init sets up the global logger. Unknown levels fall back to warn so normal
// runs only show problems. Console output goes to w (stderr when nil).
func Init(level string, w io.Writer) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}
	if w == nil {
		w = os.Stderr
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
	}

	global = zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// InitJSON sets up the global logger with JSON lines output.
func InitJSON(level string, w io.Writer) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}
	global = zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// For returns a child logger tagged with a component name.
func For(component string) *zerolog.Logger {
	l := global.With().Str("component", component).Logger()
	return &l
}
