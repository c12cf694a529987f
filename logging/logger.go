// Package logging provides the process-wide debug logger used outside of individual checks.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// ConsoleLogger writes human-readable, timestamped debug lines. It has the same Printf method
// as framework.Logger, so it can be passed anywhere the harness expects a logger.
type ConsoleLogger struct {
	zl zerolog.Logger
}

// NewConsoleLogger creates a logger that writes to out, or to stdout if out is nil. When
// enabled is false, everything is discarded.
func NewConsoleLogger(out io.Writer, enabled bool) *ConsoleLogger {
	if out == nil {
		out = os.Stdout
	}
	level := zerolog.DebugLevel
	if !enabled {
		level = zerolog.Disabled
	}
	zl := zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05.000"}).
		Level(level).
		With().
		Timestamp().
		Logger()
	return &ConsoleLogger{zl: zl}
}

// WithComponent returns a logger that tags every line with a different component name.
func (l *ConsoleLogger) WithComponent(component string) *ConsoleLogger {
	return &ConsoleLogger{zl: l.zl.With().Str("component", component).Logger()}
}

func (l *ConsoleLogger) Printf(message string, args ...interface{}) {
	l.zl.Debug().Msgf(message, args...)
}
