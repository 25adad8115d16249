// Package logger adapts rs/zerolog to the ports.Logger abstraction.
package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// ZeroLogger routes structured log events through zerolog.
type ZeroLogger struct {
	log zerolog.Logger
}

// New creates a ZeroLogger writing to stderr at the given level ("debug",
// "info", "warn", "error"; anything else means info).
func New(level string) *ZeroLogger {
	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().
		Level(parseLevel(level))
	return &ZeroLogger{log: zl}
}

// NewNop creates a ZeroLogger that discards everything; handy in tests.
func NewNop() *ZeroLogger {
	return &ZeroLogger{log: zerolog.Nop()}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *ZeroLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.Debug().Fields(fields).Msg(msg)
}

func (l *ZeroLogger) Info(msg string, fields map[string]interface{}) {
	l.log.Info().Fields(fields).Msg(msg)
}

func (l *ZeroLogger) Warn(msg string, fields map[string]interface{}) {
	l.log.Warn().Fields(fields).Msg(msg)
}

func (l *ZeroLogger) Error(msg string, err error, fields map[string]interface{}) {
	l.log.Error().Err(err).Fields(fields).Msg(msg)
}
