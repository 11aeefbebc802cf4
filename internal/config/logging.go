package config

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a console logger writing to w at level, or at debug
// level when debug is set. An unknown level falls back to info.
func NewLogger(w io.Writer, level string, debug bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if debug {
		lvl = zerolog.DebugLevel
	}
	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
	return zerolog.New(console).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// Logger returns the logger configured by c.
func (c Config) Logger(w io.Writer) zerolog.Logger {
	return NewLogger(w, c.LogLevel, c.Debug)
}
