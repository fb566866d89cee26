// Package logging builds the application's zerolog logger from config.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dstanziola/copypoint/config"
)

// New creates a logger from config. Unknown levels fall back to info;
// format "console" gets the human-readable writer, anything else emits
// structured JSON.
func New(cfg config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stderr
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
