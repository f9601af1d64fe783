// Package logger provides a configured zerolog logger.
package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New returns a zerolog.Logger for the named service. THISLIFE_LOG_LEVEL
// overrides the default info level; THISLIFE_LOG_PRETTY=true switches to
// the human-readable console writer for local runs.
func New(serviceName string) zerolog.Logger {
	level := zerolog.InfoLevel
	if raw := os.Getenv("THISLIFE_LOG_LEVEL"); raw != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(raw)); err == nil {
			level = parsed
		}
	}

	var out = zerolog.New(os.Stdout)
	if os.Getenv("THISLIFE_LOG_PRETTY") == "true" {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	return out.Level(level).With().
		Str("service", serviceName).
		Timestamp().
		Logger()
}
