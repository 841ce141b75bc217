// Package logger provides the process-wide diagnostic logger. It is separate
// from the per-request wire logs the curly package writes to disk: this one
// is for the tool's own debug and error output on stderr.
package logger

import (
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	once     sync.Once
	instance *zerolog.Logger
)

// Get returns the singleton logger, initializing it on first call. The level
// defaults to warn and can be raised via CURLY_LOG_LEVEL (trace, debug, info,
// warn, error).
func Get() *zerolog.Logger {
	once.Do(func() {
		level := zerolog.WarnLevel
		if raw := os.Getenv("CURLY_LOG_LEVEL"); raw != "" {
			if parsed, err := zerolog.ParseLevel(strings.ToLower(raw)); err == nil {
				level = parsed
			}
		}

		writer := zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "15:04:05",
		}
		zl := zerolog.New(writer).Level(level).With().Timestamp().Logger()
		instance = &zl
	})
	return instance
}
