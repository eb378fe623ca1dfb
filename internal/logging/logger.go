// Package logging builds the zerolog loggers used across the mod loader.
//
// Structured output defaults to os.Stderr: stdout belongs to the host
// process and to demo narration, and a patch must never interleave its
// diagnostics with whatever the game prints there.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config contains logger configuration.
type Config struct {
	// Level sets the logging level (trace, debug, info, warn, error).
	// Argument rewrites log at trace, so diagnosing a patch usually
	// starts here.
	Level string
	// Pretty enables human-readable console output with colors.
	Pretty bool
	// Output sets the output writer (defaults to os.Stderr).
	Output io.Writer
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Pretty: true,
		Output: os.Stderr,
	}
}

// ParseLevel maps a configuration level name to a zerolog level. The
// second return is false for names New would silently coerce to info,
// which lets configuration validation reject them up front.
func ParseLevel(name string) (zerolog.Level, bool) {
	switch name {
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	default:
		return zerolog.InfoLevel, false
	}
}

// New creates a new zerolog logger with the given configuration.
// Unknown level names fall back to info rather than failing: a mod with
// a broken logging stanza should still come up and say so.
func New(cfg Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	level, _ := ParseLevel(cfg.Level)

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: "15:04:05",
			NoColor:    false,
		}
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// Component returns a child logger tagged with a component field.
// Loggers are built once at the entry point and handed down, so
// subsystems scope an existing logger instead of constructing their own.
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}
