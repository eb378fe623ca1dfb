// Package testutil provides shared test helpers.
package testutil

import (
	"bytes"
	"io"
	"testing"

	"github.com/rs/zerolog"
)

// NewTestLogger creates a logger that discards output, for tests that
// exercise code paths without asserting on log lines.
func NewTestLogger(t *testing.T) zerolog.Logger {
	t.Helper()
	return zerolog.New(io.Discard).With().Timestamp().Logger()
}

// NewCaptureLogger creates a trace-level logger backed by a buffer, for
// asserting on emitted log lines. Trace level keeps rewrite diagnostics
// visible to assertions.
func NewCaptureLogger(t *testing.T) (zerolog.Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	return zerolog.New(buf).Level(zerolog.TraceLevel), buf
}
