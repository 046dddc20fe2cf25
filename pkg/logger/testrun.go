package logger

import (
	"io"
	"log/slog"
)

// NewTestHandler discards all output; used by tests.
func NewTestHandler(_ slog.Level) slog.Handler {
	return slog.NewTextHandler(io.Discard, nil)
}
