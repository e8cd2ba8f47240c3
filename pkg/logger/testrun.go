package logger

import (
	"io"
	"log/slog"
)

// NewTestHandler discards everything; used by unit tests.
func NewTestHandler(_ slog.Level) slog.Handler {
	return slog.NewTextHandler(io.Discard, nil)
}
