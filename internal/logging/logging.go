// Package logging builds the structured loggers handed to each step.
package logging

import (
	"io"
	"log/slog"
)

// New returns a JSON logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// ForInvocation scopes logger to one step invocation.
// Empty identifiers are left out.
func ForInvocation(logger *slog.Logger, step, runID, requestID string) *slog.Logger {
	args := []any{"step", step}
	if runID != "" {
		args = append(args, "run_id", runID)
	}
	if requestID != "" {
		args = append(args, "request_id", requestID)
	}
	return logger.With(args...)
}
