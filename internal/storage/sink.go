package storage

import (
	"context"
	"log/slog"

	"skypad/internal/contextutil"
)

// ErrorSink decides what happens to a failed unit of work.
// The transaction has already been rolled back when Handle is called.
type ErrorSink interface {
	// Handle returns the error to propagate to the caller, or nil to swallow it.
	Handle(ctx context.Context, err *StoreError) error
}

// FatalSink silently aborts the current unit of work.
// Used for schema statements where "already exists" is expected.
type FatalSink struct{}

// Handle swallows err.
func (FatalSink) Handle(ctx context.Context, err *StoreError) error {
	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "unit of work aborted",
		"op", err.Op, "error", err)
	return nil
}

// ReportingSink logs the failure and hands it back to the caller.
type ReportingSink struct {
	Logger *slog.Logger // Falls back to the context logger when nil
}

// Handle logs err and returns it.
func (s ReportingSink) Handle(ctx context.Context, err *StoreError) error {
	logger := s.Logger
	if logger == nil {
		logger = contextutil.LoggerFromContext(ctx)
	}
	logger.ErrorContext(ctx, "store operation failed",
		"op", err.Op, "kind", err.Kind, "code", err.Code, "error", err.Err)
	return err
}
