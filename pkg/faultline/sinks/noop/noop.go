// Package noop provides a sink that discards all notices.
// Useful as a safe default and in tests.
package noop

import (
	"context"

	"github.com/faultline/faultline/pkg/faultline"
)

// noopSink discards all notices.
type noopSink struct{}

// NewNoopSink creates a sink that discards everything it receives.
func NewNoopSink() faultline.Sink {
	return &noopSink{}
}

// Write discards the notice.
func (s *noopSink) Write(ctx context.Context, notice *faultline.Notice) error {
	return nil
}

// Flush is a no-op.
func (s *noopSink) Flush(ctx context.Context) error {
	return nil
}

// Close is a no-op.
func (s *noopSink) Close() error {
	return nil
}
