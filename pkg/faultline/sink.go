// sink.go defines the Sink interface for notice destinations.

package faultline

import "context"

// Sink is the destination for prepared notices.
// Implementations must be safe for concurrent use.
type Sink interface {
	// Write persists a notice. Called after scrubbing and truncation; the
	// notice is owned by the collector and must not be mutated.
	Write(ctx context.Context, notice *Notice) error

	// Flush ensures any buffered notices are persisted.
	// For synchronous sinks, this may be a no-op.
	Flush(ctx context.Context) error

	// Close releases resources held by the sink.
	// After Close is called, Write and Flush should return errors.
	Close() error
}
