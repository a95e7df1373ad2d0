// Package async provides a sink wrapper with a bounded queue so recording a
// notice never blocks the failing code path. Oldest notices are dropped when
// the queue is full.
package async

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/faultline/faultline/pkg/faultline"
)

// AsyncSinkOption configures the async sink.
type AsyncSinkOption func(*asyncSinkConfig)

type asyncSinkConfig struct {
	queueSize int
	onDropped func(count int)
}

// WithQueueSize sets the maximum number of queued notices (default: 1000).
func WithQueueSize(size int) AsyncSinkOption {
	return func(c *asyncSinkConfig) {
		if size > 0 {
			c.queueSize = size
		}
	}
}

// WithOnDropped sets a callback invoked when notices are dropped due to
// queue overflow.
func WithOnDropped(fn func(count int)) AsyncSinkOption {
	return func(c *asyncSinkConfig) {
		c.onDropped = fn
	}
}

// asyncSink wraps a sink with a bounded queue.
type asyncSink struct {
	inner     faultline.Sink
	queue     chan *faultline.Notice
	done      chan struct{}
	closeOnce sync.Once
	closeMu   sync.Mutex
	closed    bool
	wg        sync.WaitGroup
	onDropped func(count int)
}

// NewAsyncSink wraps a sink with a bounded queue for async writes.
// Write() returns immediately; notices are delivered in the background.
// When the queue is full, the oldest notice is dropped to make room.
func NewAsyncSink(inner faultline.Sink, opts ...AsyncSinkOption) faultline.Sink {
	cfg := &asyncSinkConfig{
		queueSize: 1000,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s := &asyncSink{
		inner:     inner,
		queue:     make(chan *faultline.Notice, cfg.queueSize),
		done:      make(chan struct{}),
		onDropped: cfg.onDropped,
	}

	s.wg.Add(1)
	go s.processLoop()

	return s
}

// processLoop drains the queue and writes to the inner sink.
func (s *asyncSink) processLoop() {
	defer s.wg.Done()
	for {
		select {
		case notice, ok := <-s.queue:
			if !ok {
				return
			}
			// Ignore errors from inner sink (fire and forget)
			_ = s.inner.Write(context.Background(), notice)
		case <-s.done:
			// Drain remaining notices
			for {
				select {
				case notice, ok := <-s.queue:
					if !ok {
						return
					}
					_ = s.inner.Write(context.Background(), notice)
				default:
					return
				}
			}
		}
	}
}

// Write enqueues a notice for async delivery.
// Returns immediately. If the queue is full, drops the oldest notice.
func (s *asyncSink) Write(ctx context.Context, notice *faultline.Notice) error {
	s.closeMu.Lock()
	if s.closed {
		s.closeMu.Unlock()
		return errors.New("async sink is closed")
	}
	s.closeMu.Unlock()

	// Try to enqueue
	select {
	case s.queue <- notice:
		return nil
	default:
		// Queue is full - drop oldest and enqueue new
		s.dropOldestAndEnqueue(notice)
		return nil
	}
}

// dropOldestAndEnqueue drops the oldest notice and enqueues the new one.
func (s *asyncSink) dropOldestAndEnqueue(notice *faultline.Notice) {
	// Try to read (drop) one notice from the queue
	select {
	case <-s.queue:
		if s.onDropped != nil {
			s.onDropped(1)
		}
	default:
		// Queue was emptied by processor, try again
	}

	// Now try to enqueue again
	select {
	case s.queue <- notice:
	default:
		// Still full, just drop the new notice
		if s.onDropped != nil {
			s.onDropped(1)
		}
	}
}

// Flush blocks until all queued notices are delivered.
func (s *asyncSink) Flush(ctx context.Context) error {
	// Wait for queue to drain by checking periodically
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if len(s.queue) == 0 {
				// Give a moment for the last notice to be delivered
				time.Sleep(10 * time.Millisecond)
				return s.inner.Flush(ctx)
			}
		}
	}
}

// Close stops the async processor and closes the inner sink.
func (s *asyncSink) Close() error {
	s.closeOnce.Do(func() {
		s.closeMu.Lock()
		s.closed = true
		s.closeMu.Unlock()

		// Signal done and wait for drain
		close(s.done)
		s.wg.Wait()
		close(s.queue)
	})

	return s.inner.Close()
}
