package async

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/faultline/faultline/pkg/faultline"
)

// slowSink records notices with an optional per-write delay.
type slowSink struct {
	mu      sync.Mutex
	notices []*faultline.Notice
	delay   time.Duration
}

func (s *slowSink) Write(ctx context.Context, notice *faultline.Notice) error {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, notice)
	return nil
}

func (s *slowSink) Flush(ctx context.Context) error {
	return nil
}

func (s *slowSink) Close() error {
	return nil
}

func (s *slowSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notices)
}

func testNotice(kind string) *faultline.Notice {
	return &faultline.Notice{
		Severity: faultline.SeverityError,
		Errors:   []*faultline.ErrorRecord{{Kind: kind}},
	}
}

func TestAsyncSink_DeliversNotices(t *testing.T) {
	inner := &slowSink{}
	sink := NewAsyncSink(inner)
	defer sink.Close()

	for i := 0; i < 5; i++ {
		if err := sink.Write(context.Background(), testNotice("AppError")); err != nil {
			t.Fatalf("Write returned error: %v", err)
		}
	}

	if err := sink.Flush(context.Background()); err != nil {
		t.Fatalf("Flush returned error: %v", err)
	}
	if inner.count() != 5 {
		t.Errorf("delivered %d notices, want 5", inner.count())
	}
}

func TestAsyncSink_CloseDrainsQueue(t *testing.T) {
	inner := &slowSink{}
	sink := NewAsyncSink(inner)

	for i := 0; i < 10; i++ {
		_ = sink.Write(context.Background(), testNotice("AppError"))
	}

	if err := sink.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
}

func TestAsyncSink_WriteAfterClose(t *testing.T) {
	sink := NewAsyncSink(&slowSink{})

	if err := sink.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if err := sink.Write(context.Background(), testNotice("AppError")); err == nil {
		t.Error("Write after Close should return an error")
	}
}

func TestAsyncSink_CloseIsIdempotent(t *testing.T) {
	sink := NewAsyncSink(&slowSink{})

	if err := sink.Close(); err != nil {
		t.Fatalf("first Close returned error: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("second Close returned error: %v", err)
	}
}

func TestAsyncSink_DropsOldestWhenFull(t *testing.T) {
	inner := &slowSink{delay: 50 * time.Millisecond}

	var droppedMu sync.Mutex
	dropped := 0
	sink := NewAsyncSink(inner,
		WithQueueSize(2),
		WithOnDropped(func(count int) {
			droppedMu.Lock()
			dropped += count
			droppedMu.Unlock()
		}),
	)
	defer sink.Close()

	for i := 0; i < 20; i++ {
		if err := sink.Write(context.Background(), testNotice("AppError")); err != nil {
			t.Fatalf("Write returned error: %v", err)
		}
	}

	droppedMu.Lock()
	got := dropped
	droppedMu.Unlock()
	if got == 0 {
		t.Error("expected drops with a full queue and a slow inner sink")
	}
}

func TestAsyncSink_FlushRespectsContext(t *testing.T) {
	inner := &slowSink{delay: time.Second}
	sink := NewAsyncSink(inner)
	defer sink.Close()

	for i := 0; i < 3; i++ {
		_ = sink.Write(context.Background(), testNotice("AppError"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := sink.Flush(ctx); err == nil {
		t.Error("Flush should return the context error when it cannot drain in time")
	}
}
