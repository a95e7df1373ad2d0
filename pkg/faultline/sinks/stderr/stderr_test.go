package stderr

import (
	"context"
	"testing"
	"time"

	"github.com/faultline/faultline/pkg/faultline"
)

func testNotice() *faultline.Notice {
	return &faultline.Notice{
		ID:          "test-id",
		Timestamp:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Fingerprint: "abc123",
		Severity:    faultline.SeverityError,
		Errors: []*faultline.ErrorRecord{{
			Kind:    "AppError",
			Message: "something broke",
			Backtrace: []faultline.StackFrame{
				{File: "/app/foo.rb", Line: 10, Function: "bar"},
			},
		}},
		Context: map[string]string{"component": "billing"},
	}
}

func TestStderrSink_Write(t *testing.T) {
	sink := NewStderrSink()

	if err := sink.Write(context.Background(), testNotice()); err != nil {
		t.Errorf("Write returned error: %v", err)
	}
}

func TestStderrSink_WriteVerbose(t *testing.T) {
	sink := NewStderrSink(WithVerbose())

	if err := sink.Write(context.Background(), testNotice()); err != nil {
		t.Errorf("Write returned error: %v", err)
	}
}

func TestStderrSink_WriteMinimalNotice(t *testing.T) {
	sink := NewStderrSink()

	notice := &faultline.Notice{Severity: faultline.SeverityWarning}
	if err := sink.Write(context.Background(), notice); err != nil {
		t.Errorf("Write returned error for minimal notice: %v", err)
	}
}

func TestStderrSink_FlushAndClose(t *testing.T) {
	sink := NewStderrSink()

	if err := sink.Flush(context.Background()); err != nil {
		t.Errorf("Flush returned error: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Errorf("Close returned error: %v", err)
	}
}
