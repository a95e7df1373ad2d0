// recover.go provides the Recover helper for standalone panic capture.
// Use this in HTTP handlers, goroutines, or other code outside a framework.

package faultline

import (
	"context"
	"fmt"
	"runtime"
)

// Recover captures a panic, records it to the collector, and returns the
// recovered value. Recover does NOT re-panic after recording.
//
// It must be deferred directly, since recover only works when called by the
// deferred function itself:
//
//	func handler(ctx context.Context) {
//	    defer faultline.Recover(ctx, collector)
//	    // code that might panic
//	}
func Recover(ctx context.Context, collector Collector) any {
	r := recover()
	if r == nil {
		return nil
	}

	notice := &Notice{
		Severity: SeverityCrash,
		Errors: []*ErrorRecord{{
			Kind:      "panic",
			Message:   formatRecovered(r),
			Backtrace: callerFrames(3),
		}},
	}

	// Record the notice (ignore errors - we don't want to affect caller)
	_ = collector.Record(ctx, notice)

	return r
}

// formatRecovered formats a recovered panic value as a string.
func formatRecovered(recovered any) string {
	if recovered == nil {
		return "<nil>"
	}
	if err, ok := recovered.(error); ok {
		return err.Error()
	}
	return fmt.Sprintf("%v", recovered)
}

// callerFrames builds structured frames for the current goroutine, skipping
// the given number of callers plus the runtime internals.
func callerFrames(skip int) []StackFrame {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(skip, pcs)
	if n == 0 {
		return nil
	}

	callers := runtime.CallersFrames(pcs[:n])
	var frames []StackFrame
	for {
		frame, more := callers.Next()
		frames = append(frames, StackFrame{
			File:     frame.File,
			Line:     frame.Line,
			Function: frame.Function,
		})
		if !more {
			break
		}
	}
	return frames
}
