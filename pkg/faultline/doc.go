// Package faultline prepares crash and error reports for delivery to a
// remote collector under hard size limits.
//
// The library is built around two independent pieces:
//
//   - ParseBacktrace: normalizes heterogeneous textual stack-trace lines
//     (native interpreter frames, foreign-VM frames, synthetic traces) into
//     structured StackFrame values.
//   - Truncator: recursively bounds the size of arbitrarily nested, possibly
//     cyclic payload trees and of error records, so the serialized notice
//     fits a byte budget while remaining well-formed text.
//
// Everything else is thin plumbing around that core:
//
//   - Notice: the canonical report with errors, params, context, and system info
//   - Collector: assigns identity, scrubs, fingerprints, and runs the adaptive
//     shrink loop (truncate, measure, halve the budget, retry) before handing
//     the notice to a sink
//   - Sink: destination for notices (stderr, noop, multi, async)
//   - Scrubber: key-blocklist redaction of sensitive params
//
// # Quick Start
//
//	collector := faultline.NewCollector(
//	    faultline.WithSink(stderr.NewStderrSink()),
//	    faultline.WithScrubber(faultline.DefaultScrubberConfig()),
//	)
//	defer collector.Close()
//	defer faultline.Recover(ctx, collector)
//
// # Design Principles
//
//   - Oversized data is never an error: strings, containers, and backtraces
//     are clipped by policy and the clipping is logged, not raised
//   - Recording never aborts the caller: sink and logger failures are swallowed
//   - No network, retry, or wire-encoding code lives here; delivery is a Sink
package faultline
