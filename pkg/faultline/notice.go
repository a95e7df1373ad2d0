// notice.go defines the canonical crash-report data structures.

package faultline

import (
	"strconv"
	"time"
)

// Severity indicates how serious a reported problem is.
type Severity string

const (
	// SeverityWarning indicates a non-fatal issue that may need attention.
	SeverityWarning Severity = "warning"

	// SeverityError indicates a recoverable error that caused an operation to fail.
	SeverityError Severity = "error"

	// SeverityCrash indicates an unrecoverable error such as a panic.
	SeverityCrash Severity = "crash"
)

// StackFrame is one entry of a parsed backtrace.
// Line is 0 and Function is empty when the source line did not carry them.
type StackFrame struct {
	// File is the source file the frame points at.
	File string

	// Line is the 1-based source line, when known.
	Line int

	// Function is the function or method name, when known.
	Function string
}

// String renders the frame in file:line in function form.
func (f StackFrame) String() string {
	label := f.File
	if f.Line > 0 {
		label += ":" + strconv.Itoa(f.Line)
	}
	if f.Function != "" {
		label += " in " + f.Function
	}
	return label
}

// ErrorRecord describes a single error inside a notice.
// The truncator mutates records in place; the caller owns them.
type ErrorRecord struct {
	// Kind categorizes the error (exception class, "panic", "timeout", ...).
	Kind string

	// Message is the human-readable error message.
	Message string

	// Backtrace is the parsed stack trace, innermost frame first.
	Backtrace []StackFrame
}

// SystemInfo captures process state at report time.
type SystemInfo struct {
	// Hostname of the machine where the error occurred.
	Hostname string

	// PID of the reporting process.
	PID int

	// GoroutineCount is the number of active goroutines.
	GoroutineCount int

	// MemoryBytes is the current heap allocation in bytes.
	MemoryBytes int64

	// UptimeMs is the process uptime in milliseconds.
	UptimeMs int64
}

// Notice is the canonical crash report handed to sinks.
// The collector populates identity fields before delivery.
type Notice struct {
	// ID is a unique identifier for this notice (UUID).
	ID string

	// Timestamp is when the report was captured.
	Timestamp time.Time

	// Fingerprint is a stable hash for grouping similar notices.
	Fingerprint string

	// Severity of the underlying problem.
	Severity Severity

	// Errors carried by the notice, outermost cause first.
	Errors []*ErrorRecord

	// Params is the arbitrary report payload (request params, job args).
	// Must be a container Value (*Map, *Seq, or *Set) when set.
	Params Value

	// Context holds flat key-value annotations (component, environment, ...).
	Context map[string]string

	// System captures process state at report time.
	System *SystemInfo
}
