// logger.go defines the diagnostics sink the truncator and collector report to.

package faultline

import (
	"fmt"
	"os"
)

// Logger receives informational diagnostics (truncation notices, shrink-loop
// progress). Implementations must not block; failures to log are never
// propagated to the caller.
type Logger interface {
	Info(msg string)
}

// LoggerFunc adapts a plain function to the Logger interface.
type LoggerFunc func(msg string)

// Info calls f(msg).
func (f LoggerFunc) Info(msg string) {
	f(msg)
}

// NewStderrLogger returns a Logger that writes one line per message to stderr.
func NewStderrLogger() Logger {
	return LoggerFunc(func(msg string) {
		fmt.Fprintln(os.Stderr, "[FAULTLINE]", msg)
	})
}

// noopLogger discards all messages.
type noopLogger struct{}

func (noopLogger) Info(string) {}
