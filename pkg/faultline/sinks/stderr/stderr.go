// Package stderr provides a sink that prints notices to stderr in
// human-readable format. Useful for development and debugging.
package stderr

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/faultline/faultline/pkg/faultline"
)

// StderrSinkOption configures the stderr sink.
type StderrSinkOption func(*stderrSinkConfig)

type stderrSinkConfig struct {
	verbose bool
}

// WithVerbose enables full notice details including backtraces.
func WithVerbose() StderrSinkOption {
	return func(c *stderrSinkConfig) {
		c.verbose = true
	}
}

// stderrSink writes notices to stderr in human-readable format.
type stderrSink struct {
	verbose bool
}

// NewStderrSink creates a sink that writes to stderr.
func NewStderrSink(opts ...StderrSinkOption) faultline.Sink {
	cfg := &stderrSinkConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return &stderrSink{
		verbose: cfg.verbose,
	}
}

// Write formats and outputs the notice to stderr.
func (s *stderrSink) Write(ctx context.Context, notice *faultline.Notice) error {
	severity := strings.ToUpper(string(notice.Severity))
	timestamp := notice.Timestamp.Format("2006-01-02T15:04:05Z07:00")

	// Format: [FAULTLINE] <timestamp> <SEVERITY> <kind>: <message> (component)
	var parts []string
	parts = append(parts, fmt.Sprintf("[FAULTLINE] %s %s", timestamp, severity))

	if len(notice.Errors) > 0 {
		first := notice.Errors[0]
		parts = append(parts, fmt.Sprintf("%s: %s", first.Kind, first.Message))
	}
	if component, ok := notice.Context["component"]; ok {
		parts = append(parts, fmt.Sprintf("(component: %s)", component))
	}

	fmt.Fprintln(os.Stderr, strings.Join(parts, " "))

	if notice.Fingerprint != "" {
		fmt.Fprintf(os.Stderr, "        Fingerprint: %s\n", notice.Fingerprint)
	}

	if notice.System != nil && notice.System.Hostname != "" {
		fmt.Fprintf(os.Stderr, "        Host: %s (pid %d)\n", notice.System.Hostname, notice.System.PID)
	}

	// Backtraces (only in verbose mode)
	if s.verbose {
		for _, rec := range notice.Errors {
			if len(rec.Backtrace) == 0 {
				continue
			}
			fmt.Fprintf(os.Stderr, "        Backtrace of %s:\n", rec.Kind)
			for _, frame := range rec.Backtrace {
				fmt.Fprintf(os.Stderr, "          %s\n", frame)
			}
		}
	}

	return nil
}

// Flush is a no-op for stderr sink.
func (s *stderrSink) Flush(ctx context.Context) error {
	return nil
}

// Close is a no-op for stderr sink.
func (s *stderrSink) Close() error {
	return nil
}
