// collector.go provides the central Collector interface and default implementation.

package faultline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Default limits. The payload limit is the outer transport budget a
// serialized notice must fit; the max size is the truncator's starting
// budget, halved on each shrink attempt.
const (
	defaultMaxSize      = 10000
	defaultPayloadLimit = 64000
	defaultMaxAttempts  = 8
)

// Sizer measures a notice's serialized size in bytes.
type Sizer func(notice *Notice) (int, error)

// Collector records notices to configured sinks.
type Collector interface {
	// Record prepares a notice (identity, scrubbing, fingerprinting,
	// truncation) and writes it to the sink. Blocks until persisted.
	Record(ctx context.Context, notice *Notice) error

	// Flush ensures any buffered notices are persisted.
	// For synchronous collectors, this may be a no-op.
	Flush(ctx context.Context) error

	// Close releases resources held by the collector.
	Close() error
}

// CollectorOption configures a Collector.
type CollectorOption func(*collectorConfig)

type collectorConfig struct {
	sink         Sink
	scrubber     *Scrubber
	logger       Logger
	maxSize      int
	payloadLimit int
	maxAttempts  int
	sizer        Sizer
}

// WithSink sets the sink for the collector.
func WithSink(sink Sink) CollectorOption {
	return func(c *collectorConfig) {
		c.sink = sink
	}
}

// WithScrubber configures the collector with a custom scrubber configuration.
func WithScrubber(cfg ScrubberConfig) CollectorOption {
	return func(c *collectorConfig) {
		c.scrubber = NewScrubber(cfg)
	}
}

// WithLogger sets the diagnostics logger used by the truncator.
func WithLogger(logger Logger) CollectorOption {
	return func(c *collectorConfig) {
		c.logger = logger
	}
}

// WithMaxSize sets the truncator's starting budget.
func WithMaxSize(maxSize int) CollectorOption {
	return func(c *collectorConfig) {
		if maxSize > 0 {
			c.maxSize = maxSize
		}
	}
}

// WithPayloadLimit sets the serialized-size budget a notice must fit.
func WithPayloadLimit(limit int) CollectorOption {
	return func(c *collectorConfig) {
		if limit > 0 {
			c.payloadLimit = limit
		}
	}
}

// WithSizer replaces the serialized-size measurement (default: JSON length).
func WithSizer(sizer Sizer) CollectorOption {
	return func(c *collectorConfig) {
		if sizer != nil {
			c.sizer = sizer
		}
	}
}

// defaultCollector is the standard Collector implementation.
type defaultCollector struct {
	sink         Sink
	scrubber     *Scrubber
	logger       Logger
	maxSize      int
	payloadLimit int
	maxAttempts  int
	sizer        Sizer
	startTime    time.Time
}

// NewCollector creates a new Collector with the given options.
func NewCollector(opts ...CollectorOption) Collector {
	cfg := &collectorConfig{
		logger:       noopLogger{},
		maxSize:      defaultMaxSize,
		payloadLimit: defaultPayloadLimit,
		maxAttempts:  defaultMaxAttempts,
		sizer:        jsonSizer,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	// Default to a noop sink if none provided
	if cfg.sink == nil {
		cfg.sink = &noopSinkInternal{}
	}

	return &defaultCollector{
		sink:         cfg.sink,
		scrubber:     cfg.scrubber,
		logger:       cfg.logger,
		maxSize:      cfg.maxSize,
		payloadLimit: cfg.payloadLimit,
		maxAttempts:  cfg.maxAttempts,
		sizer:        cfg.sizer,
		startTime:    time.Now(),
	}
}

// Record prepares the notice and writes it to the sink.
func (c *defaultCollector) Record(ctx context.Context, notice *Notice) error {
	if notice == nil {
		return fmt.Errorf("nil notice")
	}

	// Identity
	if notice.ID == "" {
		notice.ID = uuid.NewString()
	}
	if notice.Timestamp.IsZero() {
		notice.Timestamp = time.Now()
	}
	if notice.Severity == "" {
		if severity, ok := SeverityFromContext(ctx); ok {
			notice.Severity = severity
		} else {
			notice.Severity = SeverityError
		}
	}

	// Context annotations
	if component, ok := ComponentFromContext(ctx); ok {
		if notice.Context == nil {
			notice.Context = make(map[string]string)
		}
		if _, exists := notice.Context["component"]; !exists {
			notice.Context["component"] = component
		}
	}
	if notice.System == nil {
		notice.System = CaptureSystemInfo(c.startTime)
	}

	// Scrubbing happens before truncation so redaction markers are what
	// gets measured.
	if c.scrubber != nil {
		if notice.Params != nil {
			c.scrubber.ScrubParams(notice.Params)
		}
		c.scrubber.ScrubContext(notice.Context)
	}

	notice.Fingerprint = Fingerprint(notice)

	if err := c.shrink(notice); err != nil {
		return err
	}

	return c.sink.Write(ctx, notice)
}

// shrink runs the adaptive truncation loop: truncate, measure, halve the
// budget, retry. Error records shrink monotonically in place; params are
// re-derived from the caller's original tree on every attempt.
func (c *defaultCollector) shrink(notice *Notice) error {
	truncator := NewTruncator(c.maxSize, c.logger)
	original := notice.Params

	for attempt := 1; ; attempt++ {
		for _, rec := range notice.Errors {
			truncator.TruncateError(rec)
		}
		if original != nil {
			truncated, err := truncator.TruncateObject(original)
			if err != nil {
				return fmt.Errorf("truncating params: %w", err)
			}
			notice.Params = truncated
		}

		size, err := c.sizer(notice)
		if err != nil {
			return fmt.Errorf("measuring notice: %w", err)
		}
		if size <= c.payloadLimit || attempt >= c.maxAttempts {
			return nil
		}

		truncator.ReduceMaxSize()
		c.logger.Info(fmt.Sprintf(
			"notice is %d bytes (limit %d), retrying with max size %d",
			size, c.payloadLimit, truncator.MaxSize()))
	}
}

// Flush delegates to the sink.
func (c *defaultCollector) Flush(ctx context.Context) error {
	return c.sink.Flush(ctx)
}

// Close delegates to the sink.
func (c *defaultCollector) Close() error {
	return c.sink.Close()
}

// jsonSizer measures a notice by its JSON encoding length.
func jsonSizer(notice *Notice) (int, error) {
	b, err := json.Marshal(notice)
	if err != nil {
		return 0, err
	}
	return len(b), nil
}

// noopSinkInternal is an internal noop sink to avoid import cycles.
type noopSinkInternal struct{}

func (s *noopSinkInternal) Write(ctx context.Context, notice *Notice) error {
	return nil
}

func (s *noopSinkInternal) Flush(ctx context.Context) error {
	return nil
}

func (s *noopSinkInternal) Close() error {
	return nil
}
