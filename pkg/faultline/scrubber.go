// scrubber.go implements key-blocklist redaction of sensitive report data.

package faultline

import "strings"

// filteredMarker replaces values stored under sensitive keys.
const filteredMarker = "[Filtered]"

// Built-in sensitive key patterns (case-insensitive substring match).
var sensitiveKeyPatterns = []string{
	"token",
	"key",
	"secret",
	"password",
	"credential",
	"auth",
	"passwd",
}

// ScrubberConfig controls scrubbing behavior.
type ScrubberConfig struct {
	// KeyBlocklist contains additional substrings that mark a key sensitive.
	KeyBlocklist []string
}

// DefaultScrubberConfig returns production-safe defaults.
func DefaultScrubberConfig() ScrubberConfig {
	return ScrubberConfig{}
}

// Scrubber redacts values stored under sensitive keys in notice params and
// context before the notice leaves the process. Scrubbing never fails: a key
// that looks sensitive is redacted, everything else passes through.
type Scrubber struct {
	patterns []string
}

// NewScrubber creates a scrubber with the given configuration.
func NewScrubber(cfg ScrubberConfig) *Scrubber {
	patterns := make([]string, 0, len(sensitiveKeyPatterns)+len(cfg.KeyBlocklist))
	patterns = append(patterns, sensitiveKeyPatterns...)
	for _, p := range cfg.KeyBlocklist {
		patterns = append(patterns, strings.ToLower(p))
	}
	return &Scrubber{patterns: patterns}
}

// ScrubParams walks a payload tree in place, replacing map values stored
// under sensitive keys with the filtered marker. Cycles are tolerated.
func (s *Scrubber) ScrubParams(v Value) {
	s.scrubValue(v, make(map[Value]bool))
}

func (s *Scrubber) scrubValue(v Value, seen map[Value]bool) {
	switch c := v.(type) {
	case *Map:
		if seen[v] {
			return
		}
		seen[v] = true
		for _, key := range c.Keys() {
			if s.isSensitiveKey(key) {
				c.Set(key, Scalar{Val: filteredMarker})
				continue
			}
			val, _ := c.Get(key)
			s.scrubValue(val, seen)
		}
	case *Seq:
		if seen[v] {
			return
		}
		seen[v] = true
		for _, item := range c.Items {
			s.scrubValue(item, seen)
		}
	case *Set:
		if seen[v] {
			return
		}
		seen[v] = true
		for _, item := range c.Items {
			s.scrubValue(item, seen)
		}
	}
}

// ScrubContext redacts sensitive keys from a notice context map in place.
func (s *Scrubber) ScrubContext(context map[string]string) {
	for key := range context {
		if s.isSensitiveKey(key) {
			context[key] = filteredMarker
		}
	}
}

// isSensitiveKey checks if a key matches any sensitive pattern.
func (s *Scrubber) isSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range s.patterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}
