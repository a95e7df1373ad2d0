// truncator.go bounds the size of notices and payload trees so serialized
// reports fit a collector's hard limits.

package faultline

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// circularMarker replaces a container re-encountered while its own
	// truncation is still in progress.
	circularMarker = "[Circular]"

	// truncatedMarker is appended to clipped strings. It is always appended
	// whole, even when that pushes the result past the budget.
	truncatedMarker = "[Truncated]"

	// maxDepth caps recursion on deeply nested acyclic input. Containers
	// past the cap collapse to the truncation marker.
	maxDepth = 1000
)

// UnsupportedShapeError reports a TruncateObject call on a non-container
// value. It signals a programming error by the caller, not a data problem.
type UnsupportedShapeError struct {
	Value Value
}

func (e *UnsupportedShapeError) Error() string {
	return fmt.Sprintf("cannot truncate object of shape %T", e.Value)
}

// Truncator bounds string lengths, container element counts, and backtrace
// frame counts to a single shared budget.
//
// A Truncator is not safe for concurrent use: the budget is mutable via
// ReduceMaxSize and TruncateError mutates the caller's record in place.
type Truncator struct {
	maxSize int
	log     Logger
}

// NewTruncator creates a truncator with the given budget.
// A nil logger discards diagnostics. maxSize must be positive.
func NewTruncator(maxSize int, logger Logger) *Truncator {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Truncator{maxSize: maxSize, log: logger}
}

// MaxSize returns the current budget.
func (t *Truncator) MaxSize() int {
	return t.maxSize
}

// ReduceMaxSize halves the budget. Intended for a caller-driven retry loop:
// truncate, serialize, measure; if the payload is still over the transport
// limit, halve and truncate again from the original payload. No floor is
// enforced; callers must not drive the budget to zero.
func (t *Truncator) ReduceMaxSize() {
	t.maxSize /= 2
}

// TruncateError clips the record's message and backtrace in place.
// Each clip emits one informational log entry naming the error kind.
func (t *Truncator) TruncateError(rec *ErrorRecord) {
	if utf8.RuneCountInString(rec.Message) > t.maxSize {
		rec.Message = t.truncateString(rec.Message)
		t.log.Info(fmt.Sprintf("truncated the message of %s", rec.Kind))
	}

	dropped := len(rec.Backtrace) - t.maxSize
	if dropped < 0 {
		return
	}

	rec.Backtrace = rec.Backtrace[:t.maxSize]
	t.log.Info(fmt.Sprintf("dropped %d frame(s) from the backtrace of %s", dropped, rec.Kind))
}

// TruncateObject recursively truncates a container value, returning a new
// tree. Only *Map, *Seq, and *Set are valid roots; scalars belong to the
// element-level dispatch and are rejected with *UnsupportedShapeError.
//
// Containers are tracked by identity for the duration of the call: a
// container re-encountered through a cycle resolves to the "[Circular]"
// placeholder, while a container merely referenced from two acyclic paths
// resolves to the same truncated replacement on both occurrences.
func (t *Truncator) TruncateObject(v Value) (Value, error) {
	return t.truncateObject(v, make(map[Value]Value), 0)
}

func (t *Truncator) truncateObject(v Value, seen map[Value]Value, depth int) (Value, error) {
	switch v.(type) {
	case *Map, *Seq, *Set:
	default:
		return nil, &UnsupportedShapeError{Value: v}
	}

	if replacement, ok := seen[v]; ok {
		return replacement, nil
	}
	if depth >= maxDepth {
		return Scalar{Val: truncatedMarker}, nil
	}

	// Record the placeholder before descending, overwrite with the real
	// result once the subtree resolves. Re-entrant visits (true cycles) see
	// the placeholder; later visits see the truncated value.
	seen[v] = Scalar{Val: circularMarker}

	var out Value
	var err error
	switch c := v.(type) {
	case *Map:
		out, err = t.truncateMap(c, seen, depth)
	case *Seq:
		items, itemsErr := t.truncateItems(c.Items, seen, depth)
		out, err = NewSeq(items...), itemsErr
	case *Set:
		items, itemsErr := t.truncateItems(c.Items, seen, depth)
		out, err = NewSet(items...), itemsErr
	}
	if err != nil {
		return nil, err
	}

	seen[v] = out
	return out, nil
}

// truncateMap keeps the first maxSize entries in insertion order, truncating
// each kept value. Keys are never truncated or altered.
func (t *Truncator) truncateMap(m *Map, seen map[Value]Value, depth int) (Value, error) {
	out := NewMap()
	for i, key := range m.Keys() {
		if i >= t.maxSize {
			break
		}
		val, _ := m.Get(key)
		truncated, err := t.truncate(val, seen, depth+1)
		if err != nil {
			return nil, err
		}
		out.Set(key, truncated)
	}
	return out, nil
}

// truncateItems keeps the first maxSize elements, truncating each.
func (t *Truncator) truncateItems(items []Value, seen map[Value]Value, depth int) ([]Value, error) {
	n := len(items)
	if n > t.maxSize {
		n = t.maxSize
	}
	out := make([]Value, n)
	for i := 0; i < n; i++ {
		truncated, err := t.truncate(items[i], seen, depth+1)
		if err != nil {
			return nil, err
		}
		out[i] = truncated
	}
	return out, nil
}

// truncate is the element-level dispatch used inside container recursion.
// Strings are clipped, containers recurse, other scalars pass through, and
// opaque values are rendered to bounded text.
func (t *Truncator) truncate(v Value, seen map[Value]Value, depth int) (Value, error) {
	switch x := v.(type) {
	case Scalar:
		if s, ok := x.Val.(string); ok {
			return Scalar{Val: t.truncateString(s)}, nil
		}
		return x, nil
	case *Map, *Seq, *Set:
		return t.truncateObject(v, seen, depth)
	case Opaque:
		return Scalar{Val: t.truncateString(stringifyOpaque(x.Val))}, nil
	case nil:
		return Scalar{Val: nil}, nil
	default:
		return Scalar{Val: t.truncateString(fmt.Sprintf("%v", v))}, nil
	}
}

// truncateString repairs the string to valid UTF-8, then clips it to the
// budget in runes. The truncation marker is appended whole and the result is
// never re-truncated.
func (t *Truncator) truncateString(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, string(utf8.RuneError))
	}
	if utf8.RuneCountInString(s) <= t.maxSize {
		return s
	}
	return string([]rune(s)[:t.maxSize]) + truncatedMarker
}

// stringifyOpaque renders an arbitrary value to structured text, falling
// back to its fmt rendering when it cannot be marshaled.
func stringifyOpaque(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
