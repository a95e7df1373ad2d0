// value.go defines the tagged value union the truncator operates on.

package faultline

import (
	"encoding/json"
	"fmt"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Value is a node in a report payload tree.
//
// The concrete shapes are Scalar (string, number, bool, nil), *Map (ordered
// key-value pairs), *Seq (ordered list), *Set (unique elements, iterated in
// insertion order), and Opaque (anything else). Containers are pointers so
// the truncator can track identity for cycle detection.
type Value interface {
	isValue()
}

// Scalar holds a string, number, bool, or nil.
type Scalar struct {
	Val any
}

func (Scalar) isValue() {}

// MarshalJSON encodes the underlying scalar.
func (s Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Val)
}

// Map is an insertion-ordered key-value container.
type Map struct {
	entries *orderedmap.OrderedMap[string, Value]
}

func (*Map) isValue() {}

// NewMap creates an empty ordered map value.
func NewMap() *Map {
	return &Map{entries: orderedmap.New[string, Value]()}
}

// Set stores a key-value pair, preserving insertion order for new keys.
// Returns the map for chaining.
func (m *Map) Set(key string, v Value) *Map {
	m.entries.Set(key, v)
	return m
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Value, bool) {
	return m.entries.Get(key)
}

// Delete removes key from the map.
func (m *Map) Delete(key string) {
	m.entries.Delete(key)
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return m.entries.Len()
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	keys := make([]string, 0, m.entries.Len())
	for pair := m.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// MarshalJSON encodes the map as a JSON object, preserving entry order.
func (m *Map) MarshalJSON() ([]byte, error) {
	return m.entries.MarshalJSON()
}

// Seq is an ordered list of values.
type Seq struct {
	Items []Value
}

func (*Seq) isValue() {}

// NewSeq creates a sequence value from items.
func NewSeq(items ...Value) *Seq {
	return &Seq{Items: items}
}

// MarshalJSON encodes the sequence as a JSON array.
func (s *Seq) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Items)
}

// Set is a collection of unique elements.
//
// Uniqueness is the caller's concern; the truncator only relies on the
// iteration order being the insertion order, which defines which elements
// survive truncation ("first N by iteration order").
type Set struct {
	Items []Value
}

func (*Set) isValue() {}

// NewSet creates a set value from items.
func NewSet(items ...Value) *Set {
	return &Set{Items: items}
}

// MarshalJSON encodes the set as a JSON array.
func (s *Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Items)
}

// Opaque wraps a value that is none of the supported shapes.
// The truncator renders it to bounded text instead of carrying it through.
type Opaque struct {
	Val any
}

func (Opaque) isValue() {}

// MarshalJSON encodes the wrapped value, falling back to its fmt rendering.
func (o Opaque) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(o.Val)
	if err != nil {
		return json.Marshal(fmt.Sprintf("%v", o.Val))
	}
	return b, nil
}

// Wrap converts a native Go value into a Value tree.
//
// Maps are converted with their keys sorted so the resulting tree is
// deterministic regardless of Go map iteration order. Values that already
// implement Value are passed through unchanged.
func Wrap(v any) Value {
	switch x := v.(type) {
	case nil:
		return Scalar{Val: nil}
	case Value:
		return x
	case string:
		return Scalar{Val: x}
	case bool:
		return Scalar{Val: x}
	case int:
		return Scalar{Val: x}
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Scalar{Val: x}
	case float32, float64:
		return Scalar{Val: x}
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMap()
		for _, k := range keys {
			m.Set(k, Wrap(x[k]))
		}
		return m
	case []any:
		items := make([]Value, len(x))
		for i, item := range x {
			items[i] = Wrap(item)
		}
		return NewSeq(items...)
	default:
		return Opaque{Val: x}
	}
}
