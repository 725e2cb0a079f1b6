package codec

import (
	"fmt"
	"sort"
	"strings"
)

// Enum is a bidirectional lookup table between the values of an enumerated
// type and their wire strings.
//
// Enumerated types keep a package-level table and delegate their text
// methods to it:
//
//	var directions = codec.NewEnum("SortDirection", map[SortDirection]string{
//	    Ascending:  "asc",
//	    Descending: "desc",
//	})
//
//	func (d SortDirection) MarshalText() ([]byte, error) { return directions.MarshalText(d) }
//	func (d *SortDirection) UnmarshalText(b []byte) error { return directions.UnmarshalText(d, b) }
//
// A table is read-only after construction and safe for concurrent use.
type Enum[E comparable] struct {
	typeName string
	names    map[E]string
	values   map[string]E
}

// NewEnum builds a table from value → wire string pairs.
// It panics if two values share a wire string.
func NewEnum[E comparable](typeName string, pairs map[E]string) *Enum[E] {
	t := &Enum[E]{
		typeName: typeName,
		names:    make(map[E]string, len(pairs)),
		values:   make(map[string]E, len(pairs)),
	}
	for v, s := range pairs {
		if _, dup := t.values[s]; dup {
			panic(fmt.Sprintf("codec: duplicate %s wire string %q", typeName, s))
		}
		t.names[v] = s
		t.values[s] = v
	}
	return t
}

// String returns the wire string for v, or "" if v is not in the table.
func (t *Enum[E]) String(v E) string {
	return t.names[v]
}

// Parse returns the value whose wire string is s.
func (t *Enum[E]) Parse(s string) (E, error) {
	v, ok := t.values[s]
	if !ok {
		var zero E
		return zero, fmt.Errorf("no matching %s for %q; available values are: %s",
			t.typeName, s, strings.Join(t.Strings(), ", "))
	}
	return v, nil
}

// Strings lists the known wire strings in sorted order.
func (t *Enum[E]) Strings() []string {
	out := make([]string, 0, len(t.values))
	for s := range t.values {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// MarshalText implements the encoding.TextMarshaler contract for v.
func (t *Enum[E]) MarshalText(v E) ([]byte, error) {
	s, ok := t.names[v]
	if !ok {
		return nil, fmt.Errorf("%w: no %s wire string for %v", ErrEncode, t.typeName, v)
	}
	return []byte(s), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler contract for dst.
func (t *Enum[E]) UnmarshalText(dst *E, text []byte) error {
	v, err := t.Parse(string(text))
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
