package engine

import (
	"fmt"
	"strings"

	"github.com/vk/cellconf/internal/config"
)

// Value is one resolved configuration value: the opaque string payload plus
// the provenance tag recording which layer produced it.
type Value struct {
	Raw        string
	Provenance config.Provenance
}

// Snapshot is the immutable result of one resolution request. Every key it
// contains has exactly one winning value and one provenance tag. Snapshots
// are safe to share read-only across any number of consumers.
type Snapshot struct {
	cell   string
	keys   []config.Key // canonical order, resolved keys only
	values map[config.Key]Value
}

// Cell returns the identifier of the cell this snapshot was resolved for.
func (s *Snapshot) Cell() string {
	return s.cell
}

// Get returns the resolved value for a key. The boolean is false when the
// key did not resolve; callers must treat that as "no configured value",
// not as a fault.
func (s *Snapshot) Get(key config.Key) (Value, bool) {
	value, ok := s.values[key]
	return value, ok
}

// Keys returns the resolved keys in canonical order. The returned slice is
// a copy.
func (s *Snapshot) Keys() []config.Key {
	return append([]config.Key(nil), s.keys...)
}

// Len returns the number of resolved keys.
func (s *Snapshot) Len() int {
	return len(s.keys)
}

// Render writes the snapshot in its canonical diagnostic form, one
// "key = value  (PROVENANCE)" line per resolved key in canonical key order.
// Identical inputs always render byte-identically.
func (s *Snapshot) Render() string {
	var b strings.Builder
	for _, key := range s.keys {
		value := s.values[key]
		fmt.Fprintf(&b, "%s = %s  (%s)\n", key, value.Raw, value.Provenance)
	}
	return b.String()
}
