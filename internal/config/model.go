package config

import (
	"fmt"
	"strings"
)

// Key identifies a single configuration value. It is composed of a namespace
// (the section) and a name (the field) and compares by exact string match.
type Key struct {
	Section string
	Field   string
}

// ParseKey parses the canonical "section.field" form of a key.
func ParseKey(s string) (Key, error) {
	section, field, ok := strings.Cut(s, ".")
	if !ok || section == "" || field == "" {
		return Key{}, fmt.Errorf("invalid configuration key %q: expected \"section.field\"", s)
	}
	return Key{Section: section, Field: field}, nil
}

// String returns the canonical "section.field" form of the key.
func (k Key) String() string {
	return k.Section + "." + k.Field
}

// Less orders keys by section, then by field. It defines the canonical key
// order used for deterministic snapshot rendering and cache keying.
func (k Key) Less(other Key) bool {
	if k.Section != other.Section {
		return k.Section < other.Section
	}
	return k.Field < other.Field
}

// Layer identifies one precedence tier of configuration.
type Layer int

const (
	// LayerGlobal holds workspace-wide defaults shared by every cell.
	LayerGlobal Layer = iota
	// LayerCell holds overrides scoped to a single cell.
	LayerCell
	// LayerLocal holds local-only overrides scoped to a single cell. They
	// are never checked in and take precedence over everything else.
	LayerLocal
)

// String returns the human-readable name of the layer.
func (l Layer) String() string {
	switch l {
	case LayerGlobal:
		return "global"
	case LayerCell:
		return "cell"
	case LayerLocal:
		return "local"
	default:
		return fmt.Sprintf("layer(%d)", int(l))
	}
}

// Provenance records which layer produced a resolved value.
type Provenance int

const (
	// GlobalDefault marks a value inherited from the global defaults layer.
	GlobalDefault Provenance = iota
	// CellOverride marks a value set in the owning cell's layer.
	CellOverride
	// LocalOverride marks a value set in the owning cell's local layer.
	LocalOverride
)

// String returns the stable diagnostic name of the provenance tag.
func (p Provenance) String() string {
	switch p {
	case GlobalDefault:
		return "GLOBAL_DEFAULT"
	case CellOverride:
		return "CELL_OVERRIDE"
	case LocalOverride:
		return "LOCAL_OVERRIDE"
	default:
		return fmt.Sprintf("provenance(%d)", int(p))
	}
}

// OverrideEntry is one raw key/value record produced by a Loader. Entries
// carry no precedence information of their own; the builder partitions them
// into layers and the engine decides precedence.
type OverrideEntry struct {
	Key   Key
	Value string

	// Suppress marks an "ignore default" entry: the key carries no value
	// here, but fallback into less specific layers must stop. Distinct from
	// simply not mentioning the key, which permits fallback.
	Suppress bool

	Layer Layer
	// Cell is the owning cell identifier for cell and local layer entries.
	// It is empty for global entries.
	Cell string

	// File and Line locate the entry in its source for diagnostics.
	File string
	Line int
}

// Entry is the in-layer state of a single key after last-wins collapsing.
// A key with no Entry in a layer is unset there; an Entry is either a value
// or an explicit suppression marker, never both.
type Entry struct {
	Value      string
	Suppressed bool
	File       string
	Line       int
}

// SourceLocation is a physical configuration source handed to a Loader,
// tagged with the layer its entries belong to and, for cell and local
// layers, the owning cell.
type SourceLocation struct {
	Path  string
	Layer Layer
	Cell  string
}

// Cell is a named project root within a workspace. Cell identifiers are
// unique within one invocation; exactly one cell is the root.
type Cell struct {
	Identifier string
	Path       string
	IsRoot     bool
}

// Workspace is the declared cell topology of a build workspace: every cell,
// which one is root, and the directory the declaration was loaded from.
type Workspace struct {
	Cells []*Cell
	// Root is the identifier of the root cell.
	Root string
	// Dir is the directory containing the workspace manifest. Cell paths
	// are resolved relative to it.
	Dir string
}
