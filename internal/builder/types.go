package builder

import (
	"sort"

	"github.com/vk/cellconf/internal/config"
)

// layerMap holds the collapsed, last-wins state of one layer: at most one
// Entry per key.
type layerMap map[config.Key]config.Entry

// cellLayers groups the two cell-scoped layers of a single cell.
type cellLayers struct {
	cell  layerMap
	local layerMap
}

// Graph is the primary artifact of the builder: every loaded entry,
// partitioned into a shared global layer plus per-cell layer pairs. It is
// immutable after Build returns and safe for concurrent readers.
type Graph struct {
	global layerMap
	cells  map[string]*cellLayers
}

// Lookup returns the collapsed entry for a key within one layer of one
// cell. For the global layer the cell identifier is ignored. The second
// return value is false when the key is unset in that layer.
func (g *Graph) Lookup(layer config.Layer, cellID string, key config.Key) (config.Entry, bool) {
	switch layer {
	case config.LayerGlobal:
		entry, ok := g.global[key]
		return entry, ok
	case config.LayerCell:
		if layers, ok := g.cells[cellID]; ok {
			entry, ok := layers.cell[key]
			return entry, ok
		}
	case config.LayerLocal:
		if layers, ok := g.cells[cellID]; ok {
			entry, ok := layers.local[key]
			return entry, ok
		}
	}
	return config.Entry{}, false
}

// KeysFor returns the sorted union of every key visible to the given cell:
// the global layer plus the cell's own two layers. Sibling cells' layers
// never contribute.
func (g *Graph) KeysFor(cellID string) []config.Key {
	seen := make(map[config.Key]struct{}, len(g.global))
	for key := range g.global {
		seen[key] = struct{}{}
	}
	if layers, ok := g.cells[cellID]; ok {
		for key := range layers.cell {
			seen[key] = struct{}{}
		}
		for key := range layers.local {
			seen[key] = struct{}{}
		}
	}

	keys := make([]config.Key, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}
