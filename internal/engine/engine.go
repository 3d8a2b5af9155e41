package engine

import (
	"context"

	"github.com/vk/cellconf/internal/builder"
	"github.com/vk/cellconf/internal/config"
	"github.com/vk/cellconf/internal/ctxlog"
	"github.com/vk/cellconf/internal/registry"
)

// layerRule binds one precedence tier to the provenance tag its values carry.
type layerRule struct {
	layer      config.Layer
	provenance config.Provenance
}

// layerOrder is the precedence walk, most specific first. Evaluated
// independently per key.
var layerOrder = []layerRule{
	{config.LayerLocal, config.LocalOverride},
	{config.LayerCell, config.CellOverride},
	{config.LayerGlobal, config.GlobalDefault},
}

// Engine resolves configuration keys against an immutable override graph.
type Engine struct {
	graph    *builder.Graph
	registry *registry.Registry
}

// New creates a resolution engine over the given graph and cell registry.
func New(graph *builder.Graph, reg *registry.Registry) *Engine {
	return &Engine{graph: graph, registry: reg}
}

// Resolve computes the final value of every requested key for the given
// cell. Keys unset in every reachable layer, and keys whose fallback was
// suppressed without a replacement value, are omitted from the snapshot.
// The only resolution-time failure is an unknown cell identifier.
func (e *Engine) Resolve(ctx context.Context, cellID string, keys []config.Key) (*Snapshot, error) {
	logger := ctxlog.FromContext(ctx)

	if _, err := e.registry.Resolve(cellID); err != nil {
		return nil, err
	}

	keys = config.NormalizeKeys(keys)
	logger.Debug("Resolving configuration keys.", "cell", cellID, "keys", len(keys))

	snapshot := &Snapshot{
		cell:   cellID,
		values: make(map[config.Key]Value, len(keys)),
	}
	for _, key := range keys {
		value, ok := e.resolveKey(cellID, key)
		if !ok {
			continue
		}
		snapshot.values[key] = value
		snapshot.keys = append(snapshot.keys, key)
	}

	logger.Debug("Resolution complete.", "cell", cellID, "resolved", len(snapshot.keys))
	return snapshot, nil
}

// resolveKey walks the layer order for one key. The boolean is false when
// the key is unset: either no layer holds a value, or a suppression marker
// stopped the walk first.
func (e *Engine) resolveKey(cellID string, key config.Key) (Value, bool) {
	for _, rule := range layerOrder {
		entry, ok := e.graph.Lookup(rule.layer, cellID, key)
		if !ok {
			continue
		}
		if entry.Suppressed {
			return Value{}, false
		}
		return Value{Raw: entry.Value, Provenance: rule.provenance}, true
	}
	return Value{}, false
}

// KeysFor returns the sorted set of every key visible to the given cell
// across all of its reachable layers.
func (e *Engine) KeysFor(cellID string) ([]config.Key, error) {
	if _, err := e.registry.Resolve(cellID); err != nil {
		return nil, err
	}
	return e.graph.KeysFor(cellID), nil
}
