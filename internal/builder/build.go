package builder

import (
	"context"
	"fmt"

	"github.com/vk/cellconf/internal/config"
	"github.com/vk/cellconf/internal/ctxlog"
	"github.com/vk/cellconf/internal/registry"
)

// Build constructs a complete, validated override graph from a flat entry
// stream. Entries must be supplied in load order: the last entry for a key
// within one layer wins.
func Build(ctx context.Context, entries []config.OverrideEntry, reg *registry.Registry) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting override graph construction.", "entries", len(entries))

	// First pass: validate cell references against the registry.
	known := reg.Identifiers()
	for _, entry := range entries {
		if entry.Layer == config.LayerGlobal {
			continue
		}
		if !known.Contains(entry.Cell) {
			return nil, &OrphanCellError{Cell: entry.Cell, Key: entry.Key}
		}
	}
	logger.Debug("Build: Cell reference validation complete.")

	// Second pass: fold entries into per-layer maps, last wins.
	graph := &Graph{
		global: make(layerMap),
		cells:  make(map[string]*cellLayers),
	}
	for _, entry := range entries {
		target, err := graph.layerFor(entry)
		if err != nil {
			return nil, err
		}
		target[entry.Key] = config.Entry{
			Value:      entry.Value,
			Suppressed: entry.Suppress,
			File:       entry.File,
			Line:       entry.Line,
		}
	}
	logger.Debug("Build: Entry partitioning complete.",
		"global_keys", len(graph.global), "cells", len(graph.cells))

	logger.Info("Build: Override graph construction successful.")
	return graph, nil
}

// layerFor returns the layer map an entry folds into, creating the owning
// cell's layer pair on first use.
func (g *Graph) layerFor(entry config.OverrideEntry) (layerMap, error) {
	if entry.Layer == config.LayerGlobal {
		return g.global, nil
	}

	layers, ok := g.cells[entry.Cell]
	if !ok {
		layers = &cellLayers{cell: make(layerMap), local: make(layerMap)}
		g.cells[entry.Cell] = layers
	}
	switch entry.Layer {
	case config.LayerCell:
		return layers.cell, nil
	case config.LayerLocal:
		return layers.local, nil
	default:
		return nil, fmt.Errorf("entry for key %q has unknown layer %d", entry.Key, int(entry.Layer))
	}
}
