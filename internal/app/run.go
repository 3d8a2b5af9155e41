package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vk/cellconf/internal/config"
	"github.com/vk/cellconf/internal/ctxlog"
)

// Run executes the requested query against the loaded workspace: a
// provenance trace, a single-cell snapshot, or a concurrent render of every
// cell.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	switch {
	case a.config.ExplainKey != "":
		return a.runExplain(ctx)
	case a.config.Cell != "":
		out, err := a.renderCell(ctx, a.config.Cell)
		if err != nil {
			return err
		}
		fmt.Fprint(a.outW, out)
	default:
		if err := a.renderAllCells(ctx); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// runExplain prints the provenance trace for one key. The trace targets the
// requested cell, defaulting to the workspace root.
func (a *App) runExplain(ctx context.Context) error {
	key, err := config.ParseKey(a.config.ExplainKey)
	if err != nil {
		return err
	}

	cellID := a.config.Cell
	if cellID == "" {
		cellID = a.registry.Root().Identifier
	}

	trace, err := a.engine.Explain(ctx, cellID, key)
	if err != nil {
		return fmt.Errorf("failed to explain %q: %w", key, err)
	}
	fmt.Fprint(a.outW, trace.Render())
	return nil
}

// renderCell resolves and renders one cell's snapshot. With no explicit key
// set configured, every key visible to the cell is resolved.
func (a *App) renderCell(ctx context.Context, cellID string) (string, error) {
	keys, err := a.requestedKeys(cellID)
	if err != nil {
		return "", err
	}

	snapshot, err := a.cache.GetOrResolve(ctx, cellID, keys)
	if err != nil {
		return "", fmt.Errorf("failed to resolve cell %q: %w", cellID, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s]\n", cellID)
	b.WriteString(snapshot.Render())
	return b.String(), nil
}

// renderAllCells resolves every registered cell with bounded concurrency
// and prints the results in cell identifier order regardless of completion
// order.
func (a *App) renderAllCells(ctx context.Context) error {
	cells := a.registry.List()
	outputs := make(map[string]string, len(cells))
	var mu sync.Mutex

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(a.config.WorkerCount)
	for _, cell := range cells {
		cell := cell
		group.Go(func() error {
			out, err := a.renderCell(ctx, cell.Identifier)
			if err != nil {
				return err
			}
			mu.Lock()
			outputs[cell.Identifier] = out
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	ids := make([]string, 0, len(outputs))
	for id := range outputs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for i, id := range ids {
		if i > 0 {
			fmt.Fprintln(a.outW)
		}
		fmt.Fprint(a.outW, outputs[id])
	}
	return nil
}

// requestedKeys parses the configured key list, falling back to every key
// visible to the cell when none was given.
func (a *App) requestedKeys(cellID string) ([]config.Key, error) {
	if len(a.config.Keys) == 0 {
		return a.engine.KeysFor(cellID)
	}
	keys := make([]config.Key, 0, len(a.config.Keys))
	for _, raw := range a.config.Keys {
		key, err := config.ParseKey(raw)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}
