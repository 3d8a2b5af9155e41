package registry

import (
	"log/slog"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/vk/cellconf/internal/config"
)

// Registry holds every registered cell for a single invocation. Registration
// order is irrelevant; identifiers must be unique.
type Registry struct {
	cells map[string]*config.Cell
	root  string
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{cells: make(map[string]*config.Cell)}
}

// FromWorkspace builds a Registry from a loaded workspace declaration.
func FromWorkspace(ws *config.Workspace) (*Registry, error) {
	r := New()
	for _, cell := range ws.Cells {
		if err := r.Register(cell); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a cell to the registry. Registering the same identifier
// twice fails with a DuplicateCellError.
func (r *Registry) Register(cell *config.Cell) error {
	if _, exists := r.cells[cell.Identifier]; exists {
		return &DuplicateCellError{Identifier: cell.Identifier}
	}
	slog.Debug("Registering cell.", "identifier", cell.Identifier, "path", cell.Path, "root", cell.IsRoot)
	r.cells[cell.Identifier] = cell
	if cell.IsRoot {
		r.root = cell.Identifier
	}
	return nil
}

// Resolve returns the cell registered under the given identifier, or an
// UnknownCellError if no such cell exists.
func (r *Registry) Resolve(identifier string) (*config.Cell, error) {
	cell, ok := r.cells[identifier]
	if !ok {
		return nil, &UnknownCellError{Identifier: identifier}
	}
	return cell, nil
}

// Root returns the workspace's root cell, or nil if none was registered.
func (r *Registry) Root() *config.Cell {
	if r.root == "" {
		return nil
	}
	return r.cells[r.root]
}

// List returns every registered cell, sorted by identifier.
func (r *Registry) List() []*config.Cell {
	cells := make([]*config.Cell, 0, len(r.cells))
	for _, cell := range r.cells {
		cells = append(cells, cell)
	}
	sort.Slice(cells, func(i, j int) bool {
		return cells[i].Identifier < cells[j].Identifier
	})
	return cells
}

// Identifiers returns the set of registered cell identifiers.
func (r *Registry) Identifiers() mapset.Set[string] {
	ids := mapset.NewThreadUnsafeSet[string]()
	for id := range r.cells {
		ids.Add(id)
	}
	return ids
}
