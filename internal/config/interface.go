package config

import "context"

// Options controls loader behavior.
type Options struct {
	// Strict aborts the whole load on the first ParseError. When false, a
	// malformed file is skipped, its ParseError is collected, and loading
	// continues with the remaining locations.
	Strict bool
}

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// LoadWorkspace reads the cell-mapping declaration at the given path
	// and returns the declared workspace topology.
	LoadWorkspace(ctx context.Context, path string) (*Workspace, error)

	// Load reads raw override entries from the given locations, in order.
	// Entry order within the result follows location order, then source
	// order within each file, so that later files override earlier ones
	// under the builder's last-wins rule. In non-strict mode the returned
	// entries may be accompanied by an aggregate of per-file ParseErrors.
	Load(ctx context.Context, locations []SourceLocation, opts Options) ([]OverrideEntry, error)
}
