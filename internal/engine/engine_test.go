package engine

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/vk/cellconf/internal/builder"
	"github.com/vk/cellconf/internal/config"
	"github.com/vk/cellconf/internal/registry"
)

func key(s string) config.Key {
	k, err := config.ParseKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

// newEngine builds an engine over the given entries and cell identifiers,
// with the first identifier acting as root.
func newEngine(t *testing.T, entries []config.OverrideEntry, cells ...string) *Engine {
	t.Helper()

	reg := registry.New()
	for i, id := range cells {
		require.NoError(t, reg.Register(&config.Cell{Identifier: id, IsRoot: i == 0}))
	}
	graph, err := builder.Build(context.Background(), entries, reg)
	require.NoError(t, err)
	return New(graph, reg)
}

func TestResolve_MissingKeyIsAbsentNotError(t *testing.T) {
	t.Parallel()

	e := newEngine(t, nil, "root")

	snapshot, err := e.Resolve(context.Background(), "root", []config.Key{key("project.ghost")})

	require.NoError(t, err, "a key unset in every layer is not a fault")
	_, ok := snapshot.Get(key("project.ghost"))
	require.False(t, ok)
	require.Zero(t, snapshot.Len())
}

func TestResolve_LocalAlwaysWins(t *testing.T) {
	t.Parallel()

	entries := []config.OverrideEntry{
		{Key: key("project.mode"), Value: "global", Layer: config.LayerGlobal},
		{Key: key("project.mode"), Value: "cell", Layer: config.LayerCell, Cell: "root"},
		{Key: key("project.mode"), Value: "local", Layer: config.LayerLocal, Cell: "root"},
	}
	e := newEngine(t, entries, "root")

	snapshot, err := e.Resolve(context.Background(), "root", []config.Key{key("project.mode")})
	require.NoError(t, err)

	value, ok := snapshot.Get(key("project.mode"))
	require.True(t, ok)
	require.Equal(t, "local", value.Raw)
	require.Equal(t, config.LocalOverride, value.Provenance)
}

func TestResolve_CellOverrideShadowsGlobal(t *testing.T) {
	t.Parallel()

	entries := []config.OverrideEntry{
		{Key: key("project.mode"), Value: "global", Layer: config.LayerGlobal},
		{Key: key("project.mode"), Value: "cell", Layer: config.LayerCell, Cell: "root"},
	}
	e := newEngine(t, entries, "root")

	snapshot, err := e.Resolve(context.Background(), "root", []config.Key{key("project.mode")})
	require.NoError(t, err)

	value, _ := snapshot.Get(key("project.mode"))
	require.Equal(t, "cell", value.Raw)
	require.Equal(t, config.CellOverride, value.Provenance)
}

func TestResolve_SuppressionBlocksGlobalDefault(t *testing.T) {
	t.Parallel()

	entries := []config.OverrideEntry{
		{Key: key("project.mode"), Value: "global", Layer: config.LayerGlobal},
		{Key: key("project.mode"), Suppress: true, Layer: config.LayerCell, Cell: "root"},
	}
	e := newEngine(t, entries, "root")

	snapshot, err := e.Resolve(context.Background(), "root", []config.Key{key("project.mode")})
	require.NoError(t, err)

	// The cell declared "do not inherit the default" without a replacement:
	// the key must be unset, never GLOBAL_DEFAULT.
	_, ok := snapshot.Get(key("project.mode"))
	require.False(t, ok)
}

func TestResolve_LocalWinsDespiteCellSuppression(t *testing.T) {
	t.Parallel()

	entries := []config.OverrideEntry{
		{Key: key("project.mode"), Value: "global", Layer: config.LayerGlobal},
		{Key: key("project.mode"), Suppress: true, Layer: config.LayerCell, Cell: "root"},
		{Key: key("project.mode"), Value: "local", Layer: config.LayerLocal, Cell: "root"},
	}
	e := newEngine(t, entries, "root")

	snapshot, err := e.Resolve(context.Background(), "root", []config.Key{key("project.mode")})
	require.NoError(t, err)

	value, ok := snapshot.Get(key("project.mode"))
	require.True(t, ok, "a local override outranks cell-layer suppression")
	require.Equal(t, "local", value.Raw)
	require.Equal(t, config.LocalOverride, value.Provenance)
}

func TestResolve_CrossCellIsolation(t *testing.T) {
	t.Parallel()

	entries := []config.OverrideEntry{
		{Key: key("project.mode"), Value: "one", Layer: config.LayerCell, Cell: "c1"},
	}
	e := newEngine(t, entries, "root", "c1", "c2")

	snapshot, err := e.Resolve(context.Background(), "c2", []config.Key{key("project.mode")})
	require.NoError(t, err)

	_, ok := snapshot.Get(key("project.mode"))
	require.False(t, ok, "an override registered under c1 must never leak into c2")
}

func TestResolve_UnknownCell(t *testing.T) {
	t.Parallel()

	e := newEngine(t, nil, "root")

	_, err := e.Resolve(context.Background(), "ghost", nil)

	var unknownErr *registry.UnknownCellError
	require.ErrorAs(t, err, &unknownErr)
}

func TestResolve_Deterministic(t *testing.T) {
	t.Parallel()

	entries := []config.OverrideEntry{
		{Key: key("project.b"), Value: "2", Layer: config.LayerGlobal},
		{Key: key("project.a"), Value: "1", Layer: config.LayerCell, Cell: "root"},
		{Key: key("project.c"), Value: "3", Layer: config.LayerLocal, Cell: "root"},
	}
	e := newEngine(t, entries, "root")

	// Same request, permuted and duplicated key order.
	first, err := e.Resolve(context.Background(), "root", []config.Key{
		key("project.c"), key("project.a"), key("project.b"),
	})
	require.NoError(t, err)
	second, err := e.Resolve(context.Background(), "root", []config.Key{
		key("project.a"), key("project.b"), key("project.c"), key("project.a"),
	})
	require.NoError(t, err)

	require.Empty(t, cmp.Diff(first.Keys(), second.Keys()))
	require.Equal(t, first.Render(), second.Render(), "identical inputs must render byte-identically")
}

// TestResolve_TwoCellWorkspace exercises the full two-cell scenario: a root
// cell that overrides one key, suppresses another, and inherits a third,
// next to a secondary cell that overrides everything itself.
func TestResolve_TwoCellWorkspace(t *testing.T) {
	t.Parallel()

	entries := []config.OverrideEntry{
		// Global defaults.
		{Key: key("project.root_use_default"), Value: "predict", Layer: config.LayerGlobal},
		// Root cell: one override, one suppression without replacement.
		{Key: key("project.root"), Value: "regular", Layer: config.LayerCell, Cell: "root"},
		{Key: key("project.root_ignore_default"), Suppress: true, Layer: config.LayerCell, Cell: "root"},
		{Key: key("project.local"), Value: "regular", Layer: config.LayerLocal, Cell: "root"},
		// Secondary cell: its own values for every key.
		{Key: key("project.root"), Value: "regular", Layer: config.LayerCell, Cell: "other"},
		{Key: key("project.root_ignore_default"), Value: "regular", Layer: config.LayerCell, Cell: "other"},
		{Key: key("project.root_use_default"), Value: "quantity", Layer: config.LayerCell, Cell: "other"},
		{Key: key("project.local"), Value: "guerrilla", Layer: config.LayerLocal, Cell: "other"},
	}
	e := newEngine(t, entries, "root", "other")

	requested := []config.Key{
		key("project.root"),
		key("project.root_ignore_default"),
		key("project.root_use_default"),
		key("project.local"),
	}

	// Root cell.
	snapshot, err := e.Resolve(context.Background(), "root", requested)
	require.NoError(t, err)
	require.Equal(t, 3, snapshot.Len())

	value, ok := snapshot.Get(key("project.root"))
	require.True(t, ok)
	require.Equal(t, "regular", value.Raw)
	require.Equal(t, config.CellOverride, value.Provenance)

	value, ok = snapshot.Get(key("project.root_use_default"))
	require.True(t, ok)
	require.Equal(t, "predict", value.Raw)
	require.Equal(t, config.GlobalDefault, value.Provenance)

	value, ok = snapshot.Get(key("project.local"))
	require.True(t, ok)
	require.Equal(t, "regular", value.Raw)
	require.Equal(t, config.LocalOverride, value.Provenance)

	_, ok = snapshot.Get(key("project.root_ignore_default"))
	require.False(t, ok, "suppressed key must be omitted entirely")

	// Secondary cell: every key resolves from its own layers.
	snapshot, err = e.Resolve(context.Background(), "other", requested)
	require.NoError(t, err)
	require.Equal(t, 4, snapshot.Len())

	for name, want := range map[string]struct {
		raw        string
		provenance config.Provenance
	}{
		"project.root":                {"regular", config.CellOverride},
		"project.root_ignore_default": {"regular", config.CellOverride},
		"project.root_use_default":    {"quantity", config.CellOverride},
		"project.local":               {"guerrilla", config.LocalOverride},
	} {
		value, ok := snapshot.Get(key(name))
		require.True(t, ok, name)
		require.Equal(t, want.raw, value.Raw, name)
		require.Equal(t, want.provenance, value.Provenance, name)
	}
}

func TestKeysFor_UnknownCell(t *testing.T) {
	t.Parallel()

	e := newEngine(t, nil, "root")

	_, err := e.KeysFor("ghost")

	var unknownErr *registry.UnknownCellError
	require.ErrorAs(t, err, &unknownErr)
}

func TestAmbiguousKeyError_Message(t *testing.T) {
	t.Parallel()

	err := error(&AmbiguousKeyError{Cell: "root", Key: key("project.mode")})

	var ambErr *AmbiguousKeyError
	require.ErrorAs(t, err, &ambErr)
	require.Contains(t, err.Error(), "internal:")
	require.Contains(t, err.Error(), "project.mode")
}
