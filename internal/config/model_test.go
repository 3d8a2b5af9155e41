package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	t.Parallel()

	key, err := ParseKey("project.root")
	require.NoError(t, err)
	require.Equal(t, Key{Section: "project", Field: "root"}, key)
	require.Equal(t, "project.root", key.String())
}

func TestParseKey_NestedFieldKeepsRemainder(t *testing.T) {
	t.Parallel()

	// Only the first dot separates section from field; the field itself may
	// contain dots.
	key, err := ParseKey("build.cache.mode")
	require.NoError(t, err)
	require.Equal(t, Key{Section: "build", Field: "cache.mode"}, key)
}

func TestParseKey_Invalid(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "nodot", ".field", "section.", "."} {
		_, err := ParseKey(raw)
		require.Error(t, err, "expected %q to be rejected", raw)
	}
}

func TestKeyLess(t *testing.T) {
	t.Parallel()

	a := Key{Section: "alpha", Field: "z"}
	b := Key{Section: "beta", Field: "a"}
	c := Key{Section: "beta", Field: "b"}

	require.True(t, a.Less(b), "section ordering dominates")
	require.True(t, b.Less(c), "field ordering breaks section ties")
	require.False(t, c.Less(b))
	require.False(t, a.Less(a))
}

func TestProvenanceString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "GLOBAL_DEFAULT", GlobalDefault.String())
	require.Equal(t, "CELL_OVERRIDE", CellOverride.String())
	require.Equal(t, "LOCAL_OVERRIDE", LocalOverride.String())
}

func TestLayerString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "global", LayerGlobal.String())
	require.Equal(t, "cell", LayerCell.String())
	require.Equal(t, "local", LayerLocal.String())
}

func TestNormalizeKeys(t *testing.T) {
	t.Parallel()

	keys := []Key{
		{Section: "b", Field: "y"},
		{Section: "a", Field: "x"},
		{Section: "b", Field: "y"}, // duplicate
		{Section: "a", Field: "w"},
	}

	normalized := NormalizeKeys(keys)

	require.Equal(t, []Key{
		{Section: "a", Field: "w"},
		{Section: "a", Field: "x"},
		{Section: "b", Field: "y"},
	}, normalized)
}
