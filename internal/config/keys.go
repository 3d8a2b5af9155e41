package config

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// NormalizeKeys deduplicates and sorts a requested key set into canonical
// order. The engine and the snapshot cache must agree on this normalization
// so that equivalent requests hash to the same cache entry.
func NormalizeKeys(keys []Key) []Key {
	seen := mapset.NewThreadUnsafeSet[Key]()
	out := make([]Key, 0, len(keys))
	for _, key := range keys {
		if seen.Add(key) {
			out = append(out, key)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
