// Package snapcache memoizes resolved snapshots per (cell, key set) so that
// repeated queries within one invocation never redo resolution work.
//
// After the load phase the cache is the only shared mutable structure in
// the system. Concurrent first queries for the same pair are coalesced
// through singleflight so resolution runs at most once per distinct
// request; a lost race would only waste work, never corrupt state, since
// resolution is deterministic and idempotent. Entries are immutable once
// stored and live for the remainder of the invocation.
package snapcache

import (
	"context"
	"encoding/binary"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"

	"github.com/vk/cellconf/internal/config"
	"github.com/vk/cellconf/internal/ctxlog"
	"github.com/vk/cellconf/internal/engine"
)

// Resolver is the slice of the engine the cache depends on.
type Resolver interface {
	Resolve(ctx context.Context, cellID string, keys []config.Key) (*engine.Snapshot, error)
}

// Cache memoizes snapshots keyed by a hash of the cell identifier and the
// normalized key set.
type Cache struct {
	resolver Resolver
	store    *ttlcache.Cache[uint64, *engine.Snapshot]
	group    singleflight.Group
}

// New creates an empty cache in front of the given resolver. Entries never
// expire; the cache is discarded with the invocation.
func New(resolver Resolver) *Cache {
	return &Cache{
		resolver: resolver,
		store:    ttlcache.New[uint64, *engine.Snapshot](),
	}
}

// GetOrResolve returns the memoized snapshot for the request, resolving it
// on first use. Requests differing only in key order or duplication share
// one entry. Resolution errors are not cached.
func (c *Cache) GetOrResolve(ctx context.Context, cellID string, keys []config.Key) (*engine.Snapshot, error) {
	logger := ctxlog.FromContext(ctx)

	keys = config.NormalizeKeys(keys)
	hash := requestHash(cellID, keys)

	if item := c.store.Get(hash); item != nil {
		return item.Value(), nil
	}

	snapshot, err, _ := c.group.Do(strconv.FormatUint(hash, 16), func() (any, error) {
		// Another caller may have stored the entry between the miss above
		// and this claim winning the flight.
		if item := c.store.Get(hash); item != nil {
			return item.Value(), nil
		}
		logger.Debug("Snapshot cache miss, resolving.", "cell", cellID, "keys", len(keys))
		snap, err := c.resolver.Resolve(ctx, cellID, keys)
		if err != nil {
			return nil, err
		}
		c.store.Set(hash, snap, ttlcache.NoTTL)
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot.(*engine.Snapshot), nil
}

// Len returns the number of memoized snapshots.
func (c *Cache) Len() int {
	return c.store.Len()
}

// requestHash computes the cache key for a (cell, normalized key set) pair.
// Every component is length-prefixed so concatenation cannot collide across
// field boundaries.
func requestHash(cellID string, keys []config.Key) uint64 {
	digest := xxhash.New()
	writeComponent(digest, cellID)
	for _, key := range keys {
		writeComponent(digest, key.Section)
		writeComponent(digest, key.Field)
	}
	return digest.Sum64()
}

func writeComponent(digest *xxhash.Digest, s string) {
	var length [8]byte
	binary.LittleEndian.PutUint64(length[:], uint64(len(s)))
	_, _ = digest.Write(length[:])
	_, _ = digest.WriteString(s)
}
