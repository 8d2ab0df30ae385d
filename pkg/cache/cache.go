// Package cache provides the persistent key-value stores behind the
// package metadata cache.
//
// # Backends
//
//   - [FileCache]: one file per key under a directory (the CLI default)
//   - [RedisCache]: a Redis server shared between build hosts
//   - [NullCache]: stores nothing; every lookup is a miss
//
// # Compute-if-absent
//
// [GetOrCompute] is the only read path the rest of composer2rpm uses. A hit
// returns the stored bytes verbatim; a miss runs the compute function and
// stores its result only when it succeeds. With [NeverExpire] an entry, once
// written, is served forever. There is no invalidation API: clear the
// backend (e.g. "composer2rpm cache clear") to force a refresh.
package cache

import (
	"context"
	"time"

	"github.com/matzehuels/composer2rpm/pkg/observability"
)

// NeverExpire is the TTL for entries that are never evicted.
const NeverExpire time.Duration = 0

// Cache is a byte-oriented key-value store.
type Cache interface {
	// Get returns the stored value and true, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of NeverExpire keeps it forever.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Policy controls how [GetOrCompute] stores computed values.
type Policy struct {
	// TTL is the lifetime of stored entries; NeverExpire disables expiry.
	TTL time.Duration
}

// Permanent is the write-once policy used for registry metadata.
var Permanent = Policy{TTL: NeverExpire}

// GetOrCompute returns the value cached under key, computing and storing it on a miss.
//
// The returned bool reports whether the value came from the cache. A failing
// compute is returned as-is and nothing is stored. A failing Get is treated
// as a miss; a failing Set is returned since the caller asked for the
// value to be persisted.
func GetOrCompute(ctx context.Context, c Cache, key string, p Policy, compute func(context.Context) ([]byte, error)) ([]byte, bool, error) {
	hooks := observability.Cache()

	if data, ok, err := c.Get(ctx, key); err == nil && ok {
		hooks.OnCacheHit(ctx, key)
		return data, true, nil
	}
	hooks.OnCacheMiss(ctx, key)

	data, err := compute(ctx)
	if err != nil {
		return nil, false, err
	}
	if err := c.Set(ctx, key, data, p.TTL); err != nil {
		return nil, false, err
	}
	hooks.OnCacheSet(ctx, key, len(data))
	return data, false, nil
}
