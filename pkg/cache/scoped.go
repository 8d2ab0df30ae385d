package cache

import (
	"context"
	"time"
)

// Scoped wraps a Cache and prefixes every key.
// This keeps registry entries apart from anything else sharing the backend,
// which matters most for a shared Redis server:
//
//	packagist := cache.NewScoped(c, "packagist:")
//	packagist.Get(ctx, "psr/log")  // reads "packagist:psr/log"
type Scoped struct {
	inner  Cache
	prefix string
}

// NewScoped creates a prefixed view of inner. Close closes inner.
func NewScoped(inner Cache, prefix string) *Scoped {
	if inner == nil {
		inner = NewNullCache()
	}
	return &Scoped{inner: inner, prefix: prefix}
}

// Get reads the prefixed key.
func (s *Scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

// Set writes the prefixed key.
func (s *Scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, data, ttl)
}

// Delete removes the prefixed key.
func (s *Scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

// Close closes the wrapped cache.
func (s *Scoped) Close() error { return s.inner.Close() }

var _ Cache = (*Scoped)(nil)
