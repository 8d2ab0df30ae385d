package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/composer2rpm/pkg/cache"
	"github.com/matzehuels/composer2rpm/pkg/config"
)

func TestNewCacheBackends(t *testing.T) {
	c := New(&bytes.Buffer{}, log.InfoLevel)
	ctx := context.Background()

	cfg := config.Default()
	cfg.Cache.Dir = t.TempDir()
	store, err := c.newCache(ctx, cfg)
	if err != nil {
		t.Fatalf("file backend: %v", err)
	}
	fc, ok := store.(*cache.FileCache)
	if !ok {
		t.Fatalf("file backend = %T, want *cache.FileCache", store)
	}
	if fc.Dir() != cfg.Cache.Dir {
		t.Errorf("Dir() = %q, want %q", fc.Dir(), cfg.Cache.Dir)
	}

	cfg.Cache.Backend = config.BackendNone
	store, err = c.newCache(ctx, cfg)
	if err != nil {
		t.Fatalf("none backend: %v", err)
	}
	if _, ok := store.(*cache.NullCache); !ok {
		t.Errorf("none backend = %T, want *cache.NullCache", store)
	}
}

func TestClearDir(t *testing.T) {
	dir := t.TempDir()
	store, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, key := range []string{"packagist:psr/log", "packagist:psr/cache", "packagist:monolog/monolog"} {
		if err := store.Set(ctx, key, []byte("{}"), cache.NeverExpire); err != nil {
			t.Fatal(err)
		}
	}

	count, err := clearDir(dir)
	if err != nil {
		t.Fatalf("clearDir: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("cache root removed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("cache root still has %d entries", len(entries))
	}
}

func TestClearDirMissing(t *testing.T) {
	count, err := clearDir(filepath.Join(t.TempDir(), "absent"))
	if err != nil || count != 0 {
		t.Errorf("clearDir(missing) = %d, %v; want 0, nil", count, err)
	}
}
