// Package cli implements the composer2rpm command-line interface.
//
// The root command takes one Composer package name, fetches its metadata
// from Packagist (through the on-disk cache) and writes autoload.php and
// php-<vendor>-<project>.spec into the current directory:
//
//	composer2rpm psr/http-message
//
// Subcommands:
//   - cache: show or clear the metadata cache
//   - completion: generate shell completion scripts
//
// The CLI is built using cobra and logs through charmbracelet/log; pass
// --verbose (-v) for debug output including cache and HTTP events.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/composer2rpm/pkg/cache"
	"github.com/matzehuels/composer2rpm/pkg/config"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// outDir receives the generated files.
	outDir string
}

// New creates a new CLI instance writing logs to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		outDir: ".",
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the config file and applies environment overrides.
func (c *CLI) loadConfig() (*config.Config, error) {
	path, err := config.Path()
	if err != nil {
		c.Logger.Debug("No config path, using defaults", "err", err)
		cfg := config.Default()
		cfg.ApplyEnv()
		return cfg, nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	c.Logger.Debug("Loaded config", "path", path, "cache", cfg.Cache.Backend)
	return cfg, nil
}

// newCache opens the configured metadata cache backend.
func (c *CLI) newCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
	}

	dir, err := cfg.CacheDir()
	if err != nil {
		return nil, fmt.Errorf("get cache dir: %w", err)
	}
	c.Logger.Debug("Using file cache", "dir", dir)
	return cache.NewFileCache(dir)
}
