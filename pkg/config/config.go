// Package config loads composer2rpm settings from a TOML file and the environment.
//
// The file is optional. Its default location is
// $XDG_CONFIG_HOME/composer2rpm/config.toml (falling back to
// ~/.config/composer2rpm/config.toml); COMPOSER2RPM_CONFIG points elsewhere.
//
//	[registry]
//	url = "https://repo.packagist.org/p2/"
//
//	[http]
//	timeout = "30s"
//
//	[cache]
//	backend = "file"          # file, redis or none
//	dir = "/var/cache/composer2rpm"
//	redis_url = "redis://localhost:6379/0"
//
//	[packager]
//	name = "Jane Packager"
//	email = "jane@example.org"
//
// COMPOSER2RPM_CACHE_DIR overrides cache.dir.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/composer2rpm/pkg/errors"
)

// AppName names the config and cache directories.
const AppName = "composer2rpm"

// Environment variables consulted by [Path] and [Config.ApplyEnv].
const (
	EnvConfig   = "COMPOSER2RPM_CONFIG"
	EnvCacheDir = "COMPOSER2RPM_CACHE_DIR"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// DefaultHTTPTimeout bounds a registry request unless configured otherwise.
const DefaultHTTPTimeout = 30 * time.Second

// Config holds all settings.
type Config struct {
	Registry RegistryConfig `toml:"registry"`
	HTTP     HTTPConfig     `toml:"http"`
	Cache    CacheConfig    `toml:"cache"`
	Packager PackagerConfig `toml:"packager"`
}

// RegistryConfig selects the Packagist endpoint.
type RegistryConfig struct {
	URL string `toml:"url"` // Empty selects repo.packagist.org
}

// HTTPConfig tunes the registry client.
type HTTPConfig struct {
	Timeout time.Duration `toml:"timeout"` // 0 disables the timeout
}

// CacheConfig selects where registry documents are kept.
type CacheConfig struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
}

// PackagerConfig is written into the recipe changelog.
type PackagerConfig struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

// Default returns the settings used when no file exists.
func Default() *Config {
	return &Config{
		HTTP:  HTTPConfig{Timeout: DefaultHTTPTimeout},
		Cache: CacheConfig{Backend: BackendFile},
	}
}

// Path returns the config file location.
func Path() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// Load reads path on top of [Default]. A missing file yields the defaults;
// a malformed file, unknown keys or invalid values yield INVALID_INPUT.
func Load(path string) (*Config, error) {
	cfg := Default()

	md, err := toml.DecodeFile(path, cfg)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown keys in config %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv applies environment overrides.
func (c *Config) ApplyEnv() {
	if dir := os.Getenv(EnvCacheDir); dir != "" {
		c.Cache.Dir = dir
	}
}

// Validate checks values that cannot be expressed in the TOML types.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache.backend %q requires cache.redis_url", BackendRedis)
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache.backend %q (want %s, %s or %s)",
			c.Cache.Backend, BackendFile, BackendRedis, BackendNone)
	}
	if c.HTTP.Timeout < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "http.timeout must not be negative")
	}
	return nil
}

// CacheDir returns the file cache root: cache.dir if set, otherwise
// $XDG_CACHE_HOME/composer2rpm, otherwise ~/.cache/composer2rpm.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// PackagerIdentity formats the changelog author, e.g. "Jane Packager <jane@example.org>".
// Returns "" when no name is configured.
func (c *Config) PackagerIdentity() string {
	name := strings.TrimSpace(c.Packager.Name)
	if name == "" {
		return ""
	}
	if email := strings.TrimSpace(c.Packager.Email); email != "" {
		return name + " <" + email + ">"
	}
	return name
}
