package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/composer2rpm/pkg/config"
	"github.com/matzehuels/composer2rpm/pkg/errors"
)

const psrLogDocument = `{"packages":{"psr/log":[{
	"name": "psr/log",
	"version": "3.0.2",
	"description": "Common interface for logging libraries",
	"homepage": "https://github.com/php-fig/log",
	"license": ["MIT"],
	"source": {"type": "git", "url": "https://github.com/php-fig/log.git", "reference": "f16e1d5863e37f8d8c2a01719f5b34baa2b714d3"},
	"dist": {"type": "zip", "url": "https://api.github.com/repos/php-fig/log/zipball/f16e1d5863e37f8d8c2a01719f5b34baa2b714d3", "reference": "f16e1d5863e37f8d8c2a01719f5b34baa2b714d3"},
	"require": {"php": ">=8.0.0"},
	"autoload": {"psr-4": {"Psr\\Log\\": "src"}}
}]}}`

const splitDocument = `{"packages":{"acme/split":[{
	"name": "acme/split",
	"version": "1.0.0",
	"autoload": {"psr-4": {"Acme\\One\\": "one/", "Acme\\Two\\": "two/"}}
}]}}`

type testEnv struct {
	cli    *CLI
	out    string
	cache  string
	calls  *atomic.Int32
	server *httptest.Server
}

// newTestEnv points the CLI at a fake registry through a temporary config
// file and isolates the cache and output directories.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	calls := &atomic.Int32{}
	r := chi.NewRouter()
	r.Get("/p2/psr/log.json", func(w http.ResponseWriter, req *http.Request) {
		calls.Add(1)
		w.Write([]byte(psrLogDocument))
	})
	r.Get("/p2/acme/split.json", func(w http.ResponseWriter, req *http.Request) {
		calls.Add(1)
		w.Write([]byte(splitDocument))
	})
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "config.toml")
	cfg := "[registry]\nurl = \"" + server.URL + "/p2/\"\n\n[packager]\nname = \"Jane Packager\"\nemail = \"jane@example.org\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	cacheDir := filepath.Join(tmp, "cache")
	t.Setenv(config.EnvConfig, cfgPath)
	t.Setenv(config.EnvCacheDir, cacheDir)

	c := New(&bytes.Buffer{}, log.InfoLevel)
	c.outDir = filepath.Join(tmp, "out")
	if err := os.Mkdir(c.outDir, 0o755); err != nil {
		t.Fatal(err)
	}
	return &testEnv{cli: c, out: c.outDir, cache: cacheDir, calls: calls, server: server}
}

func (e *testEnv) run(args ...string) error {
	if args == nil {
		args = []string{} // nil makes cobra read os.Args
	}
	root := e.cli.RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.ExecuteContext(context.Background())
}

func (e *testEnv) outputs(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(e.out)
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name()
	}
	return names
}

func TestGenerateWritesBothFiles(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run("psr/log"); err != nil {
		t.Fatalf("run: %v", err)
	}

	spec, err := os.ReadFile(filepath.Join(env.out, "php-psr-log.spec"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"php-psr-log",
		"3.0.2",
		"License:    MIT",
		"Jane Packager <jane@example.org>",
		"php(language) >= 8.0.0",
	} {
		if !strings.Contains(string(spec), want) {
			t.Errorf("spec missing %q", want)
		}
	}

	autoload, err := os.ReadFile(filepath.Join(env.out, "autoload.php"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(autoload), `'Psr\\Log\\'`) {
		t.Errorf("autoload.php missing namespace:\n%s", autoload)
	}
}

func TestGenerateUsesCacheOnSecondRun(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 2; i++ {
		if err := env.run("psr/log"); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	if got := env.calls.Load(); got != 1 {
		t.Errorf("registry calls = %d, want 1", got)
	}
}

func TestGenerateNormalizesName(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run("  PSR/Log "); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.out, "php-psr-log.spec")); err != nil {
		t.Error(err)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		code      errors.Code
		wantCalls int32
	}{
		{"no separator", []string{"monolog"}, errors.ErrCodeInvalidArgument, 0},
		{"empty vendor", []string{"/log"}, errors.ErrCodeInvalidArgument, 0},
		{"no arguments", nil, errors.ErrCodeInvalidArgument, 0},
		{"too many arguments", []string{"psr/log", "psr/cache"}, errors.ErrCodeInvalidArgument, 0},
		{"unknown package", []string{"acme/missing"}, errors.ErrCodeRegistry, 1},
		{"ambiguous namespace", []string{"acme/split"}, errors.ErrCodeConfig, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			err := env.run(tt.args...)
			if !errors.Is(err, tt.code) {
				t.Fatalf("run() error = %v, want code %s", err, tt.code)
			}
			if got := env.calls.Load(); got != tt.wantCalls {
				t.Errorf("registry calls = %d, want %d", got, tt.wantCalls)
			}
			if names := env.outputs(t); len(names) != 0 {
				t.Errorf("output dir = %v, want empty", names)
			}
		})
	}
}

func TestGenerateInvalidConfig(t *testing.T) {
	env := newTestEnv(t)

	bad := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(bad, []byte("[cache]\nbackend = \"memcached\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvConfig, bad)

	err := env.run("psr/log")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("run() error = %v, want INVALID_INPUT", err)
	}
	if env.calls.Load() != 0 {
		t.Error("registry contacted despite invalid config")
	}
}

func TestVersionFlag(t *testing.T) {
	env := newTestEnv(t)
	if err := env.run("--version"); err != nil {
		t.Fatalf("--version: %v", err)
	}
	if env.calls.Load() != 0 {
		t.Error("--version contacted the registry")
	}
}
