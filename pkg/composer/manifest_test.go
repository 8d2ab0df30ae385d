package composer

import (
	"reflect"
	"testing"

	"github.com/matzehuels/composer2rpm/pkg/errors"
)

const httpMessageEntry = `{
	"name": "psr/http-message",
	"description": "Common interface for HTTP messages",
	"version": "1.0.1",
	"license": ["MIT"],
	"homepage": "https://github.com/php-fig/http-message",
	"source": {
		"type": "git",
		"url": "https://github.com/php-fig/http-message.git",
		"reference": "abcdef1234567890"
	},
	"dist": {
		"type": "zip",
		"url": "https://api.github.com/repos/php-fig/http-message/zipball/abcdef1234567890",
		"reference": "abcdef1234567890"
	},
	"require": {"php": "^7.2", "psr/log": "^1.0"},
	"autoload": {"psr-4": {"Psr\\Http\\Message\\": "src/"}}
}`

func mustParse(t *testing.T, raw string) *Manifest {
	t.Helper()
	m, err := ParseManifest([]byte(raw))
	if err != nil {
		t.Fatalf("ParseManifest() error: %v", err)
	}
	return m
}

func TestManifestProjections(t *testing.T) {
	m := mustParse(t, httpMessageEntry)

	checks := []struct {
		name string
		got  string
		want string
	}{
		{"Name", m.Name(), "psr/http-message"},
		{"Version", m.Version(), "1.0.1"},
		{"Description", m.Description(), "Common interface for HTTP messages"},
		{"License", m.License(), "MIT"},
		{"SourceURL", m.SourceURL(), "https://api.github.com/repos/php-fig/http-message/zipball/abcdef1234567890"},
		{"HomepageURL", m.HomepageURL(), "https://github.com/php-fig/http-message.git"},
		{"ProjectPage", m.ProjectPage(), "https://github.com/php-fig/http-message"},
		{"CommitHash", m.CommitHash(), "abcdef1234567890"},
		{"ShortCommitHash", m.ShortCommitHash(), "abcdef1"},
		{"RuntimeConstraint", m.RuntimeConstraint(), ">= 7.2"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s() = %q, want %q", c.name, c.got, c.want)
		}
	}
}

func TestManifestDependencies(t *testing.T) {
	m := mustParse(t, httpMessageEntry)

	want := []Dependency{{Name: "psr/log", Constraint: ">= 1.0"}}
	if got := m.Dependencies(); !reflect.DeepEqual(got, want) {
		t.Errorf("Dependencies() = %+v, want %+v", got, want)
	}
}

func TestManifestDependenciesSorted(t *testing.T) {
	m := mustParse(t, `{"require": {"symfony/yaml": ">=5.0", "php": ">=8.1", "doctrine/lexer": "^2.0", "ext-json": "*"}}`)

	want := []Dependency{
		{Name: "doctrine/lexer", Constraint: ">= 2.0"},
		{Name: "ext-json", Constraint: "*"},
		{Name: "symfony/yaml", Constraint: ">= 5.0"},
	}
	if got := m.Dependencies(); !reflect.DeepEqual(got, want) {
		t.Errorf("Dependencies() = %+v, want %+v", got, want)
	}
}

func TestManifestMissingFields(t *testing.T) {
	m := mustParse(t, `{}`)

	if m.Version() != "" || m.License() != "" || m.SourceURL() != "" || m.HomepageURL() != "" {
		t.Error("missing fields should project to empty strings")
	}
	if m.RuntimeConstraint() != "" {
		t.Errorf("RuntimeConstraint() = %q, want empty", m.RuntimeConstraint())
	}
	if deps := m.Dependencies(); len(deps) != 0 {
		t.Errorf("Dependencies() = %v, want empty", deps)
	}
	if m.ShortCommitHash() != "" {
		t.Errorf("ShortCommitHash() = %q, want empty", m.ShortCommitHash())
	}
}

func TestManifestLicenseShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"single in list", `{"license": ["MIT"]}`, "MIT"},
		{"several", `{"license": ["LGPL-2.1-only", "GPL-3.0-or-later"]}`, "LGPL-2.1-only and GPL-3.0-or-later"},
		{"plain string", `{"license": "BSD-3-Clause"}`, "BSD-3-Clause"},
		{"null", `{"license": null}`, ""},
		{"wrong type", `{"license": 42}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustParse(t, tt.raw).License(); got != tt.want {
				t.Errorf("License() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestManifestRequireToleratesNonStrings(t *testing.T) {
	m := mustParse(t, `{"require": {"psr/log": "^1.0", "broken/pkg": 3}}`)

	deps := m.Dependencies()
	if len(deps) != 1 || deps[0].Name != "psr/log" {
		t.Errorf("Dependencies() = %+v, want only psr/log", deps)
	}
}

func TestManifestNamespace(t *testing.T) {
	m := mustParse(t, `{"autoload": {"psr-4": {"Foo\\Bar\\": "src/"}}}`)

	ns, err := m.Namespace()
	if err != nil {
		t.Fatalf("Namespace() error: %v", err)
	}
	if ns != `Foo\Bar\` {
		t.Errorf("Namespace() = %q, want %q", ns, `Foo\Bar\`)
	}

	path, err := m.NamespacePath()
	if err != nil {
		t.Fatalf("NamespacePath() error: %v", err)
	}
	if path != "src" {
		t.Errorf("NamespacePath() = %q, want %q", path, "src")
	}
}

func TestManifestNamespacePathList(t *testing.T) {
	m := mustParse(t, `{"autoload": {"psr-4": {"Foo\\": ["lib/", "src/"]}}}`)

	path, err := m.NamespacePath()
	if err != nil {
		t.Fatalf("NamespacePath() error: %v", err)
	}
	if path != "lib" {
		t.Errorf("NamespacePath() = %q, want %q", path, "lib")
	}
}

func TestManifestNamespaceAmbiguous(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no autoload", `{"name": "a/b"}`},
		{"empty psr-4", `{"autoload": {"psr-4": {}}}`},
		{"classmap only", `{"autoload": {"classmap": ["src/"]}}`},
		{"two roots", `{"autoload": {"psr-4": {"Foo\\": "src/", "Bar\\": "lib/"}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustParse(t, tt.raw)
			_, err := m.Namespace()
			if !errors.Is(err, errors.ErrCodeConfig) {
				t.Errorf("Namespace() error = %v, want %s", err, errors.ErrCodeConfig)
			}
			if _, err := m.NamespacePath(); !errors.Is(err, errors.ErrCodeConfig) {
				t.Errorf("NamespacePath() error = %v, want %s", err, errors.ErrCodeConfig)
			}
		})
	}
}

func TestParseManifestInvalid(t *testing.T) {
	_, err := ParseManifest([]byte(`{not json`))
	if !errors.Is(err, errors.ErrCodeRegistry) {
		t.Errorf("ParseManifest() error = %v, want %s", err, errors.ErrCodeRegistry)
	}
}
