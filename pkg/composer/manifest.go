package composer

import (
	"encoding/json"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/composer2rpm/pkg/errors"
)

// runtimePackage is the pseudo-dependency Composer uses for the PHP version.
const runtimePackage = "php"

// shortHashLength is the number of commit characters kept in source paths.
const shortHashLength = 7

// Dependency is one runtime requirement of a package.
// Constraint is already in RPM syntax (see [ConvertConstraint]).
type Dependency struct {
	Name       string // Composer package name (e.g., "psr/log")
	Constraint string // Converted constraint (e.g., ">= 1.0"), may be empty
}

// Manifest is the typed view of one Packagist version entry.
//
// All fields are optional. Accessor methods never fail on missing data,
// except [Manifest.Namespace].
type Manifest struct {
	name        string
	version     string
	description string
	homepage    string
	licenses    []string
	require     map[string]string
	source      Location
	dist        Location
	psr4        map[string][]string
}

// Location is a source or dist reference in a version entry.
type Location struct {
	Type      string `json:"type"`
	URL       string `json:"url"`
	Reference string `json:"reference"`
}

// ParseManifest decodes a raw version entry.
//
// The license field may be a string or an array; psr-4 targets may be a
// string or an array of strings. Fields with unexpected shapes are dropped
// rather than rejected, as the Packagist p2 format minifies aggressively.
func ParseManifest(raw []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRegistry, err, "decode package metadata")
	}
	return &m, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Manifest) UnmarshalJSON(b []byte) error {
	type raw struct {
		Name        string          `json:"name"`
		Version     string          `json:"version"`
		Description string          `json:"description"`
		Homepage    string          `json:"homepage"`
		License     json.RawMessage `json:"license"`
		Require     json.RawMessage `json:"require"`
		Source      Location        `json:"source"`
		Dist        Location        `json:"dist"`
		Autoload    struct {
			PSR4 map[string]json.RawMessage `json:"psr-4"`
		} `json:"autoload"`
	}

	var r raw
	if err := json.Unmarshal(b, &r); err != nil {
		return err
	}

	*m = Manifest{
		name:        r.Name,
		version:     r.Version,
		description: r.Description,
		homepage:    r.Homepage,
		source:      r.Source,
		dist:        r.Dist,
		licenses:    stringOrList(r.License),
	}

	if isPresent(r.Require) {
		var req map[string]any
		if json.Unmarshal(r.Require, &req) == nil {
			m.require = make(map[string]string, len(req))
			for k, v := range req {
				if s, ok := v.(string); ok {
					m.require[k] = s
				}
			}
		}
	}

	if len(r.Autoload.PSR4) > 0 {
		m.psr4 = make(map[string][]string, len(r.Autoload.PSR4))
		for ns, target := range r.Autoload.PSR4 {
			m.psr4[ns] = stringOrList(target)
		}
	}
	return nil
}

// Dependencies returns the runtime requirements other than php, sorted by name.
func (m *Manifest) Dependencies() []Dependency {
	names := slices.Sorted(maps.Keys(m.require))
	deps := make([]Dependency, 0, len(names))
	for _, name := range names {
		if strings.EqualFold(name, runtimePackage) {
			continue
		}
		deps = append(deps, Dependency{Name: name, Constraint: ConvertConstraint(m.require[name])})
	}
	return deps
}

// RuntimeConstraint returns the converted php constraint, or "" if none is declared.
func (m *Manifest) RuntimeConstraint() string {
	c, ok := m.require[runtimePackage]
	if !ok {
		return ""
	}
	return ConvertConstraint(c)
}

// CommitHash returns source.reference.
func (m *Manifest) CommitHash() string { return m.source.Reference }

// ShortCommitHash returns the first seven characters of source.reference.
func (m *Manifest) ShortCommitHash() string {
	h := m.source.Reference
	if len(h) > shortHashLength {
		return h[:shortHashLength]
	}
	return h
}

// Namespace returns the single PSR-4 autoload root, e.g. `Psr\Http\Message\`.
// It fails with CONFIG_ERROR when zero or several roots are declared.
func (m *Manifest) Namespace() (string, error) {
	switch len(m.psr4) {
	case 0:
		return "", errors.New(errors.ErrCodeConfig, "%s declares no autoload.psr-4 namespace", m.displayName())
	case 1:
		for ns := range m.psr4 {
			return ns, nil
		}
	}
	roots := slices.Sorted(maps.Keys(m.psr4))
	return "", errors.New(errors.ErrCodeConfig, "%s declares %d autoload.psr-4 namespaces (%s), exactly one is supported",
		m.displayName(), len(roots), strings.Join(roots, ", "))
}

// NamespacePath returns the source directory mapped to the PSR-4 root,
// without trailing slash. An empty mapping (package root) yields "".
func (m *Manifest) NamespacePath() (string, error) {
	ns, err := m.Namespace()
	if err != nil {
		return "", err
	}
	paths := m.psr4[ns]
	if len(paths) == 0 {
		return "", nil
	}
	return strings.TrimSuffix(paths[0], "/"), nil
}

// Name returns the package name as stored in the registry.
func (m *Manifest) Name() string { return m.name }

// Version returns the version string, e.g. "1.0.1" or "v2.3.0".
func (m *Manifest) Version() string { return m.version }

// Description returns the package description.
func (m *Manifest) Description() string { return m.description }

// License returns all licenses joined with " and ".
func (m *Manifest) License() string { return strings.Join(m.licenses, " and ") }

// SourceURL returns dist.url, the archive the RPM is built from.
func (m *Manifest) SourceURL() string { return m.dist.URL }

// HomepageURL returns source.url, the upstream repository.
func (m *Manifest) HomepageURL() string { return m.source.URL }

// ProjectPage returns the homepage field, which many packages leave empty.
func (m *Manifest) ProjectPage() string { return m.homepage }

func (m *Manifest) displayName() string {
	if m.name != "" {
		return m.name
	}
	return "package"
}

func isPresent(b json.RawMessage) bool {
	return len(b) > 0 && string(b) != "null"
}

func stringOrList(b json.RawMessage) []string {
	if !isPresent(b) {
		return nil
	}
	var list []string
	if json.Unmarshal(b, &list) == nil {
		return list
	}
	var single string
	if json.Unmarshal(b, &single) == nil && single != "" {
		return []string{single}
	}
	return nil
}
