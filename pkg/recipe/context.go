package recipe

import (
	"regexp"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/matzehuels/composer2rpm/pkg/composer"
	"github.com/matzehuels/composer2rpm/pkg/integrations"
)

const (
	defaultRelease  = "1"
	defaultPackager = "composer2rpm"
)

var githubRepoRe = regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+)$`)

// Options carries the values that do not come from the registry.
type Options struct {
	Release  string    // RPM release, "1" if empty
	Packager string    // Changelog author, "composer2rpm" if empty
	Date     time.Time // Changelog date, now if zero
}

// Context is everything the templates print. Build it with [NewContext].
type Context struct {
	PackageName string // Composer name, "vendor/project"
	Vendor      string
	Project     string
	Name        string // RPM name, "php-vendor-project"

	Version     string // RPM-safe version
	Release     string
	Summary     string
	Description string
	License     string
	URL         string
	Source0     string

	Namespace   string // PSR-4 root, unescaped
	SourceDir   string // Directory mapped to Namespace, "" or ending in "/"
	SetupDir    string // Directory the source archive unpacks to
	Commit      string
	ShortCommit string

	Dependencies      []composer.Dependency // Composer libraries (vendor/project)
	Extensions        []composer.Dependency // PHP extensions, named as RPM capabilities
	RuntimeConstraint string                // php(language) constraint, may be empty

	Packager string
	Date     time.Time
}

// NewContext builds the render context for one package.
// It fails with CONFIG_ERROR when the manifest has no single PSR-4 namespace.
func NewContext(id composer.Identifier, m *composer.Manifest, opts Options) (*Context, error) {
	ns, err := m.Namespace()
	if err != nil {
		return nil, err
	}
	srcPath, err := m.NamespacePath()
	if err != nil {
		return nil, err
	}

	rc := &Context{
		PackageName:       id.Name,
		Vendor:            id.Vendor,
		Project:           id.Project,
		Name:              id.BaseName(),
		Version:           rpmVersion(m.Version()),
		Release:           opts.Release,
		Summary:           summary(m.Description(), id.Name),
		Description:       description(m.Description(), id.Name),
		License:           m.License(),
		URL:               homepage(m),
		Source0:           m.SourceURL(),
		Namespace:         ns,
		Commit:            m.CommitHash(),
		ShortCommit:       m.ShortCommitHash(),
		RuntimeConstraint: unconstrained(m.RuntimeConstraint()),
		Packager:          opts.Packager,
		Date:              opts.Date,
	}
	if srcPath != "" && srcPath != "." {
		rc.SourceDir = srcPath + "/"
	}
	rc.SetupDir = setupDir(rc, m.HomepageURL())
	rc.Dependencies, rc.Extensions = splitRequirements(m.Dependencies())

	if rc.Release == "" {
		rc.Release = defaultRelease
	}
	if rc.Packager == "" {
		rc.Packager = defaultPackager
	}
	if rc.Date.IsZero() {
		rc.Date = time.Now()
	}
	return rc, nil
}

// splitRequirements separates Composer libraries from PHP extensions.
// Other platform requirements (lib-*, composer-*-api) have no RPM
// counterpart and are dropped; "*" constraints become unconstrained.
func splitRequirements(deps []composer.Dependency) (libs, exts []composer.Dependency) {
	for _, d := range deps {
		d.Constraint = unconstrained(d.Constraint)
		name := strings.ToLower(d.Name)
		switch {
		case strings.Contains(name, "/"):
			libs = append(libs, d)
		case strings.HasPrefix(name, "ext-"):
			exts = append(exts, composer.Dependency{Name: "php-" + strings.TrimPrefix(name, "ext-"), Constraint: d.Constraint})
		}
	}
	return libs, exts
}

// unconstrained maps Composer's "any version" to an RPM requirement
// without a version.
func unconstrained(c string) string {
	if c == "*" {
		return ""
	}
	return c
}

// rpmVersion strips a leading "v" from semver versions and turns a
// pre-release suffix into the RPM "~" form (1.0.0-beta1 -> 1.0.0~beta1).
// Versions semver cannot parse are returned unchanged.
func rpmVersion(raw string) string {
	v, err := semver.NewVersion(raw)
	if err != nil {
		return raw
	}
	out := strings.TrimLeft(raw, "vV")
	if pre := v.Prerelease(); pre != "" {
		out = strings.Replace(out, "-"+pre, "~"+pre, 1)
	}
	return out
}

func summary(desc, name string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(desc), "\n")
	line = strings.TrimSuffix(strings.TrimSpace(line), ".")
	if line == "" {
		return "PHP library " + name
	}
	return escapeMacros(line)
}

func description(desc, name string) string {
	if d := strings.TrimSpace(desc); d != "" {
		return escapeMacros(d)
	}
	return "PHP library " + name + "."
}

// escapeMacros keeps rpmbuild from expanding "%" in upstream text.
func escapeMacros(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}

// homepage prefers the upstream repository, falling back to the homepage field.
func homepage(m *composer.Manifest) string {
	if u := integrations.NormalizeRepoURL(m.HomepageURL()); u != "" {
		return u
	}
	return m.ProjectPage()
}

// setupDir names the directory the source archive unpacks to. GitHub
// zipballs use "<owner>-<repo>-<short commit>".
func setupDir(rc *Context, sourceURL string) string {
	if m := githubRepoRe.FindStringSubmatch(integrations.NormalizeRepoURL(sourceURL)); m != nil && rc.ShortCommit != "" {
		return m[1] + "-" + m[2] + "-" + rc.ShortCommit
	}
	if rc.ShortCommit == "" {
		if rc.Version == "" {
			return rc.Project
		}
		return rc.Project + "-" + rc.Version
	}
	return rc.Project + "-" + rc.ShortCommit
}
