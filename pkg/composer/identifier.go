package composer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/matzehuels/composer2rpm/pkg/errors"
)

// rpmPrefix is prepended to every generated RPM name.
const rpmPrefix = "php"

// maxNameLength bounds identifiers before they reach URLs and file names.
const maxNameLength = 256

// vendorPattern and projectPattern match the two sides of a Composer
// package name. Projects may use up to two dashes between segments.
var (
	vendorPattern  = regexp.MustCompile(`^[a-z0-9]([_.-]?[a-z0-9]+)*$`)
	projectPattern = regexp.MustCompile(`^[a-z0-9](([_.]|-{1,2})?[a-z0-9]+)*$`)
)

// Identifier is a validated Composer package name.
//
// Name always equals Vendor + "/" + Project and neither part is empty.
// Construct it with [ParseIdentifier]; the zero value is not valid.
type Identifier struct {
	Name    string // Full package name (e.g., "psr/http-message")
	Vendor  string // Vendor part (e.g., "psr")
	Project string // Project part (e.g., "http-message")
}

// ParseIdentifier validates s and splits it on the first "/".
//
// Leading and trailing whitespace is ignored and the name is lowercased,
// matching how Packagist stores names. Returns an INVALID_ARGUMENT error if
// s is empty, lacks a "/", has an empty vendor or project, or contains
// characters Composer does not allow in package names.
func ParseIdentifier(s string) (Identifier, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return Identifier{}, errors.New(errors.ErrCodeInvalidArgument, "package name cannot be empty")
	}
	if len(name) > maxNameLength {
		return Identifier{}, errors.New(errors.ErrCodeInvalidArgument, "package name too long (max %d characters)", maxNameLength)
	}

	vendor, project, ok := strings.Cut(name, "/")
	if !ok || vendor == "" || project == "" {
		return Identifier{}, errors.New(errors.ErrCodeInvalidArgument, "package name %q must have the form vendor/project", s)
	}
	if !vendorPattern.MatchString(vendor) || !projectPattern.MatchString(project) {
		return Identifier{}, errors.New(errors.ErrCodeInvalidArgument, "package name %q contains invalid characters", s)
	}

	return Identifier{Name: name, Vendor: vendor, Project: project}, nil
}

// String returns the full "vendor/project" name.
func (id Identifier) String() string { return id.Name }

// RegistryURL returns the metadata document location under base.
// base is expected to end with "/" (e.g., "https://repo.packagist.org/p2/").
func (id Identifier) RegistryURL(base string) string {
	return base + id.Name + ".json"
}

// BaseName returns the RPM package name, "php-<vendor>-<project>".
func (id Identifier) BaseName() string {
	return fmt.Sprintf("%s-%s-%s", rpmPrefix, id.Vendor, id.Project)
}

// SpecFileName returns the name of the generated recipe file.
func (id Identifier) SpecFileName() string {
	return id.BaseName() + ".spec"
}
