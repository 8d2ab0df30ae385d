// Package composer models the pieces of a Composer package that composer2rpm
// needs to write an RPM recipe.
//
// # Overview
//
// Three types live here:
//
//   - [Identifier]: a validated "vendor/project" package name
//   - [Manifest]: the typed view of one Packagist version entry
//   - [Dependency]: a runtime requirement with its constraint already
//     converted to RPM syntax
//
// # Constraint Conversion
//
// [ConvertConstraint] rewrites a Composer constraint into the
// "operator version" form RPM expects:
//
//	ConvertConstraint("^1.2.0")  // ">= 1.2.0"
//	ConvertConstraint(">=1.0")   // ">= 1.0"
//	ConvertConstraint("1.0")     // "1.0"
//
// Caret ranges only keep their lower bound. Composer reads "^1.2" as
// ">=1.2 <2.0"; the converted form drops the "<2.0" part, and existing
// recipes rely on that output.
//
// # Manifest Accessors
//
// Every accessor on [Manifest] is total: a missing field yields the zero
// value. The single exception is [Manifest.Namespace], which fails with
// CONFIG_ERROR unless autoload.psr-4 declares exactly one root.
package composer
