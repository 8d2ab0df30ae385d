// Package pkg holds the composer2rpm libraries.
//
// The generator turns one Packagist package into an RPM recipe:
//
//	vendor/project
//	     ↓
//	[composer] identifier parsing, manifest accessors, constraint conversion
//	     ↓
//	[integrations/packagist] registry lookup through [cache]
//	     ↓
//	[recipe] template context, rendering and the atomic file write
//
// Supporting packages:
//   - [config]: TOML settings and environment overrides
//   - [errors]: coded errors surfaced to the user
//   - [observability]: cache and HTTP event hooks
//   - [buildinfo]: version metadata injected at build time
package pkg
