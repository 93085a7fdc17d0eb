package discovery

import "github.com/indaco/pkgmeta/internal/parser"

// Result represents the complete discovery result for a project.
type Result struct {
	// Packages contains directories whose __init__.py declares __version__.
	Packages []Package

	// Manifests contains discovered manifest files with version information.
	Manifests []ManifestSource

	// Mismatches contains manifests whose version differs from the primary package.
	Mismatches []Mismatch
}

// HasPackages returns true if any versioned package was found.
func (r *Result) HasPackages() bool {
	return len(r.Packages) > 0
}

// HasMismatches returns true if version mismatches were detected.
func (r *Result) HasMismatches() bool {
	return len(r.Mismatches) > 0
}

// Primary returns the package the config should point at, or nil.
// Top-level packages sort before src/ layout packages.
func (r *Result) Primary() *Package {
	if len(r.Packages) == 0 {
		return nil
	}
	return &r.Packages[0]
}

// SyncCandidates turns the discovered manifests into sync targets.
func (r *Result) SyncCandidates() []parser.Target {
	targets := make([]parser.Target, 0, len(r.Manifests))
	for _, m := range r.Manifests {
		targets = append(targets, m.Target())
	}
	return targets
}

// Package is a Python package directory with a version marker.
type Package struct {
	// Name is the import name (directory name).
	Name string

	// VersionFile is the marker file relative to the discovery root.
	VersionFile string

	// Version is the extracted version.
	Version string
}

// ManifestSource represents a discovered manifest file with version information.
type ManifestSource struct {
	// RelPath is the relative path from the discovery root.
	RelPath string

	// Version is the extracted version string.
	Version string

	Format parser.Format
	Field  string

	// Description is a human-readable description of the file type.
	Description string
}

// Target converts m to a sync target.
func (m ManifestSource) Target() parser.Target {
	return parser.Target{Path: m.RelPath, Format: m.Format, Field: m.Field}
}

// Mismatch represents a version mismatch between sources.
type Mismatch struct {
	Source          string
	ExpectedVersion string
	ActualVersion   string
}

// KnownManifest describes a known manifest file type for discovery.
type KnownManifest struct {
	Filename    string
	Format      parser.Format
	Field       string
	Description string
}

// DefaultKnownManifests returns the manifest files checked in each scanned directory.
func DefaultKnownManifests() []KnownManifest {
	return []KnownManifest{
		{Filename: "pyproject.toml", Format: parser.FormatTOML, Field: "project.version", Description: "Python (pyproject.toml)"},
		{Filename: "package.json", Format: parser.FormatJSON, Field: "version", Description: "Node.js (package.json)"},
		{Filename: "Cargo.toml", Format: parser.FormatTOML, Field: "package.version", Description: "Rust (Cargo.toml)"},
		{Filename: "Chart.yaml", Format: parser.FormatYAML, Field: "version", Description: "Helm (Chart.yaml)"},
		{Filename: "VERSION", Format: parser.FormatRaw, Description: "Plain text (VERSION)"},
		{Filename: "version.txt", Format: parser.FormatRaw, Description: "Plain text (version.txt)"},
	}
}
