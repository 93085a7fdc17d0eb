package parser

import (
	"path/filepath"
	"strings"
)

// Format identifies how a version is stored inside a file.
type Format string

const (
	// FormatPython is for `__version__ = "X.Y.Z"` markers (__init__.py, _version.py).
	FormatPython Format = "python"

	// FormatJSON is for JSON manifests (package.json, ...).
	FormatJSON Format = "json"

	// FormatYAML is for YAML manifests (Chart.yaml, ...).
	FormatYAML Format = "yaml"

	// FormatTOML is for TOML manifests (pyproject.toml, Cargo.toml, ...).
	FormatTOML Format = "toml"

	// FormatRaw is for files whose whole content is the version.
	FormatRaw Format = "raw"

	// FormatRegex is for files matched by a user pattern with one capturing group.
	FormatRegex Format = "regex"
)

// Formats lists every supported format.
var Formats = []Format{FormatPython, FormatJSON, FormatYAML, FormatTOML, FormatRaw, FormatRegex}

func (f Format) String() string {
	return string(f)
}

// IsValid reports whether f is a known format.
func (f Format) IsValid() bool {
	switch f {
	case FormatPython, FormatJSON, FormatYAML, FormatTOML, FormatRaw, FormatRegex:
		return true
	default:
		return false
	}
}

// structured reports whether the format addresses the version through a field path.
func (f Format) structured() bool {
	return f == FormatJSON || f == FormatYAML || f == FormatTOML
}

// Target describes where a version lives in one file.
type Target struct {
	// Path is the file path, absolute or relative to the project root.
	Path string `yaml:"path"`

	// Format is the file format. Detected from Path when empty.
	Format Format `yaml:"format,omitempty"`

	// Field is the dot-notation path of the version for json, yaml and toml.
	// Example: "version", "project.version", "tool.poetry.version".
	Field string `yaml:"field,omitempty"`

	// Pattern is the regex for the regex format; its first group is the version.
	Pattern string `yaml:"pattern,omitempty"`
}

// Resolved fills Format and Field from the file name when they are left empty.
func (t Target) Resolved() Target {
	if t.Format == "" {
		t.Format = DetectFormat(t.Path)
	}
	if t.Field == "" && t.Format.structured() {
		t.Field = DefaultField(t.Path)
	}
	return t
}

// Result is a version read from a Target.
type Result struct {
	Version string
	Target  Target
}

// DefaultField returns the usual version field for well-known manifests.
func DefaultField(path string) string {
	switch filepath.Base(path) {
	case "pyproject.toml":
		return "project.version"
	case "Cargo.toml":
		return "package.version"
	default:
		return "version"
	}
}

// DetectFormat guesses the format from the file name.
func DetectFormat(path string) Format {
	base := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(base, ".py"):
		return FormatPython
	case strings.HasSuffix(base, ".json"):
		return FormatJSON
	case strings.HasSuffix(base, ".yaml"), strings.HasSuffix(base, ".yml"):
		return FormatYAML
	case strings.HasSuffix(base, ".toml"):
		return FormatTOML
	default:
		return FormatRaw
	}
}
