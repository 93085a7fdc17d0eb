package descriptor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// Format selects how a Descriptor is rendered.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatTOML    Format = "toml"
	FormatPKGInfo Format = "pkg-info"
)

// Formats lists every supported output format.
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML, FormatPKGInfo}

// ParseFormat validates s as an output format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if !slices.Contains(Formats, f) {
		names := make([]string, len(Formats))
		for i, f := range Formats {
			names[i] = string(f)
		}
		return "", fmt.Errorf("unknown format %q (available: %s)", s, strings.Join(names, ", "))
	}
	return f, nil
}

// Render serializes d in the given format.
func Render(d *Descriptor, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false) // keep ">= 3.7" readable
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatYAML:
		return yaml.Marshal(d)
	case FormatTOML:
		return toml.Marshal(toPyproject(d))
	case FormatPKGInfo:
		return renderPKGInfo(d), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// pyproject mirrors the [project] table of pyproject.toml.
type pyproject struct {
	Project pyprojectProject `toml:"project"`
}

type pyprojectProject struct {
	Name           string            `toml:"name"`
	Version        string            `toml:"version"`
	Description    string            `toml:"description,omitempty"`
	Readme         string            `toml:"readme,omitempty"`
	RequiresPython string            `toml:"requires-python,omitempty"`
	License        *pyprojectLicense `toml:"license,omitempty"`
	Authors        []pyprojectPerson `toml:"authors,omitempty"`
	Classifiers    []string          `toml:"classifiers"`
	Dependencies   []string          `toml:"dependencies"`
	URLs           map[string]string `toml:"urls,omitempty"`
}

type pyprojectLicense struct {
	Text string `toml:"text"`
}

type pyprojectPerson struct {
	Name  string `toml:"name,omitempty"`
	Email string `toml:"email,omitempty"`
}

func toPyproject(d *Descriptor) pyproject {
	p := pyprojectProject{
		Name:           d.Name,
		Version:        d.Version,
		Description:    d.Description,
		Readme:         d.ReadmeFile,
		RequiresPython: d.PythonRequires,
		Classifiers:    d.Classifiers,
		Dependencies:   d.InstallRequires,
	}
	if d.License != "" {
		p.License = &pyprojectLicense{Text: d.License}
	}
	if d.Author != "" || d.AuthorEmail != "" {
		p.Authors = []pyprojectPerson{{Name: d.Author, Email: d.AuthorEmail}}
	}
	if d.URL != "" {
		p.URLs = map[string]string{"Homepage": d.URL}
	}
	return pyproject{Project: p}
}

// pkgInfoVersion is the core metadata version written to PKG-INFO.
const pkgInfoVersion = "2.1"

// renderPKGInfo writes core metadata headers followed by the long description.
func renderPKGInfo(d *Descriptor) []byte {
	var sb strings.Builder
	header := func(key, value string) {
		if value == "" {
			return
		}
		sb.WriteString(key)
		sb.WriteString(": ")
		sb.WriteString(value)
		sb.WriteByte('\n')
	}

	header("Metadata-Version", pkgInfoVersion)
	header("Name", d.Name)
	header("Version", d.Version)
	header("Summary", d.Description)
	header("Home-page", d.URL)
	header("Author", d.Author)
	header("Author-email", d.AuthorEmail)
	header("License", d.License)
	for _, c := range d.Classifiers {
		header("Classifier", c)
	}
	header("Requires-Python", d.PythonRequires)
	for _, r := range d.InstallRequires {
		header("Requires-Dist", r)
	}
	header("Description-Content-Type", d.LongDescriptionContentType)

	if d.LongDescription != "" {
		sb.WriteByte('\n')
		sb.WriteString(d.LongDescription)
		if !strings.HasSuffix(d.LongDescription, "\n") {
			sb.WriteByte('\n')
		}
	}
	return []byte(sb.String())
}
