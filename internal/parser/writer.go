package parser

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/pkgmeta/internal/core"
	"github.com/indaco/pkgmeta/internal/pyversion"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/sjson"
)

// Writer stores versions into files.
type Writer struct {
	fs core.FileSystem
}

// NewWriter creates a Writer backed by fs.
func NewWriter(fs core.FileSystem) *Writer {
	return &Writer{fs: fs}
}

// Write replaces the version described by t with version.
func (w *Writer) Write(ctx context.Context, t Target, version string) error {
	t = t.Resolved()
	if t.Path == "" {
		return fmt.Errorf("file path is required")
	}
	if !t.Format.IsValid() {
		return fmt.Errorf("invalid format: %s", t.Format)
	}

	if t.Format == FormatRaw {
		return w.store(ctx, t.Path, []byte(version+"\n"))
	}

	data, err := w.fs.ReadFile(ctx, t.Path)
	if err != nil {
		return fmt.Errorf("failed to read file %q: %w", t.Path, err)
	}

	updated, err := encodeVersion(data, t, version)
	if err != nil {
		return err
	}
	return w.store(ctx, t.Path, updated)
}

func (w *Writer) store(ctx context.Context, path string, data []byte) error {
	if err := w.fs.WriteFile(ctx, path, data, core.PermPublicRead); err != nil {
		return fmt.Errorf("failed to write file %q: %w", path, err)
	}
	return nil
}

func encodeVersion(data []byte, t Target, version string) ([]byte, error) {
	switch t.Format {
	case FormatPython:
		out, err := pyversion.Replace(string(data), version)
		if err != nil {
			return nil, fmt.Errorf("%w in %s", err, t.Path)
		}
		return []byte(out), nil
	case FormatJSON:
		return setJSON(data, t, version)
	case FormatRegex:
		return replaceRegex(data, t, version)
	default:
		return setStructured(data, t, version)
	}
}

// setJSON rewrites a single field with sjson so key order and layout survive.
func setJSON(data []byte, t Target, version string) ([]byte, error) {
	if t.Field == "" {
		return nil, fmt.Errorf("field is required for JSON format")
	}
	updated, err := sjson.SetBytes(data, t.Field, version)
	if err != nil {
		return nil, fmt.Errorf("failed to set version in %q: %w", t.Path, err)
	}
	if len(updated) > 0 && updated[len(updated)-1] != '\n' {
		updated = append(updated, '\n')
	}
	return updated, nil
}

func setStructured(data []byte, t Target, version string) ([]byte, error) {
	var obj map[string]any
	if err := unmarshalers[t.Format](data, &obj); err != nil {
		return nil, fmt.Errorf("failed to parse %s in %q: %w", strings.ToUpper(t.Format.String()), t.Path, err)
	}
	if obj == nil {
		obj = make(map[string]any)
	}
	if err := setNestedValue(obj, t.Field, version); err != nil {
		return nil, fmt.Errorf("in file %q: %w", t.Path, err)
	}

	var (
		out []byte
		err error
	)
	if t.Format == FormatYAML {
		out, err = yaml.Marshal(obj)
	} else {
		out, err = toml.Marshal(obj)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s for %q: %w", strings.ToUpper(t.Format.String()), t.Path, err)
	}
	return out, nil
}

// replaceRegex swaps the first capturing group of every match.
func replaceRegex(data []byte, t Target, version string) ([]byte, error) {
	re, err := compilePattern(t)
	if err != nil {
		return nil, err
	}

	matches := re.FindAllSubmatchIndex(data, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("pattern %q does not match contents of %q", t.Pattern, t.Path)
	}

	var sb strings.Builder
	last := 0
	for _, m := range matches {
		if m[2] < 0 {
			continue
		}
		sb.Write(data[last:m[2]])
		sb.WriteString(version)
		last = m[3]
	}
	sb.Write(data[last:])
	return []byte(sb.String()), nil
}
