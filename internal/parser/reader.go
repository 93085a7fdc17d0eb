package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/pkgmeta/internal/core"
	"github.com/indaco/pkgmeta/internal/pyversion"
	"github.com/pelletier/go-toml/v2"
)

// unmarshalFunc decodes a structured document into a generic map.
type unmarshalFunc func(data []byte, v any) error

var unmarshalers = map[Format]unmarshalFunc{
	FormatJSON: json.Unmarshal,
	FormatYAML: func(data []byte, v any) error { return yaml.Unmarshal(data, v) },
	FormatTOML: toml.Unmarshal,
}

// Reader extracts versions from files.
type Reader struct {
	fs core.FileSystem
}

// NewReader creates a Reader backed by fs.
func NewReader(fs core.FileSystem) *Reader {
	return &Reader{fs: fs}
}

// Read reads the version described by t.
func (r *Reader) Read(ctx context.Context, t Target) (*Result, error) {
	t = t.Resolved()
	if t.Path == "" {
		return nil, fmt.Errorf("file path is required")
	}
	if !t.Format.IsValid() {
		return nil, fmt.Errorf("invalid format: %s", t.Format)
	}

	data, err := r.fs.ReadFile(ctx, t.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", t.Path, err)
	}

	version, err := decodeVersion(data, t)
	if err != nil {
		return nil, err
	}
	return &Result{Version: version, Target: t}, nil
}

// ReadVersion is Read returning only the version string.
func (r *Reader) ReadVersion(ctx context.Context, t Target) (string, error) {
	res, err := r.Read(ctx, t)
	if err != nil {
		return "", err
	}
	return res.Version, nil
}

func decodeVersion(data []byte, t Target) (string, error) {
	switch t.Format {
	case FormatPython:
		v, err := pyversion.Extract(string(data))
		if err != nil {
			return "", fmt.Errorf("%w in %s", err, t.Path)
		}
		return v, nil
	case FormatRaw:
		return strings.TrimSpace(string(data)), nil
	case FormatRegex:
		return matchRegex(data, t)
	default:
		return readField(data, t)
	}
}

func readField(data []byte, t Target) (string, error) {
	var obj map[string]any
	if err := unmarshalers[t.Format](data, &obj); err != nil {
		return "", fmt.Errorf("failed to parse %s in %q: %w", strings.ToUpper(t.Format.String()), t.Path, err)
	}

	value, err := getNestedValue(obj, t.Field)
	if err != nil {
		return "", fmt.Errorf("in file %q: %w", t.Path, err)
	}

	version, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("field %q in %q is not a string", t.Field, t.Path)
	}
	return version, nil
}

func compilePattern(t Target) (*regexp.Regexp, error) {
	if t.Pattern == "" {
		return nil, fmt.Errorf("pattern is required for regex format")
	}
	re, err := regexp.Compile(t.Pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern %q: %w", t.Pattern, err)
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("regex pattern %q must have a capturing group", t.Pattern)
	}
	return re, nil
}

func matchRegex(data []byte, t Target) (string, error) {
	re, err := compilePattern(t)
	if err != nil {
		return "", err
	}
	m := re.FindSubmatch(data)
	if m == nil {
		return "", fmt.Errorf("no version match found in %q for pattern %q", t.Path, t.Pattern)
	}
	return string(m[1]), nil
}
