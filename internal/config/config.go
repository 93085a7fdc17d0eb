package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/pkgmeta/internal/core"
	"github.com/indaco/pkgmeta/internal/parser"
)

// DefaultConfigFile is the config file looked up in the working directory.
const DefaultConfigFile = ".pkgmeta.yaml"

// DefaultReadme is used when the config leaves readme empty.
const DefaultReadme = "README.rst"

// Environment overrides.
const (
	EnvConfig      = "PKGMETA_CONFIG"
	EnvVersionFile = "PKGMETA_VERSION_FILE"
)

// Config is the content of .pkgmeta.yaml.
type Config struct {
	// Package is the import package directory, e.g. "python_package_template".
	Package string `yaml:"package"`

	// VersionFile holds the __version__ marker. Defaults to <package>/__init__.py.
	VersionFile string `yaml:"version-file,omitempty"`

	Name            string   `yaml:"name"`
	Description     string   `yaml:"description,omitempty"`
	Readme          string   `yaml:"readme,omitempty"`
	Author          string   `yaml:"author,omitempty"`
	AuthorEmail     string   `yaml:"author-email,omitempty"`
	URL             string   `yaml:"url,omitempty"`
	License         string   `yaml:"license,omitempty"`
	PythonRequires  string   `yaml:"python-requires,omitempty"`
	Packages        []string `yaml:"packages,omitempty"`
	Scripts         []string `yaml:"scripts,omitempty"`
	InstallRequires []string `yaml:"install-requires,omitempty"`
	Classifiers     []string `yaml:"classifiers,omitempty"`

	// Sync lists files that mirror the package version.
	Sync []parser.Target `yaml:"sync,omitempty"`
}

// VersionPath returns the file holding the __version__ marker.
func (c *Config) VersionPath() string {
	if c.VersionFile != "" {
		return c.VersionFile
	}
	return filepath.Join(c.Package, "__init__.py")
}

// ReadmePath returns the readme used as long description.
func (c *Config) ReadmePath() string {
	if c.Readme != "" {
		return c.Readme
	}
	return DefaultReadme
}

// PackageList returns the distributed packages, defaulting to Package.
func (c *Config) PackageList() []string {
	if len(c.Packages) > 0 {
		return c.Packages
	}
	if c.Package == "" {
		return []string{}
	}
	return []string{c.Package}
}

// FileOpener abstracts file opening for testability.
type FileOpener interface {
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
}

// FileWriter abstracts writing to an opened file for testability.
type FileWriter interface {
	WriteFile(file *os.File, data []byte) (int, error)
}

type osFileOpener struct{}

func (o *osFileOpener) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}

type osFileWriter struct{}

func (w *osFileWriter) WriteFile(file *os.File, data []byte) (int, error) {
	return file.Write(data)
}

type yamlMarshaler struct{}

func (m *yamlMarshaler) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// ConfigSaver writes a Config to disk.
type ConfigSaver struct {
	marshaler  core.Marshaler
	fileOpener FileOpener
	fileWriter FileWriter
}

// NewConfigSaver creates a ConfigSaver. Nil dependencies fall back to the
// production implementations.
func NewConfigSaver(marshaler core.Marshaler, opener FileOpener, writer FileWriter) *ConfigSaver {
	if marshaler == nil {
		marshaler = &yamlMarshaler{}
	}
	if opener == nil {
		opener = &osFileOpener{}
	}
	if writer == nil {
		writer = &osFileWriter{}
	}
	return &ConfigSaver{marshaler: marshaler, fileOpener: opener, fileWriter: writer}
}

// SaveTo writes cfg to path, truncating any previous content.
func (s *ConfigSaver) SaveTo(cfg *Config, path string) error {
	data, err := s.marshaler.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to %q: %w", path, err)
	}

	file, err := s.fileOpener.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, core.PermOwnerRW)
	if err != nil {
		return fmt.Errorf("failed to open config file %q: %w", path, err)
	}
	defer file.Close()

	if _, err := s.fileWriter.WriteFile(file, data); err != nil {
		return fmt.Errorf("failed to write config to %q: %w", path, err)
	}
	return nil
}

var defaultConfigSaver = NewConfigSaver(nil, nil, nil)

// LoadConfigFn and SaveConfigFn can be swapped in tests.
var (
	LoadConfigFn = loadConfig
	SaveConfigFn = func(cfg *Config, path string) error {
		return defaultConfigSaver.SaveTo(cfg, path)
	}
)

// ResolvePath returns the config path to use: explicit flag value first,
// then PKGMETA_CONFIG, then DefaultConfigFile.
func ResolvePath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv(EnvConfig); env != "" {
		clean := filepath.Clean(env)
		if !filepath.IsAbs(clean) && strings.Contains(clean, "..") {
			return "", fmt.Errorf("invalid %s: path traversal not allowed, use absolute path instead", EnvConfig)
		}
		return clean, nil
	}
	return DefaultConfigFile, nil
}

// loadConfig reads and strictly decodes the config at path.
// A missing file yields (nil, nil) so callers can fall back to flags.
func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var cfg Config
	if len(bytes.TrimSpace(data)) > 0 {
		decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("invalid config %q: %w", path, err)
		}
	}

	if env := os.Getenv(EnvVersionFile); env != "" {
		cfg.VersionFile = filepath.Clean(env)
	}

	return &cfg, nil
}

// Require returns cfg, or an error telling the user to run init when it is nil.
func Require(cfg *Config, path string) (*Config, error) {
	if cfg == nil {
		return nil, fmt.Errorf("no configuration found at %s (run 'pkgmeta init' first)", path)
	}
	return cfg, nil
}
