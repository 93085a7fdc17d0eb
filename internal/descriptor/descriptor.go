// Package descriptor assembles the package descriptor handed to a Python
// packaging tool: the extracted version plus the static project metadata.
package descriptor

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/indaco/pkgmeta/internal/config"
	"github.com/indaco/pkgmeta/internal/core"
	"github.com/indaco/pkgmeta/internal/pyversion"
)

// Descriptor is the metadata record for one distribution.
// Field names follow the keywords of setuptools.setup().
type Descriptor struct {
	Name                       string   `json:"name" yaml:"name"`
	Version                    string   `json:"version" yaml:"version"`
	Description                string   `json:"description" yaml:"description"`
	LongDescription            string   `json:"long_description" yaml:"long_description"`
	LongDescriptionContentType string   `json:"long_description_content_type" yaml:"long_description_content_type"`
	Author                     string   `json:"author" yaml:"author"`
	AuthorEmail                string   `json:"author_email" yaml:"author_email"`
	URL                        string   `json:"url" yaml:"url"`
	Scripts                    []string `json:"scripts" yaml:"scripts"`
	Packages                   []string `json:"packages" yaml:"packages"`
	InstallRequires            []string `json:"install_requires" yaml:"install_requires"`
	License                    string   `json:"license" yaml:"license"`
	PythonRequires             string   `json:"python_requires" yaml:"python_requires"`
	Classifiers                []string `json:"classifiers" yaml:"classifiers"`

	// ReadmeFile is where LongDescription was read from.
	ReadmeFile string `json:"-" yaml:"-"`
}

// Build extracts the version from cfg's version file and assembles the
// descriptor. The version is resolved before anything else; when the marker
// is missing no descriptor is produced.
func Build(ctx context.Context, fs core.FileSystem, cfg *config.Config) (*Descriptor, error) {
	version, err := pyversion.ExtractFile(ctx, fs, cfg.VersionPath())
	if err != nil {
		return nil, err
	}

	readme := cfg.ReadmePath()
	long, err := fs.ReadFile(ctx, readme)
	if err != nil {
		return nil, fmt.Errorf("failed to read readme %q: %w", readme, err)
	}

	return &Descriptor{
		Name:                       cfg.Name,
		Version:                    version,
		Description:                cfg.Description,
		LongDescription:            string(long),
		LongDescriptionContentType: ContentTypeFor(readme),
		Author:                     cfg.Author,
		AuthorEmail:                cfg.AuthorEmail,
		URL:                        cfg.URL,
		Scripts:                    nonNil(cfg.Scripts),
		Packages:                   nonNil(cfg.PackageList()),
		InstallRequires:            nonNil(cfg.InstallRequires),
		License:                    cfg.License,
		PythonRequires:             cfg.PythonRequires,
		Classifiers:                nonNil(cfg.Classifiers),
		ReadmeFile:                 readme,
	}, nil
}

// ContentTypeFor maps a readme file name to its long-description content type.
func ContentTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".rst":
		return "text/x-rst"
	case ".md", ".markdown":
		return "text/markdown"
	default:
		return "text/plain"
	}
}

// nonNil returns a copy of s that encodes as an empty list rather than null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
