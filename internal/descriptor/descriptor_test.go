package descriptor

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/indaco/pkgmeta/internal/config"
	"github.com/indaco/pkgmeta/internal/core"
	"github.com/indaco/pkgmeta/internal/pyversion"
)

func sampleConfig() *config.Config {
	return &config.Config{
		Package:        "python_package_template",
		Name:           "python-package-template",
		Description:    "Python package template",
		Author:         "phesSofthouse",
		AuthorEmail:    "philip.esmailzade@softhouse.se",
		URL:            "https://github.com/phesSofthouse/python-package-template",
		License:        "MIT License",
		PythonRequires: ">= 3.7",
		Classifiers: []string{
			"License :: OSI Approved :: MIT License",
			"Operating System :: OS Independent",
			"Programming Language :: Python :: 3.7",
			"Programming Language :: Python :: 3.8",
			"Programming Language :: Python :: 3.9",
			"Programming Language :: Python :: 3.10",
		},
	}
}

func sampleFS() *core.MockFileSystem {
	mfs := core.NewMockFileSystem()
	mfs.SetFile("python_package_template/__init__.py", []byte("\"\"\"Template.\"\"\"\n__version__ = \"1.0.3\"\n"))
	mfs.SetFile("README.rst", []byte("Python package template\n=======================\n"))
	return mfs
}

func TestBuild(t *testing.T) {
	cfg := sampleConfig()
	d, err := Build(context.Background(), sampleFS(), cfg)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if d.Version != "1.0.3" {
		t.Errorf("Version = %q, want 1.0.3", d.Version)
	}
	if d.Name != cfg.Name || d.Author != cfg.Author || d.AuthorEmail != cfg.AuthorEmail || d.URL != cfg.URL {
		t.Errorf("static metadata not copied: %+v", d)
	}
	if d.LongDescription != "Python package template\n=======================\n" {
		t.Errorf("LongDescription = %q", d.LongDescription)
	}
	if d.LongDescriptionContentType != "text/x-rst" {
		t.Errorf("LongDescriptionContentType = %q", d.LongDescriptionContentType)
	}
	if d.Scripts == nil || len(d.Scripts) != 0 {
		t.Errorf("Scripts = %#v, want empty list", d.Scripts)
	}
	if d.InstallRequires == nil || len(d.InstallRequires) != 0 {
		t.Errorf("InstallRequires = %#v, want empty list", d.InstallRequires)
	}
	if len(d.Packages) != 1 || d.Packages[0] != "python_package_template" {
		t.Errorf("Packages = %v", d.Packages)
	}
	if len(d.Classifiers) != 6 || d.Classifiers[5] != "Programming Language :: Python :: 3.10" {
		t.Errorf("Classifiers = %v", d.Classifiers)
	}

	d.Classifiers[0] = "mutated"
	if cfg.Classifiers[0] == "mutated" {
		t.Error("descriptor shares classifier storage with config")
	}
}

func TestBuild_VersionMissingIsFatal(t *testing.T) {
	mfs := core.NewMockFileSystem()
	mfs.SetFile("python_package_template/__init__.py", []byte("version = \"1.0.0\"\n"))
	// No README: the version failure must win because it is resolved first.

	d, err := Build(context.Background(), mfs, sampleConfig())
	if !errors.Is(err, pyversion.ErrVersionNotFound) {
		t.Fatalf("Build() error = %v, want ErrVersionNotFound", err)
	}
	if d != nil {
		t.Errorf("Build() returned a descriptor on failure: %+v", d)
	}
}

func TestBuild_FileErrors(t *testing.T) {
	t.Run("missing init file", func(t *testing.T) {
		_, err := Build(context.Background(), core.NewMockFileSystem(), sampleConfig())
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("error = %v, want fs.ErrNotExist", err)
		}
	})

	t.Run("missing readme", func(t *testing.T) {
		mfs := sampleFS()
		cfg := sampleConfig()
		cfg.Readme = "README.md"
		_, err := Build(context.Background(), mfs, cfg)
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("error = %v, want fs.ErrNotExist", err)
		}
	})
}

func TestBuild_Idempotent(t *testing.T) {
	mfs, cfg := sampleFS(), sampleConfig()
	a, err := Build(context.Background(), mfs, cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(context.Background(), mfs, cfg)
	if err != nil {
		t.Fatal(err)
	}
	ra, _ := Render(a, FormatJSON)
	rb, _ := Render(b, FormatJSON)
	if string(ra) != string(rb) {
		t.Error("two builds on identical input differ")
	}
}

func TestContentTypeFor(t *testing.T) {
	tests := map[string]string{
		"README.rst":      "text/x-rst",
		"README.md":       "text/markdown",
		"docs/README.MD":  "text/markdown",
		"README":          "text/plain",
		"README.txt":      "text/plain",
		"README.markdown": "text/markdown",
	}
	for in, want := range tests {
		if got := ContentTypeFor(in); got != want {
			t.Errorf("ContentTypeFor(%q) = %q, want %q", in, got, want)
		}
	}
}
