package discovery

import (
	"context"
	"errors"
	"testing"

	"github.com/indaco/pkgmeta/internal/core"
	"github.com/indaco/pkgmeta/internal/parser"
)

func TestService_Discover_FlatLayout(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/project/mypkg/__init__.py", []byte("__version__ = \"1.2.3\"\n"))
	fs.SetFile("/project/tests/__init__.py", []byte(""))
	fs.SetFile("/project/README.rst", []byte("readme"))

	result, err := NewService(fs).Discover(context.Background(), "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Packages) != 1 {
		t.Fatalf("len(Packages) = %d, want 1", len(result.Packages))
	}
	pkg := result.Primary()
	if pkg.Name != "mypkg" || pkg.Version != "1.2.3" || pkg.VersionFile != "mypkg/__init__.py" {
		t.Errorf("Primary = %+v", *pkg)
	}
}

func TestService_Discover_SrcLayout(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/project/src/mypkg/__init__.py", []byte("__version__ = '0.4.0'\n"))

	result, err := NewService(fs).Discover(context.Background(), "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.HasPackages() {
		t.Fatal("expected a package")
	}
	if got := result.Primary().VersionFile; got != "src/mypkg/__init__.py" {
		t.Errorf("VersionFile = %q", got)
	}
}

func TestService_Discover_SkipsExcludedDirs(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/project/.venv/pkg/__init__.py", []byte("__version__ = \"9.9.9\"\n"))
	fs.SetFile("/project/build/pkg/__init__.py", []byte("__version__ = \"9.9.9\"\n"))
	fs.SetFile("/project/node_modules/x/package.json", []byte(`{"version": "9.9.9"}`))
	fs.SetFile("/project/mypkg.egg-info/__init__.py", []byte("__version__ = \"9.9.9\"\n"))

	result, err := NewService(fs).Discover(context.Background(), "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.HasPackages() {
		t.Errorf("Packages = %+v, want none", result.Packages)
	}
	if len(result.Manifests) != 0 {
		t.Errorf("Manifests = %+v, want none", result.Manifests)
	}
	if result.Primary() != nil {
		t.Error("Primary should be nil")
	}
}

func TestService_Discover_Manifests(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/project/mypkg/__init__.py", []byte("__version__ = \"1.0.0\"\n"))
	fs.SetFile("/project/pyproject.toml", []byte("[project]\nname = \"mypkg\"\nversion = \"1.0.0\"\n"))
	fs.SetFile("/project/web/package.json", []byte(`{"name": "web", "version": "0.9.0"}`))
	fs.SetFile("/project/VERSION", []byte("not a version\n"))
	fs.SetFile("/project/a/b/c/Chart.yaml", []byte("version: 1.0.0\n"))

	result, err := NewService(fs).Discover(context.Background(), "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Manifests) != 2 {
		t.Fatalf("Manifests = %+v, want 2 entries", result.Manifests)
	}
	if result.Manifests[0].RelPath != "pyproject.toml" || result.Manifests[0].Field != "project.version" {
		t.Errorf("Manifests[0] = %+v", result.Manifests[0])
	}
	if result.Manifests[1].RelPath != "web/package.json" {
		t.Errorf("Manifests[1] = %+v", result.Manifests[1])
	}

	if !result.HasMismatches() {
		t.Fatal("expected a mismatch")
	}
	want := Mismatch{Source: "web/package.json", ExpectedVersion: "1.0.0", ActualVersion: "0.9.0"}
	if result.Mismatches[0] != want {
		t.Errorf("Mismatches[0] = %+v, want %+v", result.Mismatches[0], want)
	}

	targets := result.SyncCandidates()
	wantTarget := parser.Target{Path: "pyproject.toml", Format: parser.FormatTOML, Field: "project.version"}
	if len(targets) != 2 || targets[0] != wantTarget {
		t.Errorf("SyncCandidates = %+v", targets)
	}
}

func TestService_Discover_EmptyProject(t *testing.T) {
	result, err := NewService(core.NewMockFileSystem()).Discover(context.Background(), "/project")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.HasPackages() || result.HasMismatches() || len(result.SyncCandidates()) != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
}

func TestService_Discover_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewService(core.NewMockFileSystem()).Discover(ctx, "/project")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestDetectMismatches(t *testing.T) {
	manifests := []ManifestSource{
		{RelPath: "z.json", Version: "2.0.0"},
		{RelPath: "a.toml", Version: "1.0"},
		{RelPath: "m.yaml", Version: "1.0.0"},
	}

	tests := []struct {
		name     string
		expected string
		want     []string
	}{
		{"sorted by source", "1.0.0", []string{"a.toml", "z.json"}},
		{"no expected version", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectMismatches(tt.expected, manifests)
			if len(got) != len(tt.want) {
				t.Fatalf("got %+v, want sources %v", got, tt.want)
			}
			for i, src := range tt.want {
				if got[i].Source != src {
					t.Errorf("got[%d].Source = %q, want %q", i, got[i].Source, src)
				}
			}
		})
	}
}
