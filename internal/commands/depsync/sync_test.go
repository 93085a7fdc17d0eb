package depsync

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/indaco/pkgmeta/internal/clix"
	"github.com/indaco/pkgmeta/internal/core"
	"github.com/indaco/pkgmeta/internal/parser"
	"github.com/indaco/pkgmeta/internal/printer"
	"github.com/indaco/pkgmeta/internal/testutils"
	"github.com/urfave/cli/v3"
)

func init() {
	printer.SetNoColor(true)
}

func TestSyncTargets(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("package.json", []byte(`{"name": "web", "version": "0.1.0"}`))
	fs.SetFile("Chart.yaml", []byte("name: chart\nversion: 0.1.0\n"))
	fs.SetFile("other/_version.py", []byte("__version__ = '0.1.0'\n"))

	targets := []parser.Target{
		{Path: "package.json"},
		{Path: "Chart.yaml"},
		{Path: "other/_version.py"},
	}

	out, err := testutils.CaptureStdout(func() {
		if err := SyncTargets(context.Background(), fs, targets, "1.2.0"); err != nil {
			t.Errorf("SyncTargets: %v", err)
		}
	})
	if err != nil {
		t.Fatalf("capture: %v", err)
	}

	reader := parser.NewReader(fs)
	for _, tgt := range targets {
		got, err := reader.ReadVersion(context.Background(), tgt)
		if err != nil || got != "1.2.0" {
			t.Errorf("%s = %q, %v; want 1.2.0", tgt.Path, got, err)
		}
	}
	for _, want := range []string{"Sync versions", "package.json", "Chart.yaml", "other (other/_version.py)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if data, _ := fs.GetFile("other/_version.py"); string(data) != "__version__ = '1.2.0'\n" {
		t.Errorf("quote style not preserved: %q", data)
	}
}

func TestSyncTargets_StopsOnError(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("b.json", []byte(`{"version": "0.1.0"}`))

	targets := []parser.Target{{Path: "missing.json"}, {Path: "b.json"}}
	_, _ = testutils.CaptureStdout(func() {
		err := SyncTargets(context.Background(), fs, targets, "1.0.0")
		if err == nil || !strings.Contains(err.Error(), "failed to sync missing.json") {
			t.Errorf("expected sync error, got %v", err)
		}
	})
	if data, _ := fs.GetFile("b.json"); string(data) != `{"version": "0.1.0"}` {
		t.Errorf("b.json should be untouched, got %s", data)
	}
}

func TestSyncTargets_Empty(t *testing.T) {
	out, _ := testutils.CaptureStdout(func() {
		if err := SyncTargets(context.Background(), core.NewMockFileSystem(), nil, "1.0.0"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
	if out != "" {
		t.Errorf("expected no output, got %q", out)
	}
}

func TestDeriveTargetName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"package.json", "package.json"},
		{"web/package.json", "package.json"},
		{"pkg/__init__.py", "pkg"},
		{"src/pkg/_version.py", "pkg"},
		{"__init__.py", "__init__.py"},
	}
	for _, tt := range tests {
		if got := deriveTargetName(tt.path); got != tt.want {
			t.Errorf("deriveTargetName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestCLI_SyncCommand(t *testing.T) {
	dir := testutils.SetupProject(t, "2.0.1")
	testutils.WriteTempFile(t, dir, "pyproject.toml", "[project]\nname = \"sample-pkg\"\nversion = \"0.0.1\"\n")
	testutils.WriteTempFile(t, dir, ".pkgmeta.yaml", testutils.SampleConfig+"sync:\n  - path: pyproject.toml\n")

	env := clix.NewEnv()
	app := testutils.BuildCLIForTests(env.Load, []*cli.Command{Run(env)})

	_, _ = testutils.CaptureStdout(func() {
		testutils.RunCLITest(t, app, []string{"pkgmeta", "sync"}, dir)
	})

	got := testutils.ReadTempFile(t, filepath.Join(dir, "pyproject.toml"))
	if !strings.Contains(got, `version = '2.0.1'`) && !strings.Contains(got, `version = "2.0.1"`) {
		t.Errorf("pyproject.toml not synced:\n%s", got)
	}
}

func TestCLI_SyncCommand_NoConfig(t *testing.T) {
	env := clix.NewEnv()
	app := testutils.BuildCLIForTests(env.Load, []*cli.Command{Run(env)})

	err := testutils.RunCLITestAllowError(t, app, []string{"pkgmeta", "sync"}, t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "pkgmeta init") {
		t.Errorf("expected missing config error, got %v", err)
	}
}

func TestCLI_SyncCommand_VersionMissing(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteTempFile(t, dir, ".pkgmeta.yaml", testutils.SampleConfig)
	testutils.WriteTempFile(t, dir, "sample_pkg/__init__.py", "version = \"1.0.0\"\n")

	env := clix.NewEnv()
	app := testutils.BuildCLIForTests(env.Load, []*cli.Command{Run(env)})

	_, _ = testutils.CaptureStdout(func() {
		err := testutils.RunCLITestAllowError(t, app, []string{"pkgmeta", "sync"}, dir)
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "version pattern not found in") {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
