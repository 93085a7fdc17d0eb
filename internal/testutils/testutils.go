// Package testutils holds helpers shared by command and config tests.
package testutils

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v3"
)

// CaptureStdout runs fn and returns everything it printed to stdout.
func CaptureStdout(fn func()) (string, error) {
	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}
	os.Stdout = w

	done := make(chan struct{})
	var buf bytes.Buffer
	var copyErr error
	go func() {
		_, copyErr = io.Copy(&buf, r)
		close(done)
	}()

	defer func() { os.Stdout = orig }()
	fn()

	_ = w.Close()
	<-done
	_ = r.Close()
	return buf.String(), copyErr
}

// BuildCLIForTests wraps commands in a root command mirroring the real one.
// load, when non-nil, receives the --config value before any command runs
// (pass clix.Env.Load).
func BuildCLIForTests(load func(configPath string) error, commands []*cli.Command) *cli.Command {
	app := &cli.Command{
		Name: "pkgmeta",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}},
			&cli.BoolFlag{Name: "no-color"},
		},
		Commands: commands,
	}
	if load != nil {
		app.Before = func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, load(cmd.String("config"))
		}
	}
	return app
}

// RunCLITest runs app with args from workDir and fails the test on error.
func RunCLITest(t *testing.T, app *cli.Command, args []string, workDir string) {
	t.Helper()
	if err := RunCLITestAllowError(t, app, args, workDir); err != nil {
		t.Fatalf("CLI run failed: %v", err)
	}
}

// RunCLITestAllowError runs app with args from workDir and returns its error.
func RunCLITestAllowError(t *testing.T, app *cli.Command, args []string, workDir string) error {
	t.Helper()
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(workDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	defer func() {
		_ = os.Chdir(origDir)
	}()

	return app.Run(context.Background(), args)
}

// WriteTempConfig writes a .pkgmeta.yaml with content in a new temp dir
// and returns its path.
func WriteTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".pkgmeta.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// WriteTempFile writes content to dir/rel, creating parent directories.
func WriteTempFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// WriteTempInitFile writes <dir>/<pkg>/__init__.py declaring version.
func WriteTempInitFile(t *testing.T, dir, pkg, version string) string {
	t.Helper()
	return WriteTempFile(t, dir, filepath.Join(pkg, "__init__.py"), "\"\"\"Package.\"\"\"\n__version__ = \""+version+"\"\n")
}

// ReadTempFile returns the content of path.
func ReadTempFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// SampleConfig is a complete config for a package named "sample_pkg".
const SampleConfig = `package: sample_pkg
name: sample-pkg
description: Sample package
readme: README.rst
author: Jane Doe
author-email: jane@example.com
url: https://example.com/sample-pkg
license: MIT License
python-requires: ">= 3.7"
classifiers:
  - "License :: OSI Approved :: MIT License"
  - "Operating System :: OS Independent"
  - "Programming Language :: Python :: 3.7"
  - "Programming Language :: Python :: 3.10"
`

// SetupProject creates a temp project with SampleConfig, an init file
// declaring version and a README, and returns its directory.
func SetupProject(t *testing.T, version string) string {
	t.Helper()
	dir := t.TempDir()
	WriteTempFile(t, dir, ".pkgmeta.yaml", SampleConfig)
	WriteTempInitFile(t, dir, "sample_pkg", version)
	WriteTempFile(t, dir, "README.rst", "Sample\n======\n")
	return dir
}
