// Package depsync writes the package version into the files listed under
// `sync` in .pkgmeta.yaml and provides the "sync" command.
package depsync

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/indaco/pkgmeta/internal/clix"
	"github.com/indaco/pkgmeta/internal/core"
	"github.com/indaco/pkgmeta/internal/parser"
	"github.com/indaco/pkgmeta/internal/printer"
	"github.com/indaco/pkgmeta/internal/pyversion"
	"github.com/urfave/cli/v3"
)

// Run returns the "sync" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "sync",
		Usage:     "Write the package version to every configured sync target",
		UsageText: "pkgmeta sync",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runSyncCmd(ctx, env)
		},
	}
}

func runSyncCmd(ctx context.Context, env *clix.Env) error {
	cfg, err := env.RequireConfig()
	if err != nil {
		return err
	}

	version, err := pyversion.ExtractFile(ctx, env.FS, cfg.VersionPath())
	if err != nil {
		return err
	}

	if len(cfg.Sync) == 0 {
		printer.PrintInfo("No sync targets configured")
		return nil
	}
	return SyncTargets(ctx, env.FS, cfg.Sync, version)
}

// SyncTargets writes version into every target and prints one line per file.
// It stops at the first failing target.
func SyncTargets(ctx context.Context, fs core.FileSystem, targets []parser.Target, version string) error {
	if len(targets) == 0 {
		return nil
	}

	writer := parser.NewWriter(fs)
	fmt.Println("Sync versions")
	for _, t := range targets {
		slog.Debug("writing sync target", "path", t.Path, "format", t.Format, "version", version)
		if err := writer.Write(ctx, t, version); err != nil {
			return fmt.Errorf("failed to sync %s: %w", t.Path, err)
		}
		fmt.Printf("  %s %s %s%s\n", printer.SuccessBadge(), deriveTargetName(t.Path), printer.Faint("("+t.Path+")"), printer.Faint(": "+version))
	}
	return nil
}

// deriveTargetName extracts a display name from a file path.
// Python marker files are named after their package directory.
func deriveTargetName(path string) string {
	base := filepath.Base(path)
	switch base {
	case "__init__.py", "_version.py", "__about__.py":
		if dir := filepath.Base(filepath.Dir(path)); dir != "." && dir != string(filepath.Separator) {
			return dir
		}
	}
	return base
}
