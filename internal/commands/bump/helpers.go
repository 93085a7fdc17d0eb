package bump

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/indaco/pkgmeta/internal/clix"
	"github.com/indaco/pkgmeta/internal/commands/depsync"
	"github.com/indaco/pkgmeta/internal/printer"
	"github.com/indaco/pkgmeta/internal/pyver"
	"github.com/indaco/pkgmeta/internal/pyversion"
)

// runBump rewrites the marker with the bumped version, then syncs.
func runBump(ctx context.Context, env *clix.Env, label string, skipSync bool) error {
	cfg, err := env.RequireConfig()
	if err != nil {
		return err
	}

	path := cfg.VersionPath()
	raw, err := pyversion.ExtractFile(ctx, env.FS, path)
	if err != nil {
		return err
	}

	current, err := pyver.Parse(raw)
	if err != nil {
		return fmt.Errorf("failed to parse version %q in %s: %w", raw, path, err)
	}

	next, err := pyver.BumpByLabelFunc(current, label)
	if err != nil {
		return fmt.Errorf("failed to bump version: %w", err)
	}

	slog.Debug("bumping version", "file", path, "label", label, "from", raw, "to", next.String())
	if _, err := pyversion.ReplaceFile(ctx, env.FS, path, next.String()); err != nil {
		return fmt.Errorf("failed to save version: %w", err)
	}
	printer.PrintSuccess(fmt.Sprintf("Bumped %s version from %s to %s", label, raw, next))

	if skipSync {
		return nil
	}
	return depsync.SyncTargets(ctx, env.FS, cfg.Sync, next.String())
}
