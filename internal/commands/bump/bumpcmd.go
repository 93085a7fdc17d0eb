// Package bump implements the "bump" command, which increments the version
// in the package's __version__ marker and propagates it to sync targets.
package bump

import (
	"context"

	"github.com/indaco/pkgmeta/internal/clix"
	"github.com/urfave/cli/v3"
)

// Run returns the "bump" parent command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "bump",
		Usage:     "Bump the package version (patch, minor, major)",
		UsageText: "pkgmeta bump <subcommand> [--no-sync]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-sync",
				Usage: "Do not update the configured sync targets",
			},
		},
		Commands: []*cli.Command{
			labelCmd(env, "patch", "Increment patch version"),
			labelCmd(env, "minor", "Increment minor version and reset patch"),
			labelCmd(env, "major", "Increment major version and reset minor and patch"),
		},
	}
}

func labelCmd(env *clix.Env, label, usage string) *cli.Command {
	return &cli.Command{
		Name:      label,
		Usage:     usage,
		UsageText: "pkgmeta bump " + label,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runBump(ctx, env, label, cmd.Bool("no-sync"))
		},
	}
}
