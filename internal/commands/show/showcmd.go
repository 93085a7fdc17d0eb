// Package show implements the "version" command, which prints the version
// declared by the package's __version__ marker.
package show

import (
	"context"
	"fmt"

	"github.com/indaco/pkgmeta/internal/clix"
	"github.com/indaco/pkgmeta/internal/pyversion"
	"github.com/urfave/cli/v3"
)

// Run returns the "version" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "version",
		Aliases:   []string{"show"},
		Usage:     "Print the package version",
		UsageText: "pkgmeta version [--file path]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Read the marker from this file instead of the configured one",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runShowCmd(ctx, cmd, env)
		},
	}
}

func runShowCmd(ctx context.Context, cmd *cli.Command, env *clix.Env) error {
	path := cmd.String("file")
	if path == "" {
		cfg, err := env.RequireConfig()
		if err != nil {
			return err
		}
		path = cfg.VersionPath()
	}

	version, err := pyversion.ExtractFile(ctx, env.FS, path)
	if err != nil {
		return err
	}
	fmt.Println(version)
	return nil
}
