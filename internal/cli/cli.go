package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/indaco/pkgmeta/internal/clix"
	"github.com/indaco/pkgmeta/internal/commands/bump"
	"github.com/indaco/pkgmeta/internal/commands/check"
	"github.com/indaco/pkgmeta/internal/commands/depsync"
	"github.com/indaco/pkgmeta/internal/commands/describe"
	"github.com/indaco/pkgmeta/internal/commands/discover"
	"github.com/indaco/pkgmeta/internal/commands/initialize"
	"github.com/indaco/pkgmeta/internal/commands/show"
	"github.com/indaco/pkgmeta/internal/logger"
	"github.com/indaco/pkgmeta/internal/printer"
	"github.com/indaco/pkgmeta/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

// New builds and returns the root CLI command,
// configuring all subcommands and flags for the pkgmeta cli.
// The config file is loaded once global flags are parsed and shared
// with the subcommands through env.
func New(env *clix.Env) *urfavecli.Command {
	var (
		configPath  string
		noColorFlag bool
		logLevel    string
		logFormat   string
	)

	return &urfavecli.Command{
		Name:                  "pkgmeta",
		Version:               fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                 "Package metadata from the __version__ marker",
		EnableShellCompletion: true,
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to the config file",
				DefaultText: ".pkgmeta.yaml",
				Destination: &configPath,
			},
			&urfavecli.BoolFlag{
				Name:        "no-color",
				Usage:       "Disable colored output",
				Destination: &noColorFlag,
			},
			&urfavecli.StringFlag{
				Name:        "log-level",
				Usage:       "Diagnostic log level (debug, info, warn, error)",
				Value:       logger.DefaultLevel,
				Sources:     urfavecli.EnvVars(logger.EnvLevel),
				Destination: &logLevel,
			},
			&urfavecli.StringFlag{
				Name:        "log-format",
				Usage:       "Diagnostic log format (text, json, logfmt)",
				Value:       logger.TextFormat,
				Destination: &logFormat,
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(noColorFlag)
			if err := logger.Setup(os.Stderr, logLevel, logFormat); err != nil {
				return ctx, err
			}
			return ctx, env.Load(configPath)
		},
		Commands: []*urfavecli.Command{
			initialize.Run(env),
			show.Run(env),
			describe.Run(env),
			check.Run(env),
			bump.Run(env),
			depsync.Run(env),
			discover.Run(env),
		},
	}
}
