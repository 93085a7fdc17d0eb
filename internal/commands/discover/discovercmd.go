package discover

import (
	"context"
	"fmt"

	"github.com/indaco/pkgmeta/internal/clix"
	"github.com/indaco/pkgmeta/internal/discovery"
	"github.com/urfave/cli/v3"
)

// Run returns the "discover" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:    "discover",
		Aliases: []string{"scan"},
		Usage:   "Scan for version sources and suggest sync targets",
		UsageText: `pkgmeta discover [options]

Scans the current directory for:
  - packages whose __init__.py declares __version__ (flat and src layouts)
  - manifest files (pyproject.toml, package.json, Chart.yaml, etc.)

Shows the discovered versions, mismatches against the package version and
the sync targets 'pkgmeta init' would write. On a terminal it then offers
to create the config or to sync mismatched manifests.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json, table",
				Value:   "text",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only show summary",
			},
			&cli.BoolFlag{
				Name:  "no-interactive",
				Usage: "Skip the follow-up prompts",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runDiscoverCmd(ctx, cmd, env)
		},
	}
}

func runDiscoverCmd(ctx context.Context, cmd *cli.Command, env *clix.Env) error {
	format, err := ParseOutputFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	result, err := discovery.NewService(env.FS).Discover(ctx, ".")
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	if cmd.Bool("quiet") {
		printQuietSummary(result)
	} else if err := NewFormatter(format).PrintResult(result); err != nil {
		return err
	}

	if !cmd.Bool("no-interactive") && format == FormatText {
		if _, err := NewWorkflow(NewPrompter(), result, env).Run(ctx); err != nil {
			return err
		}
	}
	return nil
}

// printQuietSummary prints a minimal summary of discovery results.
func printQuietSummary(result *discovery.Result) {
	fmt.Printf("Packages: %d | Manifests: %d", len(result.Packages), len(result.Manifests))
	if n := len(result.Mismatches); n > 0 {
		fmt.Printf(" | Mismatches: %d", n)
	}
	if primary := result.Primary(); primary != nil {
		fmt.Printf(" | Version: %s", primary.Version)
	}
	fmt.Println()
}
