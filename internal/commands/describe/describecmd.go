// Package describe implements the "describe" command, which assembles the
// package descriptor and renders it for a packaging tool.
package describe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/indaco/pkgmeta/internal/clix"
	"github.com/indaco/pkgmeta/internal/core"
	"github.com/indaco/pkgmeta/internal/descriptor"
	"github.com/indaco/pkgmeta/internal/printer"
	"github.com/urfave/cli/v3"
)

// Run returns the "describe" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "describe",
		Usage:     "Print the package descriptor (json, yaml, toml, pkg-info)",
		UsageText: "pkgmeta describe [--format json|yaml|toml|pkg-info] [--output file]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   string(descriptor.FormatJSON),
				Usage:   "Output format: " + formatNames(),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write to this file instead of stdout",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runDescribeCmd(ctx, cmd, env)
		},
	}
}

func runDescribeCmd(ctx context.Context, cmd *cli.Command, env *clix.Env) error {
	format, err := descriptor.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	cfg, err := env.RequireConfig()
	if err != nil {
		return err
	}

	d, err := descriptor.Build(ctx, env.FS, cfg)
	if err != nil {
		return err
	}

	data, err := descriptor.Render(d, format)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", format, err)
	}

	output := cmd.String("output")
	if output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}

	if dir := filepath.Dir(output); dir != "." {
		if err := env.FS.MkdirAll(ctx, dir, core.PermDir); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := env.FS.WriteFile(ctx, output, data, core.PermPublicRead); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	printer.PrintSuccess(fmt.Sprintf("Wrote %s descriptor for %s %s to %s", format, d.Name, d.Version, output))
	return nil
}

func formatNames() string {
	names := make([]string, len(descriptor.Formats))
	for i, f := range descriptor.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
