// Package check implements the "check" command, which validates
// .pkgmeta.yaml against the project files it references.
package check

import (
	"context"
	"fmt"

	"github.com/indaco/pkgmeta/internal/clix"
	"github.com/indaco/pkgmeta/internal/config"
	"github.com/indaco/pkgmeta/internal/printer"
	"github.com/urfave/cli/v3"
)

// Run returns the "check" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "check",
		Aliases:   []string{"doctor"},
		Usage:     "Validate the configuration and the files it points to",
		UsageText: "pkgmeta check",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runCheckCmd(ctx, env)
		},
	}
}

func runCheckCmd(ctx context.Context, env *clix.Env) error {
	cfg, err := env.RequireConfig()
	if err != nil {
		return err
	}

	results := config.NewValidator(env.FS, cfg).Validate(ctx)
	printResults(results)

	errs := config.ErrorCount(results)
	warnings := config.WarningCount(results)
	fmt.Println()
	switch {
	case errs > 0:
		fmt.Println(printer.Error(fmt.Sprintf("%d error(s), %d warning(s)", errs, warnings)))
		return fmt.Errorf("%d check(s) failed", errs)
	case warnings > 0:
		printer.PrintWarning(fmt.Sprintf("All checks passed with %d warning(s)", warnings))
	default:
		printer.PrintSuccess("All checks passed")
	}
	return nil
}

func printResults(results []config.ValidationResult) {
	for _, r := range results {
		badge := printer.SuccessBadge()
		switch {
		case r.Warning:
			badge = printer.WarningBadge()
		case !r.Passed:
			badge = printer.ErrorBadge()
		}
		fmt.Printf("  %s %s %s\n", badge, printer.Bold(r.Category+":"), r.Message)
	}
}
