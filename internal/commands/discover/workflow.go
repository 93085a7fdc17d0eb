package discover

import (
	"context"
	"errors"
	"fmt"

	"github.com/indaco/pkgmeta/internal/clix"
	"github.com/indaco/pkgmeta/internal/commands/depsync"
	"github.com/indaco/pkgmeta/internal/commands/initialize"
	"github.com/indaco/pkgmeta/internal/config"
	"github.com/indaco/pkgmeta/internal/discovery"
	"github.com/indaco/pkgmeta/internal/parser"
	"github.com/indaco/pkgmeta/internal/printer"
	"github.com/indaco/pkgmeta/internal/tui"
)

// isInteractiveFn is swapped in tests.
var isInteractiveFn = tui.IsInteractive

// Workflow offers follow-up actions after a scan.
type Workflow struct {
	prompter Prompter
	result   *discovery.Result
	env      *clix.Env
}

// NewWorkflow creates a new workflow handler.
func NewWorkflow(prompter Prompter, result *discovery.Result, env *clix.Env) *Workflow {
	return &Workflow{
		prompter: prompter,
		result:   result,
		env:      env,
	}
}

// Run executes the interactive workflow when prompts can be shown.
// It reports whether an action was taken.
func (w *Workflow) Run(ctx context.Context) (bool, error) {
	if !isInteractiveFn() {
		return false, nil
	}

	done, err := w.run(ctx)
	if errors.Is(err, tui.ErrCanceled) {
		return false, nil
	}
	return done, err
}

func (w *Workflow) run(ctx context.Context) (bool, error) {
	if w.env.Config == nil {
		return w.runInitWorkflow()
	}
	if w.result.HasMismatches() {
		return w.runMismatchWorkflow(ctx)
	}
	return false, nil
}

// runInitWorkflow offers to write a config built from the scan.
func (w *Workflow) runInitWorkflow() (bool, error) {
	path := w.configPath()

	fmt.Println()
	printer.PrintInfo(fmt.Sprintf("No %s configuration found.", path))

	primary := w.result.Primary()
	if primary == nil {
		printer.PrintFaint("Add a __version__ marker to your package, then run 'pkgmeta init'.")
		return false, nil
	}

	ok, err := w.prompter.Confirm(
		fmt.Sprintf("Create %s for %s?", path, primary.Name),
		"Uses the discovered package and manifests with default answers.",
	)
	if err != nil {
		return false, err
	}
	if !ok {
		printer.PrintFaint("You can run 'pkgmeta init' later to create the configuration.")
		return false, nil
	}

	if err := initialize.CreateConfig(path, initialize.DefaultAnswers(w.result), w.result); err != nil {
		return false, err
	}
	return true, nil
}

// runMismatchWorkflow offers to write the package version into the
// mismatched manifests.
func (w *Workflow) runMismatchWorkflow(ctx context.Context) (bool, error) {
	primary := w.result.Primary()
	targets := mismatchedTargets(w.result)
	if primary == nil || len(targets) == 0 {
		return false, nil
	}

	fmt.Println()
	printer.PrintWarning(fmt.Sprintf("Found %d version mismatch(es).", len(w.result.Mismatches)))

	ok, err := w.prompter.Confirm(
		fmt.Sprintf("Sync mismatched files to %s?", primary.Version),
		"Rewrites the version field of each mismatched manifest.",
	)
	if err != nil {
		return false, err
	}
	if !ok {
		printer.PrintFaint("Run 'pkgmeta sync' to update the configured targets.")
		return false, nil
	}

	if err := depsync.SyncTargets(ctx, w.env.FS, targets, primary.Version); err != nil {
		return false, err
	}
	return true, nil
}

func (w *Workflow) configPath() string {
	if w.env.ConfigPath != "" {
		return w.env.ConfigPath
	}
	return config.DefaultConfigFile
}

// mismatchedTargets returns the sync candidates whose version differs
// from the primary package.
func mismatchedTargets(result *discovery.Result) []parser.Target {
	mismatched := make(map[string]bool, len(result.Mismatches))
	for _, m := range result.Mismatches {
		mismatched[m.Source] = true
	}

	var targets []parser.Target
	for _, t := range result.SyncCandidates() {
		if mismatched[t.Path] {
			targets = append(targets, t)
		}
	}
	return targets
}
