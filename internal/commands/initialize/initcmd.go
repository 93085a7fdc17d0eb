// Package initialize implements the "init" command, which writes a
// .pkgmeta.yaml for the current project. Values come from flags, from
// project discovery and, on a terminal, from an interactive form.
package initialize

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/indaco/pkgmeta/internal/clix"
	"github.com/indaco/pkgmeta/internal/config"
	"github.com/indaco/pkgmeta/internal/discovery"
	"github.com/indaco/pkgmeta/internal/printer"
	"github.com/indaco/pkgmeta/internal/pyver"
	"github.com/indaco/pkgmeta/internal/tui"
	"github.com/urfave/cli/v3"
)

// DefaultPythonRequires is proposed when --python-requires is not given.
const DefaultPythonRequires = ">= 3.7"

// Answers holds the values that end up in the generated config.
type Answers struct {
	Package        string
	Name           string
	Description    string
	Author         string
	AuthorEmail    string
	URL            string
	PythonRequires string
	Template       string
}

// isInteractiveFn and promptFn are swapped in tests.
var (
	isInteractiveFn = tui.IsInteractive
	promptFn        = promptAnswers
)

// Run returns the "init" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Create a .pkgmeta.yaml for this project",
		UsageText: "pkgmeta init [--template name] [--yes] [--force]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "template",
				Aliases: []string{"t"},
				Value:   "mit",
				Usage:   "License template: " + strings.Join(TemplateNames(), ", "),
			},
			&cli.StringFlag{Name: "package", Usage: "Import package holding __version__ (default: discovered)"},
			&cli.StringFlag{Name: "name", Usage: "Distribution name (default: package name with dashes)"},
			&cli.StringFlag{Name: "description", Usage: "One-line summary"},
			&cli.StringFlag{Name: "author", Usage: "Author name"},
			&cli.StringFlag{Name: "author-email", Usage: "Author email"},
			&cli.StringFlag{Name: "url", Usage: "Project homepage"},
			&cli.StringFlag{Name: "python-requires", Value: DefaultPythonRequires, Usage: "Supported Python versions"},
			&cli.StringFlag{Name: "theme", Usage: "Form theme: " + strings.Join(tui.ValidThemes, ", ")},
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Accept defaults without prompting"},
			&cli.BoolFlag{Name: "force", Usage: "Overwrite an existing config file"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runInitCmd(ctx, cmd, env)
		},
	}
}

func runInitCmd(ctx context.Context, cmd *cli.Command, env *clix.Env) error {
	path := env.ConfigPath
	if path == "" {
		path = config.DefaultConfigFile
	}
	if !cmd.Bool("force") {
		if _, err := env.FS.Stat(ctx, path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	if theme := cmd.String("theme"); theme != "" {
		if !tui.IsValidTheme(theme) {
			return fmt.Errorf("unknown theme %q (available: %s)", theme, strings.Join(tui.ValidThemes, ", "))
		}
		tui.SetTheme(theme)
	}

	result, err := discovery.NewService(env.FS).Discover(ctx, ".")
	if err != nil {
		return fmt.Errorf("failed to scan project: %w", err)
	}

	answers := defaultAnswers(cmd, result)
	if !cmd.Bool("yes") && isInteractiveFn() {
		if err := promptFn(&answers); err != nil {
			if errors.Is(err, tui.ErrCanceled) {
				printer.PrintWarning("Initialization canceled")
				return nil
			}
			return err
		}
	}

	return CreateConfig(path, answers, result)
}

// CreateConfig validates a, writes the config to path and prints a summary.
func CreateConfig(path string, a Answers, result *discovery.Result) error {
	cfg, err := buildConfig(a, result)
	if err != nil {
		return err
	}
	if err := config.SaveConfigFn(cfg, path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	printSummary(path, cfg, result)
	return nil
}

// DefaultAnswers fills the answers `pkgmeta init --yes` would use when
// no flags are given.
func DefaultAnswers(result *discovery.Result) Answers {
	return fillDiscovered(Answers{
		PythonRequires: DefaultPythonRequires,
		Template:       "mit",
	}, result)
}

func defaultAnswers(cmd *cli.Command, result *discovery.Result) Answers {
	return fillDiscovered(Answers{
		Package:        cmd.String("package"),
		Name:           cmd.String("name"),
		Description:    cmd.String("description"),
		Author:         cmd.String("author"),
		AuthorEmail:    cmd.String("author-email"),
		URL:            cmd.String("url"),
		PythonRequires: cmd.String("python-requires"),
		Template:       cmd.String("template"),
	}, result)
}

func fillDiscovered(a Answers, result *discovery.Result) Answers {
	if a.Package == "" {
		if primary := result.Primary(); primary != nil {
			a.Package = primary.Name
		}
	}
	if a.Name == "" {
		a.Name = strings.ReplaceAll(a.Package, "_", "-")
	}
	return a
}

// buildConfig validates a and turns it into a Config.
func buildConfig(a Answers, result *discovery.Result) (*config.Config, error) {
	if a.Package == "" {
		return nil, errors.New("no package with a __version__ marker found (pass --package)")
	}
	tmpl, err := GetTemplate(a.Template)
	if err != nil {
		return nil, err
	}
	if err := validateEmail(a.AuthorEmail); err != nil {
		return nil, err
	}
	if err := validateSpecifier(a.PythonRequires); err != nil {
		return nil, err
	}

	cfg := &config.Config{
		Package:        a.Package,
		Name:           a.Name,
		Description:    a.Description,
		Readme:         config.DefaultReadme,
		Author:         a.Author,
		AuthorEmail:    a.AuthorEmail,
		URL:            a.URL,
		License:        tmpl.License,
		PythonRequires: a.PythonRequires,
		Classifiers: []string{
			tmpl.Classifier,
			"Operating System :: OS Independent",
			"Programming Language :: Python :: 3",
		},
		Sync: result.SyncCandidates(),
	}

	// src layouts keep the marker outside <package>/__init__.py.
	for _, p := range result.Packages {
		if p.Name == a.Package && p.VersionFile != filepath.Join(a.Package, "__init__.py") {
			cfg.VersionFile = p.VersionFile
			break
		}
	}
	return cfg, nil
}

func printSummary(path string, cfg *config.Config, result *discovery.Result) {
	printer.PrintSuccess("Created " + path)
	printer.KeyValue("Package", cfg.Package)
	printer.KeyValue("Version file", cfg.VersionPath())
	printer.KeyValue("License", cfg.License)

	version := ""
	for _, p := range result.Packages {
		if p.Name == cfg.Package {
			version = p.Version
		}
	}
	if version == "" {
		printer.PrintWarning(fmt.Sprintf("No __version__ marker found in %s yet", cfg.VersionPath()))
	} else {
		printer.KeyValue("Version", version)
	}

	for _, t := range cfg.Sync {
		printer.KeyValue("Sync", t.Path)
	}
	for _, m := range result.Mismatches {
		printer.PrintWarning(fmt.Sprintf("%s has version %s, expected %s (run 'pkgmeta sync')", m.Source, m.ActualVersion, m.ExpectedVersion))
	}
}

func promptAnswers(a *Answers) error {
	options := make([]huh.Option[string], 0, len(AllTemplates()))
	for _, t := range AllTemplates() {
		options = append(options, huh.NewOption(t.Description, t.Name))
	}

	return tui.RunForm(
		huh.NewGroup(
			tui.Input("Package", "Import package holding __version__", &a.Package, required("package")),
			tui.Input("Name", "Distribution name", &a.Name, required("name")),
			tui.Input("Description", "One-line summary", &a.Description, nil),
		),
		huh.NewGroup(
			tui.Input("Author", "", &a.Author, nil),
			tui.Input("Author email", "", &a.AuthorEmail, validateEmail),
			tui.Input("URL", "Project homepage", &a.URL, nil),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("License").
				Options(options...).
				Value(&a.Template),
			tui.Input("Python requires", "Version specifier, e.g. >= 3.7", &a.PythonRequires, validateSpecifier),
		),
	)
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateEmail(s string) error {
	if s == "" {
		return nil
	}
	if _, err := mail.ParseAddress(s); err != nil {
		return fmt.Errorf("invalid author email %q", s)
	}
	return nil
}

func validateSpecifier(s string) error {
	if s == "" {
		return nil
	}
	if _, err := pyver.ParseSpecifier(s); err != nil {
		return fmt.Errorf("invalid python-requires %q: %w", s, err)
	}
	return nil
}
