package discover

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/indaco/pkgmeta/internal/discovery"
	"github.com/indaco/pkgmeta/internal/printer"
)

// Formatter handles display of discovery results.
type Formatter struct {
	format OutputFormat
}

// NewFormatter creates a new Formatter with the specified output format.
func NewFormatter(format OutputFormat) *Formatter {
	return &Formatter{format: format}
}

// FormatResult formats the discovery result for display.
func (f *Formatter) FormatResult(result *discovery.Result) (string, error) {
	switch f.format {
	case FormatJSON:
		return f.formatJSON(result)
	case FormatTable:
		return f.formatTable(result), nil
	default:
		return f.formatText(result), nil
	}
}

// PrintResult prints the formatted result to stdout.
func (f *Formatter) PrintResult(result *discovery.Result) error {
	out, err := f.FormatResult(result)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func (f *Formatter) formatText(result *discovery.Result) string {
	var sb strings.Builder
	rule := printer.Faint(strings.Repeat("-", 70))

	fmt.Fprintf(&sb, "%s\n%s\n", printer.Info("Discovery Results"), rule)

	lines := make([]string, 0, len(result.Packages))
	for _, p := range result.Packages {
		lines = append(lines, fmt.Sprintf("%s %s %s", printer.SuccessBadge(), p.VersionFile, printer.Faint("("+p.Version+")")))
	}
	writeSection(&sb, printer.Info("Packages (__version__):"), lines)

	lines = lines[:0]
	for _, m := range result.Manifests {
		lines = append(lines, fmt.Sprintf("%s %s %s", printer.SuccessBadge(), m.RelPath, printer.Faint("("+m.Description+": "+m.Version+")")))
	}
	writeSection(&sb, printer.Info("Manifest Files:"), lines)

	lines = lines[:0]
	for _, m := range result.Mismatches {
		lines = append(lines, fmt.Sprintf("%s %s: expected %s, found %s", printer.WarningBadge(), m.Source, m.ExpectedVersion, m.ActualVersion))
	}
	writeSection(&sb, printer.Warning("Version Mismatches:"), lines)

	lines = lines[:0]
	for _, c := range result.SyncCandidates() {
		lines = append(lines, fmt.Sprintf("- %s %s", c.Path, printer.Faint("("+strings.TrimSpace(c.Format.String()+" "+c.Field)+")")))
	}
	writeSection(&sb, printer.Info("Sync Candidates:"), lines)

	fmt.Fprintf(&sb, "%s\n%s\n", rule, f.formatSummary(result))
	return sb.String()
}

// writeSection writes title and indented lines followed by a blank line.
// Empty sections are skipped.
func writeSection(sb *strings.Builder, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	sb.WriteString(title + "\n")
	for _, l := range lines {
		sb.WriteString("  " + l + "\n")
	}
	sb.WriteString("\n")
}

func (f *Formatter) formatTable(result *discovery.Result) string {
	var sb strings.Builder

	if result.HasPackages() {
		sb.WriteString("Packages:\n")
		fmt.Fprintf(&sb, "%-35s %-15s %-20s\n", "PATH", "VERSION", "PACKAGE")
		sb.WriteString(strings.Repeat("-", 70) + "\n")
		for _, p := range result.Packages {
			fmt.Fprintf(&sb, "%-35s %-15s %-20s\n", p.VersionFile, p.Version, p.Name)
		}
		sb.WriteString("\n")
	}

	if len(result.Manifests) > 0 {
		sb.WriteString("Manifest Files:\n")
		fmt.Fprintf(&sb, "%-35s %-15s %-25s\n", "PATH", "VERSION", "TYPE")
		sb.WriteString(strings.Repeat("-", 75) + "\n")
		for _, m := range result.Manifests {
			fmt.Fprintf(&sb, "%-35s %-15s %-25s\n", m.RelPath, m.Version, m.Description)
		}
		sb.WriteString("\n")
	}

	if result.HasMismatches() {
		sb.WriteString("Version Mismatches:\n")
		fmt.Fprintf(&sb, "%-35s %-15s %-15s\n", "SOURCE", "EXPECTED", "ACTUAL")
		sb.WriteString(strings.Repeat("-", 65) + "\n")
		for _, m := range result.Mismatches {
			fmt.Fprintf(&sb, "%-35s %-15s %-15s\n", m.Source, m.ExpectedVersion, m.ActualVersion)
		}
		sb.WriteString("\n")
	}

	sb.WriteString(f.formatSummary(result))
	sb.WriteString("\n")
	return sb.String()
}

type jsonPackage struct {
	Name        string `json:"name"`
	VersionFile string `json:"version_file"`
	Version     string `json:"version"`
}

type jsonManifest struct {
	Path        string `json:"path"`
	Version     string `json:"version"`
	Format      string `json:"format"`
	Field       string `json:"field,omitempty"`
	Description string `json:"description"`
}

type jsonMismatch struct {
	Source   string `json:"source"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

type jsonOutput struct {
	Packages   []jsonPackage  `json:"packages"`
	Manifests  []jsonManifest `json:"manifests"`
	Mismatches []jsonMismatch `json:"mismatches"`
	Summary    struct {
		PackageCount   int    `json:"package_count"`
		ManifestCount  int    `json:"manifest_count"`
		MismatchCount  int    `json:"mismatch_count"`
		PrimaryVersion string `json:"primary_version"`
	} `json:"summary"`
}

func (f *Formatter) formatJSON(result *discovery.Result) (string, error) {
	output := jsonOutput{
		Packages:   make([]jsonPackage, len(result.Packages)),
		Manifests:  make([]jsonManifest, len(result.Manifests)),
		Mismatches: make([]jsonMismatch, len(result.Mismatches)),
	}
	for i, p := range result.Packages {
		output.Packages[i] = jsonPackage{Name: p.Name, VersionFile: p.VersionFile, Version: p.Version}
	}
	for i, m := range result.Manifests {
		output.Manifests[i] = jsonManifest{
			Path:        m.RelPath,
			Version:     m.Version,
			Format:      m.Format.String(),
			Field:       m.Field,
			Description: m.Description,
		}
	}
	for i, m := range result.Mismatches {
		output.Mismatches[i] = jsonMismatch{Source: m.Source, Expected: m.ExpectedVersion, Actual: m.ActualVersion}
	}

	output.Summary.PackageCount = len(result.Packages)
	output.Summary.ManifestCount = len(result.Manifests)
	output.Summary.MismatchCount = len(result.Mismatches)
	if primary := result.Primary(); primary != nil {
		output.Summary.PrimaryVersion = primary.Version
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format JSON: %w", err)
	}
	return string(data) + "\n", nil
}

// formatSummary returns a summary line for the result.
func (f *Formatter) formatSummary(result *discovery.Result) string {
	var parts []string
	if n := len(result.Packages); n > 0 {
		parts = append(parts, fmt.Sprintf("%d package(s)", n))
	}
	if n := len(result.Manifests); n > 0 {
		parts = append(parts, fmt.Sprintf("%d manifest(s)", n))
	}
	if n := len(result.Mismatches); n > 0 {
		parts = append(parts, printer.Warning(fmt.Sprintf("%d mismatch(es)", n)))
	}

	if len(parts) == 0 {
		return printer.Faint("No version sources found")
	}

	summary := "Found: " + strings.Join(parts, ", ")
	if primary := result.Primary(); primary != nil {
		summary += fmt.Sprintf(" | Primary version: %s", printer.Bold(primary.Version))
	}
	return summary
}
