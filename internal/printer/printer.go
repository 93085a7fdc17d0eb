// Package printer renders user-facing console output with lipgloss styles.
package printer

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	faintStyle   = lipgloss.NewStyle().Faint(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// defaultProfile is the color profile detected at startup.
var defaultProfile = lipgloss.ColorProfile()

// SetNoColor disables (or re-enables) ANSI styling for all output.
func SetNoColor(disabled bool) {
	if disabled {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(defaultProfile)
}

func Faint(text string) string   { return faintStyle.Render(text) }
func Bold(text string) string    { return boldStyle.Render(text) }
func Success(text string) string { return successStyle.Render(text) }
func Error(text string) string   { return errorStyle.Render(text) }
func Warning(text string) string { return warningStyle.Render(text) }
func Info(text string) string    { return infoStyle.Render(text) }

// Badges prefix check results.
func SuccessBadge() string { return Success("✓") }
func ErrorBadge() string   { return Error("✗") }
func WarningBadge() string { return Warning("!") }

func PrintFaint(text string)   { fmt.Println(Faint(text)) }
func PrintBold(text string)    { fmt.Println(Bold(text)) }
func PrintSuccess(text string) { fmt.Println(Success(text)) }
func PrintWarning(text string) { fmt.Println(Warning(text)) }
func PrintInfo(text string)    { fmt.Println(Info(text)) }

// errOut receives PrintError output.
var errOut io.Writer = os.Stderr

// PrintError writes text in error style to stderr.
func PrintError(text string) {
	fmt.Fprintln(errOut, Error(text))
}

// KeyValue prints an aligned "key: value" line with a faint key.
func KeyValue(key, value string) {
	fmt.Printf("  %s %s\n", Faint(fmt.Sprintf("%-16s", key+":")), value)
}
