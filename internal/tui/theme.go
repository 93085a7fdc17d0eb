// Package tui wraps the huh prompts used by interactive commands.
package tui

import (
	"slices"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	accent      = lipgloss.AdaptiveColor{Light: "#3572a5", Dark: "#ffd43b"}
	accentMuted = lipgloss.AdaptiveColor{Light: "#5b8fbf", Dark: "#c9a82c"}
	textNormal  = lipgloss.AdaptiveColor{Light: "#1f2937", Dark: "#e5e7eb"}
	textFaint   = lipgloss.AdaptiveColor{Light: "#9ca3af", Dark: "#6b7280"}
	buttonText  = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#1f2937"}
)

// pkgmetaTheme is the default form theme.
func pkgmetaTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(accentMuted)
	t.Focused.Title = t.Focused.Title.Foreground(accent).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(textFaint)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(accent)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(accent)
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(textNormal)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(accent)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(textFaint)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(buttonText).
		Background(accent).
		Bold(true).
		Padding(0, 1)
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Foreground(textNormal).
		Padding(0, 1)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Title = t.Blurred.Title.Bold(false).Foreground(textFaint)

	return t
}

// ValidThemes lists the names accepted by SetTheme.
var ValidThemes = []string{"pkgmeta", "base", "charm", "dracula", "catppuccin"}

// IsValidTheme reports whether name is a known theme.
func IsValidTheme(name string) bool {
	return slices.Contains(ValidThemes, name)
}

// GetTheme returns the named theme, or nil when unknown.
func GetTheme(name string) *huh.Theme {
	switch name {
	case "pkgmeta":
		return pkgmetaTheme()
	case "base":
		return huh.ThemeBase()
	case "charm":
		return huh.ThemeCharm()
	case "dracula":
		return huh.ThemeDracula()
	case "catppuccin":
		return huh.ThemeCatppuccin()
	default:
		return nil
	}
}

var currentTheme *huh.Theme

// SetTheme selects the theme for subsequent prompts. Unknown or empty names
// select the default theme.
func SetTheme(name string) {
	currentTheme = GetTheme(name)
}

func currentThemeOrDefault() *huh.Theme {
	if currentTheme == nil {
		return pkgmetaTheme()
	}
	return currentTheme
}
