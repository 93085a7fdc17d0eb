package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"
)

// ErrCanceled is returned when the user quits a prompt.
var ErrCanceled = errors.New("canceled by user")

// keyMap extends the default bindings so esc also quits.
func keyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	)
	return km
}

// runFormFn is swapped in tests.
var runFormFn = func(f *huh.Form) error {
	return f.Run()
}

// RunForm shows one page per group with the current theme.
func RunForm(groups ...*huh.Group) error {
	form := huh.NewForm(groups...).
		WithTheme(currentThemeOrDefault()).
		WithKeyMap(keyMap())

	if err := runFormFn(form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrCanceled
		}
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}

// Confirm asks a yes/no question.
func Confirm(title, description string) (bool, error) {
	var ok bool
	err := RunForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Description(description).
			Affirmative("Yes").
			Negative("No").
			Value(&ok),
	))
	return ok, err
}

// Input asks for a single line of text, prefilled with *value.
func Input(title, description string, value *string, validate func(string) error) *huh.Input {
	in := huh.NewInput().
		Title(title).
		Description(description).
		Value(value)
	if validate != nil {
		in = in.Validate(validate)
	}
	return in
}
