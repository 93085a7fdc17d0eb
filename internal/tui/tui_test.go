package tui

import (
	"errors"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func TestPkgmetaTheme(t *testing.T) {
	theme := pkgmetaTheme()
	if theme == nil {
		t.Fatal("pkgmetaTheme() returned nil")
	}
	if !theme.Focused.Title.GetBold() {
		t.Error("Focused.Title should be bold")
	}
	if theme.Focused.Base.GetBorderStyle() != lipgloss.RoundedBorder() {
		t.Error("Focused.Base should have a rounded border")
	}
	if theme.Blurred.Base.GetBorderStyle() != lipgloss.HiddenBorder() {
		t.Error("Blurred.Base should hide its border")
	}
	_, fr, _, fl := theme.Focused.FocusedButton.GetPadding()
	_, br, _, bl := theme.Focused.BlurredButton.GetPadding()
	if fl != bl || fr != br || fl != 1 {
		t.Errorf("button padding mismatch: focused=(%d,%d) blurred=(%d,%d)", fl, fr, bl, br)
	}
}

func TestThemes(t *testing.T) {
	for _, name := range ValidThemes {
		if !IsValidTheme(name) {
			t.Errorf("IsValidTheme(%q) = false", name)
		}
		if GetTheme(name) == nil {
			t.Errorf("GetTheme(%q) = nil", name)
		}
	}
	if IsValidTheme("neon") || GetTheme("neon") != nil {
		t.Error("unknown theme accepted")
	}

	t.Cleanup(func() { currentTheme = nil })
	SetTheme("dracula")
	if currentTheme == nil {
		t.Error("SetTheme(dracula) did not set a theme")
	}
	SetTheme("neon")
	if currentTheme != nil {
		t.Error("SetTheme(neon) should reset to default")
	}
	if currentThemeOrDefault() == nil {
		t.Error("currentThemeOrDefault() returned nil")
	}
}

func TestIsInteractive(t *testing.T) {
	orig := isTerminalFn
	t.Cleanup(func() { isTerminalFn = orig })
	for _, env := range ciEnvs {
		t.Setenv(env, "")
	}

	isTerminalFn = func() bool { return false }
	if IsInteractive() {
		t.Error("IsInteractive() = true without a terminal")
	}

	isTerminalFn = func() bool { return true }
	if !IsInteractive() {
		t.Error("IsInteractive() = false on a terminal outside CI")
	}

	t.Setenv("GITHUB_ACTIONS", "true")
	if IsInteractive() {
		t.Error("IsInteractive() = true in CI")
	}
}

func TestRunForm(t *testing.T) {
	orig := runFormFn
	t.Cleanup(func() { runFormFn = orig })

	tests := []struct {
		name    string
		runErr  error
		wantErr error
	}{
		{"success", nil, nil},
		{"aborted", huh.ErrUserAborted, ErrCanceled},
		{"other failure", errors.New("tty gone"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runFormFn = func(*huh.Form) error { return tt.runErr }
			var v string
			err := RunForm(huh.NewGroup(Input("Name", "", &v, nil)))
			switch {
			case tt.runErr == nil && err != nil:
				t.Errorf("unexpected error: %v", err)
			case tt.wantErr != nil && !errors.Is(err, tt.wantErr):
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			case tt.runErr != nil && tt.wantErr == nil && !errors.Is(err, tt.runErr):
				t.Errorf("error = %v, want wrapped %v", err, tt.runErr)
			}
		})
	}
}

func TestConfirm(t *testing.T) {
	orig := runFormFn
	t.Cleanup(func() { runFormFn = orig })
	runFormFn = func(*huh.Form) error { return nil }

	ok, err := Confirm("Overwrite?", "")
	if err != nil || ok {
		t.Errorf("Confirm() = %v, %v; want false, nil", ok, err)
	}
}

func TestKeyMap(t *testing.T) {
	km := keyMap()
	keys := km.Quit.Keys()
	if len(keys) != 2 || keys[1] != "esc" {
		t.Errorf("Quit keys = %v", keys)
	}
}
