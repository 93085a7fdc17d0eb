// Package pyversion extracts and rewrites the `__version__ = "X.Y.Z"` marker
// found in a Python package's initialization file.
package pyversion

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/indaco/pkgmeta/internal/core"
)

// ErrVersionNotFound is returned when the text has no `__version__` marker.
var ErrVersionNotFound = errors.New("version pattern not found")

// markerRegex captures the quoted run of digits and dots assigned to __version__.
// Groups: 1 = prefix up to and including the opening quote, 2 = version,
// 3 = closing quote.
var markerRegex = regexp.MustCompile(`(__version__ = ['"])([0-9.]+)(['"])`)

// Extract returns the version assigned to the first `__version__` marker in text.
func Extract(text string) (string, error) {
	m := markerRegex.FindStringSubmatch(text)
	if m == nil {
		return "", ErrVersionNotFound
	}
	return m[2], nil
}

// ExtractFile reads path through fs and extracts its version.
// Read errors are returned wrapped; errors.Is still matches the underlying cause.
func ExtractFile(ctx context.Context, fs core.FileSystem, path string) (string, error) {
	data, err := fs.ReadFile(ctx, path)
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", path, err)
	}

	version, err := Extract(string(data))
	if err != nil {
		return "", fmt.Errorf("%w in %s", err, path)
	}
	return version, nil
}

// Replace swaps the version of the first marker for version, keeping the
// original quote characters and everything else in text untouched.
func Replace(text, version string) (string, error) {
	loc := markerRegex.FindStringSubmatchIndex(text)
	if loc == nil {
		return "", ErrVersionNotFound
	}
	// loc[4]:loc[5] spans group 2.
	return text[:loc[4]] + version + text[loc[5]:], nil
}

// ReplaceFile rewrites the marker in path and returns the previous version.
func ReplaceFile(ctx context.Context, fs core.FileSystem, path, version string) (string, error) {
	data, err := fs.ReadFile(ctx, path)
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", path, err)
	}

	text := string(data)
	old, err := Extract(text)
	if err != nil {
		return "", fmt.Errorf("%w in %s", err, path)
	}

	updated, err := Replace(text, version)
	if err != nil {
		return "", fmt.Errorf("%w in %s", err, path)
	}

	if err := fs.WriteFile(ctx, path, []byte(updated), core.PermPublicRead); err != nil {
		return "", fmt.Errorf("failed to write %q: %w", path, err)
	}
	return old, nil
}
