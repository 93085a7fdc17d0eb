// Package core holds the small abstractions shared by every pkgmeta package:
// filesystem access, marshaling and file permission constants.
package core

import (
	"context"
	"os"
)

// File permission constants.
const (
	// PermOwnerRW is used for the config file.
	PermOwnerRW os.FileMode = 0o600

	// PermPublicRead is used for version files, sync targets and generated
	// descriptors.
	PermPublicRead os.FileMode = 0o644

	// PermDir is used when creating output directories.
	PermDir os.FileMode = 0o755
)

// FileSystem abstracts file access so commands can be tested without touching disk.
type FileSystem interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte, perm os.FileMode) error
	Stat(ctx context.Context, path string) (os.FileInfo, error)
	MkdirAll(ctx context.Context, path string, perm os.FileMode) error
	ReadDir(ctx context.Context, path string) ([]os.DirEntry, error)
}

// Marshaler converts a value into its serialized form.
type Marshaler interface {
	Marshal(v any) ([]byte, error)
}
