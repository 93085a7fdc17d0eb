// Package clix carries the state shared between the root command and its
// subcommands once global flags are parsed.
package clix

import (
	"log/slog"

	"github.com/indaco/pkgmeta/internal/config"
	"github.com/indaco/pkgmeta/internal/core"
)

// Env is filled by the root command's Before hook.
type Env struct {
	// ConfigPath is the resolved location of .pkgmeta.yaml.
	ConfigPath string

	// Config is nil when no config file exists.
	Config *config.Config

	FS core.FileSystem
}

// NewEnv returns an Env backed by the OS filesystem.
func NewEnv() *Env {
	return &Env{FS: core.NewOSFileSystem()}
}

// Load resolves the config path from flagValue and the environment and
// loads the config file.
func (e *Env) Load(flagValue string) error {
	path, err := config.ResolvePath(flagValue)
	if err != nil {
		return err
	}
	cfg, err := config.LoadConfigFn(path)
	if err != nil {
		return err
	}
	slog.Debug("config loaded", "path", path, "found", cfg != nil)
	e.ConfigPath = path
	e.Config = cfg
	return nil
}

// RequireConfig returns the loaded config or an error suggesting `pkgmeta init`.
func (e *Env) RequireConfig() (*config.Config, error) {
	return config.Require(e.Config, e.ConfigPath)
}
