package clix

import (
	"path/filepath"
	"testing"

	"github.com/indaco/pkgmeta/internal/config"
	"github.com/indaco/pkgmeta/internal/testutils"
)

func TestEnv_Load(t *testing.T) {
	t.Setenv(config.EnvConfig, "")

	t.Run("explicit path", func(t *testing.T) {
		path := testutils.WriteTempConfig(t, testutils.SampleConfig)
		env := NewEnv()
		if err := env.Load(path); err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		cfg, err := env.RequireConfig()
		if err != nil {
			t.Fatalf("RequireConfig() error: %v", err)
		}
		if cfg.Name != "sample-pkg" || env.ConfigPath != path {
			t.Errorf("unexpected env: %+v", env)
		}
	})

	t.Run("missing config", func(t *testing.T) {
		env := NewEnv()
		if err := env.Load(filepath.Join(t.TempDir(), "none.yaml")); err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if _, err := env.RequireConfig(); err == nil {
			t.Error("RequireConfig() should fail without config")
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		path := testutils.WriteTempConfig(t, "bogus-key: 1\n")
		if err := NewEnv().Load(path); err == nil {
			t.Error("Load() should fail on unknown keys")
		}
	})
}
