package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("INVOICR_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "02 Jan 2006", cfg.UI.DateFormat)
	require.NotEmpty(t, cfg.Database.Path)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	t.Setenv("INVOICR_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	cfg.UI.DateFormat = "2006-01-02"
	cfg.Log.Level = "debug"
	require.NoError(t, Save(cfg))

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, "2006-01-02", got.UI.DateFormat)
	require.Equal(t, "debug", got.Log.Level)
	require.Equal(t, cfg.Database.Path, got.Database.Path)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("INVOICR_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("INVOICR_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "warn", cfg.Log.Level)
}
