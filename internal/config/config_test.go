package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("STILLPOINT_CONFIG", filepath.Join(home, "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.Journal.Enabled)
	require.False(t, cfg.UI.ShowHome)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, filepath.Join(home, ".local", "share", "stillpoint", "stillpoint.db"), cfg.Database.Path)
	require.Equal(t, filepath.Join(home, ".config", "stillpoint", "session.json"), cfg.Auth.SessionPath)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[journal]
enabled = false

[ui]
show_home = true
timezone = "UTC"
`), 0o600))
	t.Setenv("STILLPOINT_CONFIG", path)
	t.Setenv("STILLPOINT_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.False(t, cfg.Journal.Enabled)
	require.True(t, cfg.UI.ShowHome)
	require.Equal(t, "UTC", cfg.UI.Timezone)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[journal\nenabled = "), 0o600))
	t.Setenv("STILLPOINT_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	t.Setenv("STILLPOINT_CONFIG", path)

	want := Config{
		Database: DatabaseConfig{Path: "/tmp/sp.db"},
		Journal:  JournalConfig{Enabled: true},
		Auth:     AuthConfig{SessionPath: "/tmp/session.json"},
		Log:      LogConfig{Path: "/tmp/sp.log", Level: "warn"},
		UI:       UIConfig{ShowHome: true, Timezone: "UTC"},
	}
	require.NoError(t, Save(want))

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, want, got)
}
