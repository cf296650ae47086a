package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReturnsDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("pomodorio")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadParsesConfigFile(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	appDir := filepath.Join(configHome, "pomodorio")
	require.NoError(t, os.MkdirAll(appDir, 0o755))

	raw := []byte("data_dir: /tmp/pomodorio-data\nlog_level: debug\nnotifications: true\n")
	require.NoError(t, os.WriteFile(filepath.Join(appDir, configFileName), raw, 0o644))

	cfg, err := Load("pomodorio")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/pomodorio-data", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Notifications)
}

func TestLoadRejectsMalformedYaml(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	appDir := filepath.Join(configHome, "pomodorio")
	require.NoError(t, os.MkdirAll(appDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(appDir, configFileName), []byte("{not yaml"), 0o644))

	_, err := Load("pomodorio")
	assert.Error(t, err)
}

func TestResolveDataDir(t *testing.T) {
	t.Run("explicit data dir wins", func(t *testing.T) {
		cfg := Config{DataDir: "/var/lib/pomodorio"}
		dir, err := cfg.ResolveDataDir("pomodorio")
		require.NoError(t, err)
		assert.Equal(t, "/var/lib/pomodorio", dir)
	})

	t.Run("falls back to user config dir", func(t *testing.T) {
		configHome := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", configHome)

		cfg := DefaultConfig()
		dir, err := cfg.ResolveDataDir("pomodorio")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(configHome, "pomodorio"), dir)
	})
}
