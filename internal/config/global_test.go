package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalConfigDir_Default(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, ".config", "dashkit"), GlobalConfigDir())
}

func TestGlobalConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/dashkit", GlobalConfigDir())
	assert.Equal(t, "/custom/config/dashkit/config.yaml", GlobalConfigPath())
}

func TestLoadGlobal_Missing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := LoadGlobal()
	require.NoError(t, err)
	assert.Empty(t, cfg.Host)
}

func TestLoadGlobal_Valid(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dashkit"), 0o750))
	require.NoError(t, os.WriteFile(GlobalConfigPath(), []byte("host: 127.0.0.1\nlog_format: json\n"), 0o600))

	cfg, err := LoadGlobal()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, "json", cfg.LogFormat)
}
