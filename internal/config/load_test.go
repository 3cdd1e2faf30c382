// Copyright 2026 The Dashkit Authors
// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Zero(t, cfg.Port)
	assert.Nil(t, cfg.Dashboards)
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, FileName, `
port: 9000
log_format: json
dashboards:
  gapminder:
    dataset: data/gapminder.csv
    port: 8050
  rain:
    kind: groundwater
    enabled: false
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "json", cfg.LogFormat)
	require.Contains(t, cfg.Dashboards, "gapminder")
	assert.Equal(t, "data/gapminder.csv", cfg.Dashboards["gapminder"].Dataset)
	assert.Equal(t, 8050, cfg.Dashboards["gapminder"].Port)
	assert.False(t, cfg.Dashboards["rain"].IsEnabled())
	assert.Equal(t, "groundwater", cfg.Dashboards["rain"].Kind)
}

func TestLoad_TOML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, TOMLFileName, `
host = "127.0.0.1"
assets_host = "http://localhost:9999/"

[dashboards.groundwater]
theme = "light"
heading = "Wells"
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, "http://localhost:9999/", cfg.AssetsHost)
	assert.Equal(t, "light", cfg.Dashboards["groundwater"].Theme)
	assert.Equal(t, "Wells", cfg.Dashboards["groundwater"].Heading)
}

func TestFind_PrefersYAML(t *testing.T) {
	dir := t.TempDir()
	assert.Empty(t, Find(dir))

	writeConfig(t, dir, TOMLFileName, "port = 1\n")
	assert.Equal(t, filepath.Join(dir, TOMLFileName), Find(dir))

	writeConfig(t, dir, FileName, "port: 2\n")
	assert.Equal(t, filepath.Join(dir, FileName), Find(dir))
}

func TestLoadFile_Invalid(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(writeConfig(t, dir, FileName, "{{invalid yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), FileName)

	_, err = LoadFile(writeConfig(t, dir, TOMLFileName, "port = ["))
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(dir, "dashkit.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config extension")
}

func TestWrite_RoundTrip(t *testing.T) {
	for _, format := range []Format{FormatYAML, FormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			in := &Config{
				Port: 9000,
				Dashboards: map[string]DashboardConfig{
					"gapminder": {Dataset: "gapminder.csv", Theme: "dark"},
				},
			}
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, in, format))

			var out Config
			require.NoError(t, decode(buf.Bytes(), format, &out))
			assert.Equal(t, *in, out)
		})
	}
}

func TestRawRoundTrip(t *testing.T) {
	for _, name := range []string{"cfg.yaml", "cfg.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)

			m, err := LoadRaw(path)
			require.NoError(t, err)
			assert.Empty(t, m)

			require.NoError(t, SetValue(m, "dashboards.gapminder.port", "8050"))
			require.NoError(t, SetValue(m, "custom_key", "kept"))
			require.NoError(t, WriteFile(path, m))

			cfg, err := LoadFile(path)
			require.NoError(t, err)
			assert.Equal(t, 8050, cfg.Dashboards["gapminder"].Port)

			raw, err := LoadRaw(path)
			require.NoError(t, err)
			assert.Equal(t, "kept", raw["custom_key"])
		})
	}
}
