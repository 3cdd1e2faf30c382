// Copyright 2026 The Dashkit Authors
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
)

// GlobalConfigDir returns the directory for global dashkit configuration.
// It uses $XDG_CONFIG_HOME/dashkit if set, otherwise ~/.config/dashkit.
func GlobalConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dashkit")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "dashkit")
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() string {
	return filepath.Join(GlobalConfigDir(), "config.yaml")
}

// LoadGlobal loads the global config file.
// If the file does not exist, it returns a zero-value Config and nil error.
func LoadGlobal() (*Config, error) {
	return LoadFile(GlobalConfigPath())
}
