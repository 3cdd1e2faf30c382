// Copyright 2026 The Dashkit Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/davetashner/dashkit/internal/config"
	dashkitlog "github.com/davetashner/dashkit/internal/log"
)

// loadConfig resolves the effective configuration with precedence
// flags > project file > global file > defaults, and validates it.
// Config problems are returned as ExitConfigError.
func loadConfig(flags *config.Config) (*config.Config, error) {
	global, err := config.LoadGlobal()
	if err != nil {
		return nil, exitError(ExitConfigError, "dashkit: loading global config: %v", err)
	}
	project, err := loadProjectConfig()
	if err != nil {
		return nil, exitError(ExitConfigError, "dashkit: %v", err)
	}

	if flags == nil {
		flags = &config.Config{}
	}
	flags.LogFormat = logFormat

	cfg := config.Resolve(global, project, flags)
	if err := config.Validate(cfg); err != nil {
		return nil, exitError(ExitConfigError, "dashkit: %v", err)
	}

	// The root command set up logging from --log-format alone; a format
	// coming from a config file takes effect here.
	if logFormat == "" && cfg.LogFormat != config.DefaultLogFormat {
		if err := dashkitlog.Setup(verbose, quiet, cfg.LogFormat); err != nil {
			return nil, exitError(ExitConfigError, "dashkit: %v", err)
		}
	}
	return cfg, nil
}

// loadProjectConfig reads --config when given (it must exist), else the
// project file in the working directory, if any.
func loadProjectConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Load(".")
	}
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config file %s not found", configPath)
	}
	return config.LoadFile(configPath)
}

// projectConfigPath is where config set writes by default.
func projectConfigPath() string {
	if configPath != "" {
		return configPath
	}
	if found := config.Find("."); found != "" {
		return found
	}
	return config.FileName
}
