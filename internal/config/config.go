// Copyright 2026 The Dashkit Authors
// SPDX-License-Identifier: MIT

// Package config handles dashkit.yaml and dashkit.toml configuration files.
package config

import (
	"net"
	"sort"
	"strconv"
)

// Config represents the contents of a dashkit config file.
type Config struct {
	Host       string                     `yaml:"host,omitempty" toml:"host,omitempty"`
	Port       int                        `yaml:"port,omitempty" toml:"port,omitempty"`
	LogFormat  string                     `yaml:"log_format,omitempty" toml:"log_format,omitempty"`
	AssetsHost string                     `yaml:"assets_host,omitempty" toml:"assets_host,omitempty"`
	Dashboards map[string]DashboardConfig `yaml:"dashboards,omitempty" toml:"dashboards,omitempty"`
}

// DashboardConfig holds per-dashboard settings. The map key in
// Config.Dashboards is the dashboard name and URL slug.
type DashboardConfig struct {
	Enabled *bool `yaml:"enabled,omitempty" toml:"enabled,omitempty"`

	// Kind defaults to the dashboard name.
	Kind    string `yaml:"kind,omitempty" toml:"kind,omitempty"`
	Dataset string `yaml:"dataset,omitempty" toml:"dataset,omitempty"`
	Heading string `yaml:"heading,omitempty" toml:"heading,omitempty"`
	Theme   string `yaml:"theme,omitempty" toml:"theme,omitempty"`

	// Port serves the dashboard on its own listener instead of Config.Port.
	Port int `yaml:"port,omitempty" toml:"port,omitempty"`
}

// FileName is the expected config file name in the working directory.
// TOMLFileName is looked for when FileName is absent.
const (
	FileName     = "dashkit.yaml"
	TOMLFileName = "dashkit.toml"
)

// Defaults applied beneath every config file.
const (
	DefaultHost      = "0.0.0.0"
	DefaultPort      = 8080
	DefaultLogFormat = "text"
)

// Default returns the built-in configuration: the three bundled dashboards
// on one listener, reading their datasets from the working directory.
func Default() *Config {
	return &Config{
		Host:      DefaultHost,
		Port:      DefaultPort,
		LogFormat: DefaultLogFormat,
		Dashboards: map[string]DashboardConfig{
			"groundwater":          {Kind: "groundwater", Dataset: "environmental_data.csv"},
			"groundwater-overview": {Kind: "groundwater-overview", Dataset: "environmental_data.csv"},
			"gapminder":            {Kind: "gapminder", Dataset: "gapminder.csv"},
		},
	}
}

// IsEnabled reports whether the dashboard should be served. Dashboards are
// enabled unless explicitly disabled.
func (d DashboardConfig) IsEnabled() bool {
	return d.Enabled == nil || *d.Enabled
}

// KindName returns the configured kind, falling back to the dashboard name.
func (d DashboardConfig) KindName(name string) string {
	if d.Kind != "" {
		return d.Kind
	}
	return name
}

// EnabledDashboards returns the names of enabled dashboards, sorted.
func (c *Config) EnabledDashboards() []string {
	names := make([]string, 0, len(c.Dashboards))
	for name, d := range c.Dashboards {
		if d.IsEnabled() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Addr returns the listen address of the named dashboard.
func (c *Config) Addr(name string) string {
	port := c.Port
	if d, ok := c.Dashboards[name]; ok && d.Port != 0 {
		port = d.Port
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(port))
}
