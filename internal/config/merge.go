package config

// Merge overlays layers in order; later layers win. Only non-zero fields
// override, and dashboards merge field by field under the same name.
// Nil layers are skipped. The inputs are not modified.
func Merge(layers ...*Config) *Config {
	merged := &Config{}
	for _, l := range layers {
		if l == nil {
			continue
		}
		if l.Host != "" {
			merged.Host = l.Host
		}
		if l.Port != 0 {
			merged.Port = l.Port
		}
		if l.LogFormat != "" {
			merged.LogFormat = l.LogFormat
		}
		if l.AssetsHost != "" {
			merged.AssetsHost = l.AssetsHost
		}
		for name, d := range l.Dashboards {
			if merged.Dashboards == nil {
				merged.Dashboards = make(map[string]DashboardConfig)
			}
			merged.Dashboards[name] = mergeDashboard(merged.Dashboards[name], d)
		}
	}
	return merged
}

func mergeDashboard(base, over DashboardConfig) DashboardConfig {
	if over.Enabled != nil {
		v := *over.Enabled
		base.Enabled = &v
	}
	if over.Kind != "" {
		base.Kind = over.Kind
	}
	if over.Dataset != "" {
		base.Dataset = over.Dataset
	}
	if over.Heading != "" {
		base.Heading = over.Heading
	}
	if over.Theme != "" {
		base.Theme = over.Theme
	}
	if over.Port != 0 {
		base.Port = over.Port
	}
	return base
}

// Resolve builds the effective configuration with precedence
// flags > project > global > Default().
func Resolve(global, project, flags *Config) *Config {
	return Merge(Default(), global, project, flags)
}
