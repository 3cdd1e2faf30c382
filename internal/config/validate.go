package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/davetashner/dashkit/internal/dashboard"
)

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// Validate checks all fields in the config and returns all errors at once.
// It expects a resolved config (see Resolve): every enabled dashboard must
// name a registered kind and a dataset.
func Validate(cfg *Config) error {
	var errs []string

	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("log_format: invalid value %q (must be text or json)", cfg.LogFormat))
	}

	if msg := checkPort(cfg.Port); msg != "" {
		errs = append(errs, "port: "+msg)
	}

	if cfg.AssetsHost != "" && !strings.HasSuffix(cfg.AssetsHost, "/") {
		errs = append(errs, fmt.Sprintf("assets_host: must end with \"/\", got %q", cfg.AssetsHost))
	}

	names := make([]string, 0, len(cfg.Dashboards))
	for name := range cfg.Dashboards {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		d := cfg.Dashboards[name]
		prefix := "dashboards." + name

		if !namePattern.MatchString(name) {
			errs = append(errs, fmt.Sprintf("%s: invalid name (use lowercase letters, digits, '.', '_' or '-')", prefix))
		}
		if kind := d.KindName(name); dashboard.Get(kind) == nil {
			errs = append(errs, fmt.Sprintf("%s.kind: unknown kind %q (registered: %s)",
				prefix, kind, strings.Join(dashboard.List(), ", ")))
		}
		switch d.Theme {
		case "", dashboard.ThemeLight, dashboard.ThemeDark:
		default:
			errs = append(errs, fmt.Sprintf("%s.theme: invalid value %q (must be light or dark)", prefix, d.Theme))
		}
		if msg := checkPort(d.Port); msg != "" {
			errs = append(errs, fmt.Sprintf("%s.port: %s", prefix, msg))
		}

		if d.Dataset == "" {
			if d.IsEnabled() {
				errs = append(errs, fmt.Sprintf("%s.dataset: required", prefix))
			}
			continue
		}
		switch strings.ToLower(filepath.Ext(d.Dataset)) {
		case ".csv", ".xlsx":
		default:
			errs = append(errs, fmt.Sprintf("%s.dataset: unsupported file type %q (must be .csv or .xlsx)", prefix, d.Dataset))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func checkPort(p int) string {
	if p < 0 || p > 65535 {
		return fmt.Sprintf("must be between 0 and 65535, got %d", p)
	}
	return ""
}
