package main

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/davetashner/dashkit/internal/config"
)

// Config command flags.
var configGlobal bool

// configCmd is the parent command for config subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and modify dashkit configuration",
	Long: `View and modify dashkit configuration.

Dashkit reads dashkit.yaml (or dashkit.toml) from the working directory, or
the file given by --config. A global config at ~/.config/dashkit/config.yaml
sits beneath it, and built-in defaults beneath that.

Note: config set rewrites the file and will not preserve comments.`,
}

// configGetCmd retrieves a configuration value by dot-notation key path.
var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get an effective configuration value by dot-notation key path.

Examples:
  dashkit config get port
  dashkit config get dashboards.gapminder.dataset
  dashkit config get dashboards.gapminder
  dashkit config get --global log_format`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

// configSetCmd sets a configuration value.
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the project config file.

Values are auto-detected as bool, int, float, or string. The file is
created if needed; use --global to write the global config instead. The
change is rejected if the resulting configuration does not validate.

Examples:
  dashkit config set port 9000
  dashkit config set dashboards.gapminder.dataset data/gapminder.csv
  dashkit config set dashboards.groundwater.enabled false
  dashkit config set --global log_format json`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

// configListCmd lists all configuration values with their source.
var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Long: `List every effective configuration value annotated with the layer it
comes from: default, global, or project.`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

func init() {
	configGetCmd.Flags().BoolVar(&configGlobal, "global", false, "read the global config only")
	configSetCmd.Flags().BoolVar(&configGlobal, "global", false, "write to the global config")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
}

// resetConfigFlags resets config command flags for testing.
func resetConfigFlags() {
	configGlobal = false
	for _, c := range []*cobra.Command{configGetCmd, configSetCmd} {
		if f := c.Flags().Lookup("global"); f != nil {
			_ = f.Value.Set("false")
			f.Changed = false
		}
	}
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	global, err := config.LoadGlobal()
	if err != nil {
		return exitError(ExitConfigError, "dashkit: loading global config: %v", err)
	}

	cfg := global
	if !configGlobal {
		project, err := loadProjectConfig()
		if err != nil {
			return exitError(ExitConfigError, "dashkit: %v", err)
		}
		cfg = config.Resolve(global, project, nil)
	}

	val, err := config.GetValue(cfg, args[0])
	if err != nil {
		return exitError(ExitInvalidArgs, "dashkit: %v", err)
	}
	return printValue(cmd, val)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	keyPath, rawValue := args[0], args[1]
	if err := config.ValidateKeyPath(keyPath); err != nil {
		return exitError(ExitInvalidArgs, "dashkit: %v", err)
	}

	target := projectConfigPath()
	if configGlobal {
		target = config.GlobalConfigPath()
	}

	data, err := config.LoadRaw(target)
	if err != nil {
		return exitError(ExitConfigError, "dashkit: loading config file: %v", err)
	}
	if err := config.SetValue(data, keyPath, rawValue); err != nil {
		return exitError(ExitInvalidArgs, "dashkit: setting %s: %v", keyPath, err)
	}

	// Decode the edited map back into a Config and validate the layered
	// result before touching the file.
	edited, err := rawToConfig(data)
	if err != nil {
		return exitError(ExitConfigError, "dashkit: invalid config after set: %v", err)
	}
	global, project, err := configLayers()
	if err != nil {
		return err
	}
	if configGlobal {
		global = edited
	} else {
		project = edited
	}
	if err := config.Validate(config.Resolve(global, project, nil)); err != nil {
		return exitError(ExitConfigError, "dashkit: %v", err)
	}

	if err := config.WriteFile(target, data); err != nil {
		return fmt.Errorf("dashkit: writing config: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", keyPath, rawValue, target)
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	global, project, err := configLayers()
	if err != nil {
		return err
	}

	type entry struct {
		value  any
		source string
	}
	seen := make(map[string]entry)
	layers := []struct {
		name string
		cfg  *config.Config
	}{
		{"default", config.Default()},
		{"global", global},
		{"project", project},
	}
	for _, l := range layers {
		m, err := config.ToMap(l.cfg)
		if err != nil {
			return err
		}
		for k, v := range config.FlattenMap(m, "") {
			seen[k] = entry{value: v, source: l.name}
		}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := cmd.OutOrStdout()
	for _, k := range keys {
		e := seen[k]
		_, _ = fmt.Fprintf(w, "%s = %v %s\n", k, e.value, formatSource(e.source))
	}
	return nil
}

func configLayers() (global, project *config.Config, err error) {
	global, err = config.LoadGlobal()
	if err != nil {
		return nil, nil, exitError(ExitConfigError, "dashkit: loading global config: %v", err)
	}
	project, err = loadProjectConfig()
	if err != nil {
		return nil, nil, exitError(ExitConfigError, "dashkit: %v", err)
	}
	return global, project, nil
}

// rawToConfig decodes a generic config map into a Config via YAML.
func rawToConfig(data map[string]any) (*config.Config, error) {
	var buf bytes.Buffer
	if err := yaml.NewEncoder(&buf).Encode(data); err != nil {
		return nil, err
	}
	var cfg config.Config
	if err := yaml.Unmarshal(buf.Bytes(), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// printValue outputs a value: scalars as plain text, maps/slices as YAML.
func printValue(cmd *cobra.Command, val any) error {
	switch v := val.(type) {
	case map[string]any, []any:
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(cmd.OutOrStdout(), string(data))
	default:
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), v)
	}
	return nil
}

var sourceColors = map[string]*color.Color{
	"default": color.New(color.Faint),
	"global":  color.New(color.FgCyan),
	"project": color.New(color.FgGreen),
}

func formatSource(source string) string {
	if c, ok := sourceColors[source]; ok {
		return c.Sprintf("(%s)", source)
	}
	return fmt.Sprintf("(%s)", source)
}
