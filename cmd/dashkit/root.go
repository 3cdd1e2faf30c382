package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	dashkitlog "github.com/davetashner/dashkit/internal/log"

	// Register the built-in dashboard kinds.
	_ "github.com/davetashner/dashkit/internal/dashboards"
)

// Global flag values.
var (
	verbose    bool
	quiet      bool
	noColor    bool
	configPath string
	logFormat  string
)

// rootCmd is the base command for dashkit.
var rootCmd = &cobra.Command{
	Use:   "dashkit",
	Short: "Serve interactive dashboards over static datasets",
	Long: `Dashkit loads static CSV or XLSX datasets once at startup and serves
single-page dashboards over them. Each page has one input widget (a date-range
picker, a range selector, or a year slider) whose changes rebuild the chart
server-side through a callback.

Dashboards are configured in dashkit.yaml (or dashkit.toml) in the working
directory; without one, the three built-in dashboards are served.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if noColor {
			color.NoColor = true
		}
		if err := dashkitlog.Setup(verbose, quiet, logFormat); err != nil {
			return exitError(ExitInvalidArgs, "dashkit: %v", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: ./dashkit.yaml or ./dashkit.toml)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json (default from config, else text)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
