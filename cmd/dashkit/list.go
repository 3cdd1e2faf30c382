package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/davetashner/dashkit/internal/dashboard"
	"github.com/davetashner/dashkit/internal/report"
)

var listKinds bool

// listCmd prints the configured dashboards or the registered kinds.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured dashboards",
	Long: `List the dashboards in the effective configuration with their kind,
dataset, and listen address. Datasets are not loaded; use 'dashkit validate'
for that.

With --kinds, list the registered dashboard kinds and the columns each reads.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listKinds, "kinds", false, "list registered dashboard kinds instead")
}

func runList(cmd *cobra.Command, _ []string) error {
	if listKinds {
		tbl := report.NewTable(
			report.Column{Header: "KIND"},
			report.Column{Header: "COLUMNS"},
			report.Column{Header: "DESCRIPTION"},
		)
		for _, name := range dashboard.List() {
			k := dashboard.Get(name)
			tbl.AddRow(name, strings.Join(k.Columns(), ","), k.Description())
		}
		return tbl.Render(cmd.OutOrStdout())
	}

	cfg, err := loadConfig(nil)
	if err != nil {
		return err
	}

	tbl := report.NewTable(
		report.Column{Header: "NAME"},
		report.Column{Header: "KIND"},
		report.Column{Header: "DATASET"},
		report.Column{Header: "ADDRESS"},
		report.Column{Header: "STATUS", Color: report.ColorStatus},
	)
	for _, name := range configuredNames(cfg) {
		d := cfg.Dashboards[name]
		status := report.StatusOK
		if !d.IsEnabled() {
			status = report.StatusDisabled
		}
		tbl.AddRow(name, d.KindName(name), d.Dataset, cfg.Addr(name), status)
	}
	return tbl.Render(cmd.OutOrStdout())
}
