// Copyright 2026 The Dashkit Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/davetashner/dashkit/internal/report"
)

// validateCmd checks the configuration and loads every selected dataset.
var validateCmd = &cobra.Command{
	Use:   "validate [dashboard...]",
	Short: "Check configuration and datasets",
	Long: `Resolve and validate the configuration, then load every selected
dashboard's dataset and build the dashboard, reporting every failure rather
than stopping at the first.

Exit codes:
  0  configuration and all datasets are usable
  1  invalid arguments
  2  configuration error
  3  one or more datasets failed to load or lack required columns`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(nil)
	if err != nil {
		return err
	}
	names, err := selectDashboards(cfg, args)
	if err != nil {
		return err
	}

	results := loadDashboards(cmd.Context(), cfg, names)

	tbl := report.NewTable(
		report.Column{Header: "NAME"},
		report.Column{Header: "KIND"},
		report.Column{Header: "DATASET"},
		report.Column{Header: "ROWS", Align: report.AlignRight},
		report.Column{Header: "TIME", Align: report.AlignRight},
		report.Column{Header: "STATUS", Color: report.ColorStatus},
	)
	failed := 0
	for _, r := range results {
		rows, status := "-", report.StatusOK
		if r.Err != nil {
			status = report.StatusFail
			failed++
		} else {
			rows = strconv.Itoa(r.Dashboard.Rows)
		}
		tbl.AddRow(r.Name, r.Config.KindName(r.Name), r.Config.Dataset, rows,
			r.Elapsed.Round(time.Millisecond).String(), status)
	}
	if err := tbl.Render(cmd.OutOrStdout()); err != nil {
		return err
	}

	if failed > 0 {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr())
		for _, r := range results {
			if r.Err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Name, r.Err)
			}
		}
		return exitError(ExitDatasetError, "dashkit: %d of %d dashboards failed", failed, len(results))
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nvalid: %d dashboards\n", len(results))
	return nil
}
