// Copyright 2026 The Dashkit Authors
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/davetashner/dashkit/internal/dashboard"
	"github.com/davetashner/dashkit/internal/echart"
	"github.com/davetashner/dashkit/internal/figure"
)

// Render-specific flag values.
var (
	renderFormat string
	renderOutput string
	renderSet    map[string]string
)

// renderCmd writes one dashboard figure without starting a server.
var renderCmd = &cobra.Command{
	Use:   "render <dashboard>",
	Short: "Render a dashboard figure to a file",
	Long: `Build a dashboard's figure for the given widget values and write it out.

Formats:
  html     standalone chart page (go-echarts)
  echarts  chart option JSON, as sent to the page on each update
  figure   trace and layout description JSON

Widget values not given with --set take the widget defaults.

Examples:
  dashkit render gapminder --set year=2007 -o gapminder.html
  dashkit render groundwater --set start_date=2020-01-01 --set end_date=2020-06-30 --format echarts
  dashkit render groundwater-overview --set range=6m --format figure`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "html", "output format: html, echarts, figure")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output file (default: stdout)")
	renderCmd.Flags().StringToStringVar(&renderSet, "set", nil, "widget value as key=value (repeatable)")
}

func runRender(cmd *cobra.Command, args []string) error {
	switch renderFormat {
	case "html", "echarts", "figure":
	default:
		return exitError(ExitInvalidArgs, "dashkit: unsupported format %q (supported: html, echarts, figure)", renderFormat)
	}

	cfg, ds, err := loadSelected(cmd.Context(), nil, args)
	if err != nil {
		return err
	}
	d := ds[0]

	fig, err := d.Update(cmd.Context(), d.Widget.ID, dashboard.Values(renderSet))
	if err != nil {
		if errors.Is(err, dashboard.ErrBadInput) {
			return exitError(ExitInvalidArgs, "dashkit: %v", err)
		}
		return fmt.Errorf("dashkit: %w", err)
	}

	page := echart.Page{Title: d.Heading, Theme: d.Theme, AssetsHost: cfg.AssetsHost}
	if renderOutput == "" {
		if err := writeFigure(cmd.OutOrStdout(), renderFormat, fig, page); err != nil {
			return fmt.Errorf("dashkit: render %s: %w", d.Name, err)
		}
		return nil
	}

	f, err := os.Create(renderOutput) //nolint:gosec // user-provided output path
	if err != nil {
		return exitError(ExitInvalidArgs, "dashkit: cannot create output file: %v", err)
	}
	if err := writeFigure(f, renderFormat, fig, page); err != nil {
		_ = f.Close()
		return fmt.Errorf("dashkit: render %s: %w", d.Name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("dashkit: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d points)\n", renderOutput, fig.PointCount())
	return nil
}

func writeFigure(w io.Writer, format string, fig figure.Figure, page echart.Page) error {
	switch format {
	case "html":
		return echart.RenderHTML(w, fig, page)
	case "echarts":
		option, err := echart.Options(fig, page)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", option)
		return err
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(fig)
	}
}
