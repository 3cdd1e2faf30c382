// Copyright 2026 The Dashkit Authors
// SPDX-License-Identifier: MIT

// Package dashboards implements the built-in dashboard kinds. Each kind
// registers itself with the dashboard package on init.
package dashboards

import (
	"github.com/davetashner/dashkit/internal/dataset"
	"github.com/davetashner/dashkit/internal/figure"
)

// Groundwater dataset columns.
const (
	ColDate          = "Date"
	ColRainfall      = "Rainfall"
	ColBorehole1     = "Groundwater_Borehole1"
	ColBorehole2     = "Groundwater_Borehole2"
	groundwaterTitle = "Groundwater Levels and Rainfall"
)

var groundwaterColumns = []string{ColDate, ColRainfall, ColBorehole1, ColBorehole2}

// GroundwaterStyle holds the options that differ between the groundwater
// dashboards.
type GroundwaterStyle struct {
	// LegendY is the legend's vertical position below the plot.
	LegendY float64

	// RangeSlider draws the overview strip under the date axis.
	RangeSlider bool

	// RangeButtons are shown as presets above the plot.
	RangeButtons []figure.RangeButton
}

// GroundwaterFigure builds the rainfall and borehole figure from the rows
// whose Date lies in r. A nil r keeps every row. The rainfall bars come first
// so the borehole lines draw over them.
func GroundwaterFigure(t *dataset.Table, r *figure.DateRange, style GroundwaterStyle) figure.Figure {
	rows := t
	if r != nil {
		rows = t.Filter(func(row dataset.Row) bool {
			d, ok := row.Date(ColDate)
			return ok && r.Contains(d)
		})
	}

	traces := []figure.Trace{
		{
			Type:   figure.Bar,
			Name:   "Rainfall",
			YAxis:  figure.YAxisSecondary,
			Marker: figure.Marker{Color: "rgba(135, 206, 250, 0.7)", Opacity: 0.5},
			Points: dateSeries(rows, ColRainfall),
		},
		{
			Type:   figure.Line,
			Name:   "Groundwater Borehole 1",
			YAxis:  figure.YAxisPrimary,
			Line:   figure.LineStyle{Color: "rgba(219, 219, 141, 1)", Width: 1.5},
			Points: dateSeries(rows, ColBorehole1),
		},
		{
			Type:   figure.Line,
			Name:   "Groundwater Borehole 2",
			YAxis:  figure.YAxisPrimary,
			Line:   figure.LineStyle{Color: "rgba(77, 77, 77, 1)", Width: 1.5},
			Points: dateSeries(rows, ColBorehole2),
		},
	}

	layout := figure.Layout{
		Title:  groundwaterTitle,
		TitleX: 0.5,
		XAxis: figure.Axis{
			Type:      figure.AxisDate,
			Domain:    [2]float64{0.05, 1},
			ShowLine:  true,
			LineColor: "black",
			LineWidth: 1,
		},
		YAxis: figure.Axis{
			Title:     "Groundwater Level (m)",
			ShowLine:  true,
			LineWidth: 2,
			LineColor: "black",
			GridColor: "rgba(211, 211, 211, 0.8)",
		},
		YAxis2: &figure.Axis{
			Title:      "Rainfall (mm)",
			Overlaying: figure.YAxisPrimary,
			Side:       "right",
			ShowLine:   true,
			LineWidth:  2,
			LineColor:  "black",
		},
		Legend:         figure.Legend{Orientation: "h", X: 0.5, XAnchor: "center", Y: style.LegendY},
		PlotBackground: "white",
	}
	if style.RangeSlider {
		layout.RangeSlider = &figure.RangeSlider{Visible: true, Thickness: 0.1}
	}
	if len(style.RangeButtons) > 0 {
		layout.RangeSelector = append([]figure.RangeButton(nil), style.RangeButtons...)
	}

	return figure.Figure{Traces: traces, Layout: layout}
}

// dateSeries returns one point per row with a parseable Date and value.
func dateSeries(rows *dataset.Table, column string) []figure.Point {
	points := make([]figure.Point, 0, rows.Len())
	for i := 0; i < rows.Len(); i++ {
		row := rows.Row(i)
		d, ok := row.Date(ColDate)
		if !ok {
			continue
		}
		v, ok := row.Float(column)
		if !ok {
			continue
		}
		points = append(points, figure.Point{Date: d, Y: v})
	}
	return points
}
