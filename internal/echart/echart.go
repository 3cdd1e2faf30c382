// Copyright 2026 The Dashkit Authors
// SPDX-License-Identifier: MIT

// Package echart renders figure descriptions with Apache ECharts through
// go-echarts. It produces either the option object a page hands to
// echarts.setOption or a standalone HTML document.
package echart

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/davetashner/dashkit/internal/figure"
)

// DefaultAssetsHost serves echarts.min.js for rendered pages.
const DefaultAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// Page holds the presentation options that are not part of a figure.
type Page struct {
	// Title is the HTML document title.
	Title string

	// Theme is "dark" or "light". Anything else renders as light.
	Theme string

	// AssetsHost overrides DefaultAssetsHost.
	AssetsHost string

	// Width and Height are CSS sizes of the chart canvas.
	Width  string
	Height string
}

func (p Page) initialization(fig figure.Figure) opts.Initialization {
	cfg := opts.Initialization{
		PageTitle:       p.Title,
		Width:           p.Width,
		Height:          p.Height,
		Theme:           "white",
		AssetsHost:      p.AssetsHost,
		BackgroundColor: fig.Layout.PlotBackground,
	}
	if p.Theme == "dark" {
		cfg.Theme = "dark"
	}
	if cfg.PageTitle == "" {
		cfg.PageTitle = fig.Layout.Title
	}
	if cfg.AssetsHost == "" {
		cfg.AssetsHost = DefaultAssetsHost
	}
	if cfg.Width == "" {
		cfg.Width = "100%"
	}
	if cfg.Height == "" {
		cfg.Height = "600px"
	}
	return cfg
}

// Chart builds the go-echarts chart for fig. Bars, lines and scatter traces
// are overlapped on one rectangular grid; traces on the secondary y axis are
// bound to a second value axis on the right.
func Chart(fig figure.Figure, p Page) (*charts.RectChart, error) {
	var rc *charts.RectChart
	if len(fig.Traces) > 0 && fig.Traces[0].Type == figure.Scatter {
		rc = &charts.NewScatter().RectChart
	} else {
		rc = &charts.NewBar().RectChart
	}

	xAxis, err := xAxisOpts(fig.Layout.XAxis)
	if err != nil {
		return nil, err
	}
	yAxis, err := yAxisOpts(fig.Layout.YAxis)
	if err != nil {
		return nil, err
	}

	global := []charts.GlobalOpts{
		charts.WithInitializationOpts(p.initialization(fig)),
		charts.WithTitleOpts(titleOpts(fig.Layout)),
		charts.WithLegendOpts(legendOpts(fig.Layout.Legend)),
		charts.WithTooltipOpts(tooltipOpts(fig)),
		charts.WithGridOpts(gridOpts(fig.Layout)),
		charts.WithXAxisOpts(xAxis),
		charts.WithYAxisOpts(yAxis),
	}
	if s := fig.Layout.RangeSlider; s != nil && s.Visible {
		global = append(global, charts.WithDataZoomOpts(
			opts.DataZoom{Type: "slider", Start: 0, End: 100, XAxisIndex: []int{0}},
			opts.DataZoom{Type: "inside", Start: 0, End: 100, XAxisIndex: []int{0}},
		))
	}
	rc.SetGlobalOptions(global...)

	if fig.Layout.YAxis2 != nil {
		y2, err := yAxisOpts(*fig.Layout.YAxis2)
		if err != nil {
			return nil, err
		}
		y2.Position = "right"
		y2.SplitLine = &opts.SplitLine{Show: opts.Bool(false)}
		rc.ExtendYAxis(y2)
	}

	for _, tr := range fig.Traces {
		series, err := seriesChart(tr, fig.Layout)
		if err != nil {
			return nil, err
		}
		rc.Overlap(series)
	}
	return rc, nil
}

// Options returns the ECharts option object for fig as JSON.
func Options(fig figure.Figure, p Page) (json.RawMessage, error) {
	rc, err := Chart(fig, p)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(rc.JSON())
	if err != nil {
		return nil, fmt.Errorf("encoding chart options: %w", err)
	}
	return b, nil
}

// RenderHTML writes fig to w as a standalone HTML page.
func RenderHTML(w io.Writer, fig figure.Figure, p Page) error {
	rc, err := Chart(fig, p)
	if err != nil {
		return err
	}
	return rc.Render(w)
}

func seriesChart(tr figure.Trace, layout figure.Layout) (charts.Overlaper, error) {
	yIndex := 0
	if tr.YAxis == figure.YAxisSecondary {
		if layout.YAxis2 == nil {
			return nil, fmt.Errorf("trace %q: no secondary y axis in layout", tr.Name)
		}
		yIndex = 1
	}
	dates := layout.XAxis.Type == figure.AxisDate

	switch tr.Type {
	case figure.Bar:
		data := make([]opts.BarData, 0, len(tr.Points))
		for _, pt := range tr.Points {
			data = append(data, opts.BarData{Value: xy(pt, dates)})
		}
		style := opts.ItemStyle{Color: tr.Marker.Color}
		if tr.Marker.Opacity > 0 {
			style.Opacity = opts.Float(float32(tr.Marker.Opacity))
		}
		c := charts.NewBar()
		c.AddSeries(tr.Name, data,
			charts.WithBarChartOpts(opts.BarChart{YAxisIndex: yIndex}),
			charts.WithItemStyleOpts(style),
		)
		return c, nil

	case figure.Line:
		data := make([]opts.LineData, 0, len(tr.Points))
		for _, pt := range tr.Points {
			data = append(data, opts.LineData{Value: xy(pt, dates)})
		}
		c := charts.NewLine()
		c.AddSeries(tr.Name, data,
			charts.WithLineChartOpts(opts.LineChart{YAxisIndex: yIndex, ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: tr.Line.Color, Width: float32(tr.Line.Width)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: tr.Line.Color}),
		)
		return c, nil

	case figure.Scatter:
		data := make([]opts.ScatterData, 0, len(tr.Points))
		for _, pt := range tr.Points {
			data = append(data, opts.ScatterData{
				Name:       pt.Text,
				Value:      xy(pt, dates),
				SymbolSize: int(math.Round(pt.Size)),
			})
		}
		c := charts.NewScatter()
		seriesOpts := []charts.SeriesOpts{
			charts.WithScatterChartOpts(opts.ScatterChart{YAxisIndex: yIndex}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: tr.Marker.Color}),
		}
		if layout.TransitionMS > 0 {
			ms := layout.TransitionMS
			seriesOpts = append(seriesOpts, charts.WithSeriesOpts(func(s *charts.SingleSeries) {
				s.AnimationDurationUpdate = ms
			}))
		}
		c.AddSeries(tr.Name, data, seriesOpts...)
		return c, nil
	}
	return nil, fmt.Errorf("trace %q: unsupported type %q", tr.Name, tr.Type)
}

// xy returns the [x, y] pair ECharts expects for a cartesian point.
func xy(pt figure.Point, dates bool) []interface{} {
	if dates {
		return []interface{}{pt.Date.Format(time.DateOnly), pt.Y}
	}
	return []interface{}{pt.X, pt.Y}
}

func axisType(t figure.AxisType) (string, error) {
	switch t {
	case figure.AxisDate:
		return "time", nil
	case figure.AxisLog:
		return "log", nil
	case figure.AxisLinear, "":
		return "value", nil
	}
	return "", fmt.Errorf("unsupported axis type %q", t)
}

func xAxisOpts(a figure.Axis) (opts.XAxis, error) {
	typ, err := axisType(a.Type)
	if err != nil {
		return opts.XAxis{}, fmt.Errorf("x axis: %w", err)
	}
	x := opts.XAxis{
		Type:         typ,
		Name:         a.Title,
		NameLocation: "middle",
		NameGap:      30,
		AxisLine:     axisLine(a),
		SplitLine:    splitLine(a),
	}
	if a.Type == figure.AxisLog {
		x.Scale = opts.Bool(true)
	}
	return x, nil
}

func yAxisOpts(a figure.Axis) (opts.YAxis, error) {
	typ, err := axisType(a.Type)
	if err != nil {
		return opts.YAxis{}, fmt.Errorf("y axis: %w", err)
	}
	y := opts.YAxis{
		Type:         typ,
		Name:         a.Title,
		NameLocation: "middle",
		NameGap:      45,
		Scale:        opts.Bool(true),
		AxisLabel:    &opts.AxisLabel{Show: opts.Bool(true)},
		AxisLine:     axisLine(a),
		SplitLine:    splitLine(a),
	}
	return y, nil
}

func axisLine(a figure.Axis) *opts.AxisLine {
	if !a.ShowLine {
		return nil
	}
	return &opts.AxisLine{
		Show:      opts.Bool(true),
		LineStyle: &opts.LineStyle{Color: a.LineColor, Width: float32(a.LineWidth)},
	}
}

func splitLine(a figure.Axis) *opts.SplitLine {
	if a.GridColor == "" {
		return nil
	}
	return &opts.SplitLine{
		Show:      opts.Bool(true),
		LineStyle: &opts.LineStyle{Color: a.GridColor},
	}
}

func titleOpts(l figure.Layout) opts.Title {
	t := opts.Title{Title: l.Title}
	if l.TitleX > 0 {
		t.Left = percent(l.TitleX)
		if l.TitleX == 0.5 {
			t.Left = "center"
		}
	}
	return t
}

// legendOpts maps paper coordinates onto ECharts box offsets. A negative y
// places the legend below the plot.
func legendOpts(l figure.Legend) opts.Legend {
	lg := opts.Legend{Show: opts.Bool(true), Orient: "horizontal"}
	if l.Orientation == "v" {
		lg.Orient = "vertical"
	}
	switch {
	case l.X > 1:
		lg.Right = "0"
	case l.XAnchor == "center":
		lg.Left = "center"
	default:
		lg.Left = percent(l.X)
	}
	switch {
	case l.Y < 0:
		lg.Bottom = "0"
	case l.Y >= 1:
		lg.Top = "8%"
	default:
		lg.Top = percent(1 - l.Y)
	}
	return lg
}

func tooltipOpts(fig figure.Figure) opts.Tooltip {
	tt := opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}
	for _, tr := range fig.Traces {
		if tr.Type == figure.Scatter {
			tt.Trigger = "item"
			break
		}
	}
	return tt
}

// gridOpts leaves room for the legend, the range slider and the axis titles.
func gridOpts(l figure.Layout) opts.Grid {
	g := opts.Grid{Left: "8%", Right: "6%", Top: "12%", Bottom: "12%", ContainLabel: opts.Bool(true)}
	if d := l.XAxis.Domain; d[1] > 0 {
		g.Left = percent(math.Max(d[0], 0.02))
		g.Right = percent(math.Max(1-d[1], 0.02) + 0.04)
	}
	if l.YAxis2 != nil {
		g.Right = "8%"
	}
	if l.Legend.Orientation == "v" && l.Legend.X > 1 {
		g.Right = "15%"
	}
	bottom := 0.08
	if l.Legend.Y < 0 {
		bottom += 0.08
	}
	if l.RangeSlider != nil && l.RangeSlider.Visible {
		bottom += l.RangeSlider.Thickness + 0.02
	}
	g.Bottom = percent(bottom)
	return g
}

func percent(f float64) string {
	return strconv.FormatFloat(math.Round(f*1000)/10, 'f', -1, 64) + "%"
}
