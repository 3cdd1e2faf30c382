package echart

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/dashkit/internal/figure"
)

func dualAxisFigure() figure.Figure {
	day := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	return figure.Figure{
		Traces: []figure.Trace{
			{
				Type:   figure.Bar,
				Name:   "Rainfall",
				YAxis:  figure.YAxisSecondary,
				Marker: figure.Marker{Color: "rgba(135, 206, 250, 0.7)", Opacity: 0.5},
				Points: []figure.Point{{Date: day, Y: 5}},
			},
			{
				Type:   figure.Line,
				Name:   "Groundwater Borehole 1",
				YAxis:  figure.YAxisPrimary,
				Line:   figure.LineStyle{Color: "rgba(219, 219, 141, 1)", Width: 1.5},
				Points: []figure.Point{{Date: day, Y: 10}},
			},
		},
		Layout: figure.Layout{
			Title:       "Groundwater Levels and Rainfall",
			TitleX:      0.5,
			XAxis:       figure.Axis{Type: figure.AxisDate, Domain: [2]float64{0.05, 1}},
			YAxis:       figure.Axis{Title: "Groundwater Level (m)", GridColor: "rgba(211, 211, 211, 0.8)"},
			YAxis2:      &figure.Axis{Title: "Rainfall (mm)", Overlaying: figure.YAxisPrimary, Side: "right"},
			Legend:      figure.Legend{Orientation: "h", X: 0.5, XAnchor: "center", Y: -0.5},
			RangeSlider: &figure.RangeSlider{Visible: true, Thickness: 0.1},
		},
	}
}

// option decodes the ECharts option object for fig.
func option(t *testing.T, fig figure.Figure, p Page) map[string]any {
	t.Helper()
	raw, err := Options(fig, p)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestOptions_DualAxis(t *testing.T) {
	out := option(t, dualAxisFigure(), Page{})

	series, ok := out["series"].([]any)
	require.True(t, ok)
	require.Len(t, series, 2)

	bar := series[0].(map[string]any)
	assert.Equal(t, "bar", bar["type"])
	assert.Equal(t, "Rainfall", bar["name"])
	assert.EqualValues(t, 1, bar["yAxisIndex"])
	assert.Equal(t, []any{[]any{"2020-01-01", 5.0}}, flattenValues(bar["data"]))

	line := series[1].(map[string]any)
	assert.Equal(t, "line", line["type"])
	assert.Nil(t, line["yAxisIndex"])
	assert.Equal(t, "rgba(219, 219, 141, 1)", line["lineStyle"].(map[string]any)["color"])

	yAxes := out["yAxis"].([]any)
	require.Len(t, yAxes, 2)
	assert.Equal(t, "Groundwater Level (m)", yAxes[0].(map[string]any)["name"])
	assert.Equal(t, "right", yAxes[1].(map[string]any)["position"])

	xAxes := out["xAxis"].([]any)
	assert.Equal(t, "time", xAxes[0].(map[string]any)["type"])

	zoom := out["dataZoom"].([]any)
	require.Len(t, zoom, 2)
	assert.Equal(t, "slider", zoom[0].(map[string]any)["type"])

	title := out["title"].(map[string]any)
	assert.Equal(t, "Groundwater Levels and Rainfall", title["text"])
	assert.Equal(t, "center", title["left"])

	legend := out["legend"].(map[string]any)
	assert.Equal(t, "horizontal", legend["orient"])
	assert.Equal(t, "0", legend["bottom"])
}

// flattenValues pulls the value field out of each data item.
func flattenValues(data any) []any {
	var out []any
	for _, item := range data.([]any) {
		out = append(out, item.(map[string]any)["value"])
	}
	return out
}

func TestOptions_Scatter(t *testing.T) {
	fig := figure.Figure{
		Traces: []figure.Trace{{
			Type:   figure.Scatter,
			Name:   "Asia",
			Marker: figure.Marker{Color: "#EF553B"},
			Points: []figure.Point{{X: 31656.07, Y: 82.603, Size: 55, Text: "Japan"}},
		}},
		Layout: figure.Layout{
			Title:        "Life expectancy vs. GDP per capita, 2007",
			XAxis:        figure.Axis{Title: "gdpPercap", Type: figure.AxisLog},
			YAxis:        figure.Axis{Title: "lifeExp", Type: figure.AxisLinear},
			Legend:       figure.Legend{Orientation: "v", X: 1.02, Y: 1},
			TransitionMS: 500,
		},
	}
	out := option(t, fig, Page{})

	series := out["series"].([]any)
	require.Len(t, series, 1)
	s := series[0].(map[string]any)
	assert.Equal(t, "scatter", s["type"])
	assert.EqualValues(t, 500, s["animationDurationUpdate"])

	point := s["data"].([]any)[0].(map[string]any)
	assert.Equal(t, "Japan", point["name"])
	assert.EqualValues(t, 55, point["symbolSize"])
	assert.Equal(t, []any{31656.07, 82.603}, point["value"])

	assert.Equal(t, "log", out["xAxis"].([]any)[0].(map[string]any)["type"])
	assert.Equal(t, "item", out["tooltip"].(map[string]any)["trigger"])
	assert.Nil(t, out["dataZoom"])

	legend := out["legend"].(map[string]any)
	assert.Equal(t, "vertical", legend["orient"])
	assert.Equal(t, "0", legend["right"])
}

func TestOptions_Deterministic(t *testing.T) {
	a, err := Options(dualAxisFigure(), Page{Theme: "dark"})
	require.NoError(t, err)
	b, err := Options(dualAxisFigure(), Page{Theme: "dark"})
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestOptions_EmptyFigure(t *testing.T) {
	fig := dualAxisFigure()
	for i := range fig.Traces {
		fig.Traces[i].Points = []figure.Point{}
	}
	out := option(t, fig, Page{})
	assert.Len(t, out["series"].([]any), 2)
}

func TestChart_Errors(t *testing.T) {
	t.Run("unsupported trace type", func(t *testing.T) {
		fig := figure.Figure{Traces: []figure.Trace{{Type: "pie", Name: "p"}}}
		_, err := Chart(fig, Page{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported type")
	})
	t.Run("secondary axis missing", func(t *testing.T) {
		fig := figure.Figure{Traces: []figure.Trace{{Type: figure.Bar, Name: "b", YAxis: figure.YAxisSecondary}}}
		_, err := Chart(fig, Page{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secondary y axis")
	})
	t.Run("unknown axis type", func(t *testing.T) {
		fig := figure.Figure{Layout: figure.Layout{XAxis: figure.Axis{Type: "polar"}}}
		_, err := Chart(fig, Page{})
		assert.Error(t, err)
	})
}

func TestRenderHTML(t *testing.T) {
	var buf bytes.Buffer
	err := RenderHTML(&buf, dualAxisFigure(), Page{Title: "Groundwater", Theme: "dark", AssetsHost: "http://assets.local/"})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "<title>Groundwater</title>")
	assert.Contains(t, html, "http://assets.local/echarts.min.js")
	assert.Contains(t, html, `"dark"`)
	assert.Contains(t, html, "Rainfall (mm)")
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "5%", percent(0.05))
	assert.Equal(t, "12.5%", percent(0.125))
	assert.Equal(t, "0%", percent(0))
}
