package dashboards

import (
	"context"
	"fmt"
	"math"

	"github.com/davetashner/dashkit/internal/dashboard"
	"github.com/davetashner/dashkit/internal/dataset"
	"github.com/davetashner/dashkit/internal/figure"
)

// Gapminder dataset columns.
const (
	ColYear      = "year"
	ColGDP       = "gdpPercap"
	ColLifeExp   = "lifeExp"
	ColPop       = "pop"
	ColContinent = "continent"
	ColCountry   = "country"
)

// MaxMarkerSize is the marker size of the most populous country shown.
const MaxMarkerSize = 55

var gapminderColumns = []string{ColYear, ColGDP, ColLifeExp, ColPop, ColContinent, ColCountry}

// qualitativePalette colors continents in order of first appearance.
var qualitativePalette = []string{
	"#636efa", "#EF553B", "#00cc96", "#ab63fa", "#FFA15A",
	"#19d3f3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

// Gapminder is the life-expectancy versus GDP dashboard driven by a year
// slider.
type Gapminder struct{}

// Compile-time interface check.
var _ dashboard.Kind = (*Gapminder)(nil)

// Name returns the kind name.
func (k *Gapminder) Name() string { return "gapminder" }

// Description returns a one-line summary.
func (k *Gapminder) Description() string {
	return "Life expectancy against GDP per capita, sized by population, one year at a time"
}

// Columns lists the dataset columns read by the dashboard.
func (k *Gapminder) Columns() []string { return append([]string(nil), gapminderColumns...) }

// Build returns the dashboard with its year-slider binding registered. The
// slider starts at the earliest year.
func (k *Gapminder) Build(spec dashboard.Spec, t *dataset.Table) (*dashboard.Dashboard, error) {
	if err := t.Require(k.Columns()...); err != nil {
		return nil, err
	}
	years, err := t.DistinctInts(ColYear)
	if err != nil {
		return nil, err
	}

	d := newDashboard(spec, k.Name(), "Life Expectancy and GDP per Capita", dashboard.ThemeLight, t)
	d.GraphID = "graph-with-slider"
	d.Widget = dashboard.Widget{
		ID:    "year-slider",
		Kind:  dashboard.YearSlider,
		Years: years,
		Year:  years[0],
	}
	d.OnChange(d.Widget.ID, func(_ context.Context, v dashboard.Values) (figure.Figure, error) {
		year, err := yearValue(v)
		if err != nil {
			return figure.Figure{}, err
		}
		return GapminderFigure(t, &year), nil
	})
	return d, nil
}

// GapminderFigure builds one sized-scatter trace per continent from the rows
// of the given year. A nil year keeps every row. Continent colors follow the
// order in which continents first appear in t, so they stay stable as the
// year changes.
func GapminderFigure(t *dataset.Table, year *int) figure.Figure {
	colors := continentColors(t)

	rows := t
	if year != nil {
		rows = t.Filter(func(row dataset.Row) bool {
			y, ok := row.Int(ColYear)
			return ok && y == *year
		})
	}

	maxPop := 0.0
	for i := 0; i < rows.Len(); i++ {
		if p, ok := rows.Row(i).Float(ColPop); ok && p > maxPop {
			maxPop = p
		}
	}

	var traces []figure.Trace
	byContinent := make(map[string]int)
	for i := 0; i < rows.Len(); i++ {
		row := rows.Row(i)
		gdp, okX := row.Float(ColGDP)
		life, okY := row.Float(ColLifeExp)
		pop, okP := row.Float(ColPop)
		if !okX || !okY || !okP {
			continue
		}

		continent := row.String(ColContinent)
		idx, seen := byContinent[continent]
		if !seen {
			idx = len(traces)
			byContinent[continent] = idx
			traces = append(traces, figure.Trace{
				Type:   figure.Scatter,
				Name:   continent,
				Marker: figure.Marker{Color: colors[continent]},
				Points: []figure.Point{},
			})
		}
		traces[idx].Points = append(traces[idx].Points, figure.Point{
			X:    gdp,
			Y:    life,
			Size: markerSize(pop, maxPop),
			Text: row.String(ColCountry),
		})
	}
	if traces == nil {
		traces = []figure.Trace{}
	}

	title := "Life expectancy vs. GDP per capita"
	if year != nil {
		title = fmt.Sprintf("%s, %d", title, *year)
	}

	return figure.Figure{
		Traces: traces,
		Layout: figure.Layout{
			Title:        title,
			TitleX:       0.5,
			XAxis:        figure.Axis{Title: ColGDP, Type: figure.AxisLog},
			YAxis:        figure.Axis{Title: ColLifeExp, Type: figure.AxisLinear},
			Legend:       figure.Legend{Orientation: "v", X: 1.02, Y: 1},
			TransitionMS: 500,
		},
	}
}

// markerSize scales marker area with population: the largest value gets
// MaxMarkerSize and the diameter grows with the square root of the value.
func markerSize(v, maxV float64) float64 {
	if maxV <= 0 || v <= 0 {
		return 0
	}
	return math.Round(MaxMarkerSize*math.Sqrt(v/maxV)*100) / 100
}

func continentColors(t *dataset.Table) map[string]string {
	colors := make(map[string]string)
	for i := 0; i < t.Len(); i++ {
		c := t.Row(i).String(ColContinent)
		if _, ok := colors[c]; !ok {
			colors[c] = qualitativePalette[len(colors)%len(qualitativePalette)]
		}
	}
	return colors
}
