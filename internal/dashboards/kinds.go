package dashboards

import (
	"context"
	"fmt"

	"github.com/davetashner/dashkit/internal/dashboard"
	"github.com/davetashner/dashkit/internal/dataset"
	"github.com/davetashner/dashkit/internal/figure"
)

func init() {
	dashboard.Register(&GroundwaterPicker{})
	dashboard.Register(&GroundwaterOverview{})
	dashboard.Register(&Gapminder{})
}

const groundwaterHeading = "Groundwater Levels and Rainfall Dashboard"

// OverviewButtons are the range-selector presets of the overview dashboard.
var OverviewButtons = []figure.RangeButton{
	{Label: "1m", Count: 1, Step: figure.StepMonth, StepMode: figure.StepBackward},
	{Label: "6m", Count: 6, Step: figure.StepMonth, StepMode: figure.StepBackward},
	{Label: "YTD", Count: 1, Step: figure.StepYear, StepMode: figure.StepToDate},
	{Label: "1y", Count: 1, Step: figure.StepYear, StepMode: figure.StepBackward},
	{Label: "all", Step: figure.StepAll},
}

// GroundwaterPicker is the groundwater dashboard driven by a date-range
// picker.
type GroundwaterPicker struct{}

// Compile-time interface check.
var _ dashboard.Kind = (*GroundwaterPicker)(nil)

// Name returns the kind name.
func (k *GroundwaterPicker) Name() string { return "groundwater" }

// Description returns a one-line summary.
func (k *GroundwaterPicker) Description() string {
	return "Rainfall bars and borehole levels filtered by a date-range picker"
}

// Columns lists the dataset columns read by the dashboard.
func (k *GroundwaterPicker) Columns() []string { return append([]string(nil), groundwaterColumns...) }

// PickerStyle is the figure style of the date-picker dashboard.
var PickerStyle = GroundwaterStyle{LegendY: -0.10, RangeSlider: true}

// Build returns the dashboard with its date-range binding registered.
func (k *GroundwaterPicker) Build(spec dashboard.Spec, t *dataset.Table) (*dashboard.Dashboard, error) {
	if err := t.Require(k.Columns()...); err != nil {
		return nil, err
	}
	first, last, err := t.DateBounds(ColDate)
	if err != nil {
		return nil, err
	}

	d := newDashboard(spec, k.Name(), groundwaterHeading, dashboard.ThemeDark, t)
	d.GraphID = "interactive-groundwater-graph"
	d.Widget = dashboard.Widget{
		ID:        "date-picker-range",
		Kind:      dashboard.DatePickerRange,
		MinDate:   first,
		MaxDate:   last,
		StartDate: first,
		EndDate:   last,
	}
	d.OnChange(d.Widget.ID, func(_ context.Context, v dashboard.Values) (figure.Figure, error) {
		r, err := dateRangeFrom(v, first, last)
		if err != nil {
			return figure.Figure{}, err
		}
		return GroundwaterFigure(t, &r, PickerStyle), nil
	})
	return d, nil
}

// GroundwaterOverview is the groundwater dashboard with range-selector
// presets and a range slider.
type GroundwaterOverview struct{}

// Compile-time interface check.
var _ dashboard.Kind = (*GroundwaterOverview)(nil)

// Name returns the kind name.
func (k *GroundwaterOverview) Name() string { return "groundwater-overview" }

// Description returns a one-line summary.
func (k *GroundwaterOverview) Description() string {
	return "Rainfall bars and borehole levels with 1m/6m/YTD/1y/all presets and a range slider"
}

// Columns lists the dataset columns read by the dashboard.
func (k *GroundwaterOverview) Columns() []string { return append([]string(nil), groundwaterColumns...) }

// OverviewStyle is the figure style of the overview dashboard.
var OverviewStyle = GroundwaterStyle{LegendY: -0.50, RangeSlider: true, RangeButtons: OverviewButtons}

// Build returns the dashboard with its range-selector binding registered.
func (k *GroundwaterOverview) Build(spec dashboard.Spec, t *dataset.Table) (*dashboard.Dashboard, error) {
	if err := t.Require(k.Columns()...); err != nil {
		return nil, err
	}
	first, last, err := t.DateBounds(ColDate)
	if err != nil {
		return nil, err
	}

	d := newDashboard(spec, k.Name(), groundwaterHeading, dashboard.ThemeLight, t)
	d.GraphID = "groundwater-graph"
	d.Widget = dashboard.Widget{
		ID:       "range-selector",
		Kind:     dashboard.RangeSelector,
		Buttons:  OverviewButtons,
		Selected: "all",
	}
	widget := d.Widget
	d.OnChange(widget.ID, func(_ context.Context, v dashboard.Values) (figure.Figure, error) {
		label := v[dashboard.PropRange]
		b, ok := widget.Button(label)
		if !ok {
			return figure.Figure{}, fmt.Errorf("%s: unknown preset %q: %w", dashboard.PropRange, label, dashboard.ErrBadInput)
		}
		r, err := b.Resolve(first, last)
		if err != nil {
			return figure.Figure{}, err
		}
		return GroundwaterFigure(t, &r, OverviewStyle), nil
	})
	return d, nil
}

// newDashboard fills the fields shared by every kind.
func newDashboard(spec dashboard.Spec, kind, heading, theme string, t *dataset.Table) *dashboard.Dashboard {
	d := &dashboard.Dashboard{
		Name:    spec.Name,
		Kind:    kind,
		Heading: heading,
		Theme:   theme,
		Dataset: spec.Dataset,
		Rows:    t.Len(),
	}
	if d.Name == "" {
		d.Name = kind
	}
	if spec.Heading != "" {
		d.Heading = spec.Heading
	}
	if spec.Theme != "" {
		d.Theme = spec.Theme
	}
	return d
}
