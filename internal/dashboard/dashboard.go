// Copyright 2026 The Dashkit Authors
// SPDX-License-Identifier: MIT

// Package dashboard defines a single-page dashboard: its page layout, its one
// input widget, and the reactive binding that turns widget changes into new
// figures.
package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/davetashner/dashkit/internal/figure"
)

// ErrBadInput marks widget values that cannot be turned into a filter.
var ErrBadInput = errors.New("bad input")

// Values holds the current widget properties, keyed by property name
// (e.g. "start_date"). Values arrive as strings from the page.
type Values map[string]string

// Callback rebuilds the figure from the current widget values. It must be a
// pure function of the dataset and v.
type Callback func(ctx context.Context, v Values) (figure.Figure, error)

// Theme names accepted by the page template.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Dashboard is one page: a heading, one chart placeholder and one widget.
type Dashboard struct {
	// Name is the URL slug and config key.
	Name string

	// Kind is the registered kind that built this dashboard.
	Kind string

	// Heading is shown above the chart.
	Heading string

	// Theme is ThemeLight or ThemeDark.
	Theme string

	// GraphID is the DOM id of the chart placeholder.
	GraphID string

	// Widget is the single input driving the chart.
	Widget Widget

	// Dataset is the source path and Rows its row count, for display only.
	Dataset string
	Rows    int

	binding *binding
}

type binding struct {
	widgetID string
	fn       Callback
}

// OnChange binds fn to changes of the widget with id widgetID. A dashboard
// has exactly one binding, registered once while it is built; violating that
// is a programming error and panics.
func (d *Dashboard) OnChange(widgetID string, fn Callback) {
	if d.binding != nil {
		panic(fmt.Sprintf("dashboard %s: widget %s already bound", d.Name, d.binding.widgetID))
	}
	if widgetID != d.Widget.ID {
		panic(fmt.Sprintf("dashboard %s: no widget %q (have %q)", d.Name, widgetID, d.Widget.ID))
	}
	if fn == nil {
		panic(fmt.Sprintf("dashboard %s: nil callback", d.Name))
	}
	d.binding = &binding{widgetID: widgetID, fn: fn}
}

// Bound reports whether a callback has been registered.
func (d *Dashboard) Bound() bool { return d.binding != nil }

// Update runs the bound callback for a change of widgetID and returns the
// replacement figure. Properties missing from v take the widget defaults.
func (d *Dashboard) Update(ctx context.Context, widgetID string, v Values) (figure.Figure, error) {
	if d.binding == nil {
		return figure.Figure{}, fmt.Errorf("dashboard %s: no callback bound", d.Name)
	}
	if widgetID != d.binding.widgetID {
		return figure.Figure{}, fmt.Errorf("dashboard %s: unknown widget %q: %w", d.Name, widgetID, ErrBadInput)
	}

	merged := d.Widget.Defaults()
	for k, val := range v {
		merged[k] = val
	}
	return d.binding.fn(ctx, merged)
}

// Initial returns the figure for the widget's default values.
func (d *Dashboard) Initial(ctx context.Context) (figure.Figure, error) {
	return d.Update(ctx, d.Widget.ID, nil)
}
