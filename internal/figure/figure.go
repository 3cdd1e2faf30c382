// Copyright 2026 The Dashkit Authors
// SPDX-License-Identifier: MIT

// Package figure defines the renderable description of a chart: an ordered
// list of traces plus layout options.
//
// A Figure is a plain value. Builders return a fresh Figure on every call and
// nothing mutates one after it is returned, so two builds from the same table
// and filter compare equal.
package figure

import "time"

// TraceType names the visual form of a trace.
type TraceType string

// Trace types.
const (
	Bar     TraceType = "bar"
	Line    TraceType = "line"
	Scatter TraceType = "scatter"
)

// AxisType controls how an axis interprets its values.
type AxisType string

// Axis types.
const (
	AxisDate   AxisType = "date"
	AxisLinear AxisType = "linear"
	AxisLog    AxisType = "log"
)

// Axis ids a trace can be plotted against.
const (
	YAxisPrimary   = "y"
	YAxisSecondary = "y2"
)

// Point is one data point. Date is used on date axes, X otherwise.
type Point struct {
	X    float64   `json:"x,omitempty"`
	Date time.Time `json:"date,omitzero"`
	Y    float64   `json:"y"`
	Size float64   `json:"size,omitempty"` // marker size, sized scatter only
	Text string    `json:"text,omitempty"` // hover label
}

// Marker styles bars and scatter markers.
type Marker struct {
	Color   string  `json:"color,omitempty"`
	Opacity float64 `json:"opacity,omitempty"`
}

// LineStyle styles line traces.
type LineStyle struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
}

// Trace is one visual series.
type Trace struct {
	Type   TraceType `json:"type"`
	Name   string    `json:"name"`
	YAxis  string    `json:"yaxis,omitempty"`
	Marker Marker    `json:"marker,omitzero"`
	Line   LineStyle `json:"line,omitzero"`
	Points []Point   `json:"points"`
}

// Axis holds axis options.
type Axis struct {
	Title      string     `json:"title,omitempty"`
	Type       AxisType   `json:"type,omitempty"`
	Domain     [2]float64 `json:"domain,omitzero"`
	ShowLine   bool       `json:"showline,omitempty"`
	LineColor  string     `json:"linecolor,omitempty"`
	LineWidth  float64    `json:"linewidth,omitempty"`
	GridColor  string     `json:"gridcolor,omitempty"`
	Overlaying string     `json:"overlaying,omitempty"`
	Side       string     `json:"side,omitempty"`
}

// Legend placement, in paper coordinates.
type Legend struct {
	Orientation string  `json:"orientation,omitempty"`
	X           float64 `json:"x"`
	XAnchor     string  `json:"xanchor,omitempty"`
	Y           float64 `json:"y"`
}

// RangeSlider is the overview strip drawn under a date axis.
type RangeSlider struct {
	Visible   bool    `json:"visible"`
	Thickness float64 `json:"thickness"`
}

// Layout holds figure-wide options.
type Layout struct {
	Title          string        `json:"title"`
	TitleX         float64       `json:"title_x,omitempty"`
	XAxis          Axis          `json:"xaxis"`
	YAxis          Axis          `json:"yaxis"`
	YAxis2         *Axis         `json:"yaxis2,omitempty"`
	Legend         Legend        `json:"legend"`
	PlotBackground string        `json:"plot_bgcolor,omitempty"`
	RangeSlider    *RangeSlider  `json:"rangeslider,omitempty"`
	RangeSelector  []RangeButton `json:"rangeselector,omitempty"`
	TransitionMS   int           `json:"transition_duration,omitempty"`
}

// Figure is a complete chart description.
type Figure struct {
	Traces []Trace `json:"traces"`
	Layout Layout  `json:"layout"`
}

// PointCount returns the number of points across all traces.
func (f Figure) PointCount() int {
	n := 0
	for _, t := range f.Traces {
		n += len(t.Points)
	}
	return n
}

// Trace returns the first trace with the given name.
func (f Figure) Trace(name string) (Trace, bool) {
	for _, t := range f.Traces {
		if t.Name == name {
			return t, true
		}
	}
	return Trace{}, false
}
