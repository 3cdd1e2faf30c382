package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davetashner/dashkit/internal/dashboard"
	"github.com/davetashner/dashkit/internal/echart"
)

// ListInput is the input schema for the list_dashboards tool.
type ListInput struct{}

// BuildInput is the input schema for the build_figure tool.
type BuildInput struct {
	Dashboard string            `json:"dashboard,omitempty" jsonschema:"Dashboard name (optional when only one is loaded)"`
	Inputs    map[string]string `json:"inputs,omitempty" jsonschema:"Widget property values, e.g. {\"year\": \"2007\"} or {\"start_date\": \"2020-01-01\"}; missing properties take the widget defaults"`
	Format    string            `json:"format,omitempty" jsonschema:"Output format: figure (trace and layout description) or echarts (chart option object); default figure"`
}

// KindsInput is the input schema for the list_kinds tool.
type KindsInput struct{}

// dashboardInfo is one entry of the list_dashboards result.
type dashboardInfo struct {
	Name     string           `json:"name"`
	Kind     string           `json:"kind"`
	Heading  string           `json:"heading"`
	Dataset  string           `json:"dataset"`
	Rows     int              `json:"rows"`
	Widget   string           `json:"widget"`
	Defaults dashboard.Values `json:"defaults"`
	Options  *widgetOptions   `json:"options,omitempty"`
}

// widgetOptions lists the values a widget accepts, where they are discrete.
type widgetOptions struct {
	Years   []int    `json:"years,omitempty"`
	Presets []string `json:"presets,omitempty"`
	MinDate string   `json:"min_date,omitempty"`
	MaxDate string   `json:"max_date,omitempty"`
}

type kindInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Columns     []string `json:"columns"`
}

func boolPtr(b bool) *bool { return &b }

func readOnly() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:    true,
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

func (c *catalog) registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_dashboards",
		Description: "List the loaded dashboards with their widget, default widget values and accepted options.",
		Annotations: readOnly(),
	}, c.handleList)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "build_figure",
		Description: "Rebuild a dashboard's figure for the given widget values, exactly as the page callback would.",
		Annotations: readOnly(),
	}, c.handleBuild)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_kinds",
		Description: "List the registered dashboard kinds and the dataset columns each one reads.",
		Annotations: readOnly(),
	}, handleKinds)
}

func (c *catalog) handleList(_ context.Context, _ *mcp.CallToolRequest, _ ListInput) (*mcp.CallToolResult, any, error) {
	infos := make([]dashboardInfo, 0, len(c.names))
	for _, name := range c.names {
		infos = append(infos, describe(c.byName[name]))
	}
	return jsonResult(infos)
}

func (c *catalog) handleBuild(ctx context.Context, _ *mcp.CallToolRequest, input BuildInput) (*mcp.CallToolResult, any, error) {
	d, err := c.lookup(input.Dashboard)
	if err != nil {
		return nil, nil, err
	}

	format := input.Format
	if format == "" {
		format = "figure"
	}
	if format != "figure" && format != "echarts" {
		return nil, nil, fmt.Errorf("unsupported format %q (supported: figure, echarts)", format)
	}

	fig, err := d.Update(ctx, d.Widget.ID, dashboard.Values(input.Inputs))
	if err != nil {
		return nil, nil, fmt.Errorf("build %s: %w", d.Name, err)
	}
	slog.Debug("mcp build_figure", "dashboard", d.Name, "points", fig.PointCount())

	if format == "figure" {
		return jsonResult(fig)
	}
	option, err := echart.Options(fig, echart.Page{Title: d.Heading, Theme: d.Theme})
	if err != nil {
		return nil, nil, fmt.Errorf("build %s: %w", d.Name, err)
	}
	return textResult(string(option)), nil, nil
}

func handleKinds(_ context.Context, _ *mcp.CallToolRequest, _ KindsInput) (*mcp.CallToolResult, any, error) {
	names := dashboard.List()
	infos := make([]kindInfo, 0, len(names))
	for _, name := range names {
		k := dashboard.Get(name)
		infos = append(infos, kindInfo{Name: name, Description: k.Description(), Columns: k.Columns()})
	}
	return jsonResult(infos)
}

func describe(d *dashboard.Dashboard) dashboardInfo {
	info := dashboardInfo{
		Name:     d.Name,
		Kind:     d.Kind,
		Heading:  d.Heading,
		Dataset:  d.Dataset,
		Rows:     d.Rows,
		Widget:   string(d.Widget.Kind),
		Defaults: d.Widget.Defaults(),
	}
	w := d.Widget
	switch w.Kind {
	case dashboard.YearSlider:
		info.Options = &widgetOptions{Years: w.Years}
	case dashboard.RangeSelector:
		presets := make([]string, 0, len(w.Buttons))
		for _, b := range w.Buttons {
			presets = append(presets, b.Label)
		}
		info.Options = &widgetOptions{Presets: presets}
	case dashboard.DatePickerRange:
		info.Options = &widgetOptions{
			MinDate: w.MinDate.Format(time.DateOnly),
			MaxDate: w.MaxDate.Format(time.DateOnly),
		}
	}
	return info
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("encoding result: %w", err)
	}
	return textResult(string(data)), nil, nil
}

func textResult(s string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: s},
		},
	}
}
