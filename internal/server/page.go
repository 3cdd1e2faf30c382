package server

import (
	"encoding/json"
	"html/template"
	"sync"
	"time"

	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/davetashner/dashkit/internal/dashboard"
	"github.com/davetashner/dashkit/internal/figure"
)

var (
	tmplOnce sync.Once
	index    *template.Template
	page     *template.Template
)

func parseTemplates() {
	funcs := template.FuncMap{
		"json": func(v any) template.JS {
			b, _ := json.Marshal(v)
			return template.JS(b) //nolint:gosec // intentional unescaped embedding
		},
	}
	index = template.Must(template.New("index").Funcs(funcs).Parse(indexTemplate))
	page = template.Must(template.New("page").Funcs(funcs).Parse(pageTemplate))
}

func indexTmpl() *template.Template {
	tmplOnce.Do(parseTemplates)
	return index
}

func pageTmpl() *template.Template {
	tmplOnce.Do(parseTemplates)
	return page
}

type indexData struct {
	Dashboards []*dashboard.Dashboard
}

// pageData holds the template data for one dashboard page.
type pageData struct {
	Name       string
	Heading    string
	Theme      string
	GraphID    string
	WidgetID   string
	WidgetKind string
	Option     template.JS
	ScriptURL  string

	// date-picker-range
	MinDate, MaxDate   string
	StartDate, EndDate string

	// year-slider
	Years     []int
	YearIndex int
	YearMax   int

	// range-selector
	Buttons  []figure.RangeButton
	Selected string
}

func newPageData(d *dashboard.Dashboard, option json.RawMessage, assetsHost string) pageData {
	w := d.Widget
	data := pageData{
		Name:       d.Name,
		Heading:    d.Heading,
		Theme:      d.Theme,
		GraphID:    d.GraphID,
		WidgetID:   w.ID,
		WidgetKind: string(w.Kind),
		Option:     template.JS(option), //nolint:gosec // chart options are built server-side
		ScriptURL:  assetsHost + opts.EchartsJS,
		Buttons:    w.Buttons,
		Selected:   w.Selected,
		Years:      w.Years,
	}
	if !w.MinDate.IsZero() {
		data.MinDate = w.MinDate.Format(time.DateOnly)
		data.MaxDate = w.MaxDate.Format(time.DateOnly)
		data.StartDate = w.StartDate.Format(time.DateOnly)
		data.EndDate = w.EndDate.Format(time.DateOnly)
	}
	if len(w.Years) > 0 {
		data.YearMax = len(w.Years) - 1
		for i, y := range w.Years {
			if y == w.Year {
				data.YearIndex = i
			}
		}
	}
	return data
}

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Dashboards</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; color: #1a1a2e; max-width: 900px; margin: 0 auto; padding: 1rem; line-height: 1.5; }
h1 { font-size: 1.5rem; margin-bottom: 1rem; }
ul { list-style: none; padding: 0; }
li { border: 1px solid #dee2e6; border-radius: 8px; padding: .75rem; margin-bottom: .5rem; background: #f8f9fa; }
li a { font-weight: 700; color: #0d6efd; text-decoration: none; }
li span { color: #6c757d; font-size: .875rem; margin-left: .5rem; }
</style>
</head>
<body>
<h1>Dashboards</h1>
{{if .Dashboards}}<ul>
{{range .Dashboards}}  <li><a href="/d/{{.Name}}">{{.Heading}}</a><span>{{.Kind}} &middot; {{.Rows}} rows from {{.Dataset}}</span></li>
{{end}}</ul>{{else}}<p>No dashboards configured.</p>{{end}}
</body>
</html>
`

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Heading}}</title>
<script src="{{.ScriptURL}}"></script>
<style>
:root { --bg: #fff; --fg: #1a1a2e; --card-bg: #f8f9fa; --border: #dee2e6; --muted: #6c757d; --accent: #0d6efd; --error: #dc3545; }
.theme-dark { --bg: #1a1a2e; --fg: #e9ecef; --card-bg: #16213e; --border: #495057; --muted: #adb5bd; --accent: #5b9aff; --error: #f55; }
* { box-sizing: border-box; }
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: var(--bg); color: var(--fg); margin: 0; padding: 1rem; }
h1 { text-align: center; font-size: 1.5rem; margin: .5rem 0 1rem; }
.controls { display: flex; flex-wrap: wrap; gap: .5rem; justify-content: center; align-items: center; margin-bottom: 1rem; }
.controls input { padding: .375rem .5rem; border: 1px solid var(--border); border-radius: 4px; background: var(--card-bg); color: var(--fg); }
.controls input[type=range] { width: min(80vw, 720px); }
.preset { padding: .25rem .75rem; border: 1px solid var(--border); border-radius: 4px; background: var(--card-bg); color: var(--fg); cursor: pointer; }
.preset.active { border-color: var(--accent); color: var(--accent); font-weight: 700; }
.chart { width: 100%; height: 600px; background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; }
#error { color: var(--error); text-align: center; min-height: 1.5rem; }
</style>
</head>
<body class="theme-{{.Theme}}">
<h1>{{.Heading}}</h1>
<div class="controls" id="{{.WidgetID}}">
{{- if eq .WidgetKind "date-picker-range"}}
  <input type="date" id="start-date" min="{{.MinDate}}" max="{{.MaxDate}}" value="{{.StartDate}}">
  <span>&ndash;</span>
  <input type="date" id="end-date" min="{{.MinDate}}" max="{{.MaxDate}}" value="{{.EndDate}}">
{{- else if eq .WidgetKind "year-slider"}}
  <input type="range" id="year-input" min="0" max="{{.YearMax}}" step="1" value="{{.YearIndex}}">
  <output id="year-label"></output>
{{- else if eq .WidgetKind "range-selector"}}
{{- range .Buttons}}
  <button type="button" class="preset{{if eq .Label $.Selected}} active{{end}}" data-range="{{.Label}}">{{.Label}}</button>
{{- end}}
{{- end}}
</div>
<div id="error" role="alert"></div>
<div class="chart" id="{{.GraphID}}"></div>
<script>
"use strict";
const widgetID = {{.WidgetID}};
const widgetKind = {{.WidgetKind}};
const years = {{json .Years}};
let selected = {{.Selected}};

const chart = echarts.init(document.getElementById({{.GraphID}}), {{if eq .Theme "dark"}}"dark"{{else}}null{{end}});
chart.setOption({{.Option}});
window.addEventListener("resize", () => chart.resize());

function inputs() {
  switch (widgetKind) {
  case "date-picker-range":
    return {start_date: document.getElementById("start-date").value, end_date: document.getElementById("end-date").value};
  case "year-slider":
    return {year: String(years[Number(document.getElementById("year-input").value)])};
  case "range-selector":
    return {range: selected};
  }
  return {};
}

function showError(msg) {
  document.getElementById("error").textContent = msg || "";
}

async function update() {
  const url = window.location.pathname.replace(/\/$/, "") + "/_update";
  try {
    const resp = await fetch(url, {
      method: "POST",
      headers: {"Content-Type": "application/json"},
      body: JSON.stringify({widget: widgetID, inputs: inputs()}),
    });
    const body = await resp.json();
    if (!resp.ok) {
      showError(body.error);
      return;
    }
    showError("");
    chart.setOption(body.figure, {notMerge: true});
  } catch (err) {
    showError(String(err));
  }
}

if (widgetKind === "date-picker-range") {
  document.getElementById("start-date").addEventListener("change", update);
  document.getElementById("end-date").addEventListener("change", update);
} else if (widgetKind === "year-slider") {
  const slider = document.getElementById("year-input");
  const label = document.getElementById("year-label");
  const sync = () => { label.textContent = years[Number(slider.value)]; };
  sync();
  slider.addEventListener("input", sync);
  slider.addEventListener("change", update);
} else if (widgetKind === "range-selector") {
  document.querySelectorAll(".preset").forEach((btn) => {
    btn.addEventListener("click", () => {
      selected = btn.dataset.range;
      document.querySelectorAll(".preset").forEach((b) => b.classList.toggle("active", b === btn));
      update();
    });
  });
}
</script>
</body>
</html>
`
