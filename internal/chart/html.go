package chart

import (
	"fmt"
	"html/template"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/telemetry/internal/timeseries"
)

// DefaultAssetsHost serves echarts.min.js when HTMLOptions.AssetsHost is empty.
const DefaultAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// HTMLOptions configures the HTML page.
type HTMLOptions struct {
	PageTitle string
	// AssetsHost overrides where echarts.min.js is loaded from.
	AssetsHost string
	Theme      string
}

// builtinThemes ship inside echarts.min.js; any other theme needs its own
// script from the assets host.
var builtinThemes = map[string]bool{"": true, "white": true, "light": true, "dark": true}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="{{.AssetsHost}}echarts.min.js"></script>
{{- if .ThemeScript}}
<script src="{{.AssetsHost}}themes/{{.ThemeScript}}.js"></script>
{{- end}}
<style>
.grid { display: grid; grid-template-columns: repeat({{.Cols}}, {{.ColWidth}}px); gap: 16px; justify-content: center; }
.column { display: flex; flex-direction: column; gap: 16px; }
</style>
</head>
<body>
<div class="grid">
{{- range .Columns}}
<div class="column">
{{- range .}}
<div class="panel" data-title="{{.Title}}">{{.Element}}</div>
{{- end}}
</div>
{{- end}}
</div>
{{- range .Columns}}{{range .}}
{{.Script}}
{{- end}}{{end}}
</body>
</html>
`))

type htmlChart struct {
	Title   string
	Element template.HTML
	Script  template.HTML
}

type htmlPage struct {
	Title       string
	AssetsHost  string
	ThemeScript string
	Cols        int
	ColWidth    int
	Columns     [][]htmlChart
}

// RenderHTML writes the layout as one page. Each layout column becomes its
// own stacked group, and the groups sit in a grid pinned to the panel width
// so the arrangement does not depend on the browser window.
func RenderHTML(w io.Writer, l Layout, o HTMLOptions) error {
	page := htmlPage{
		Title:      o.PageTitle,
		AssetsHost: o.AssetsHost,
	}
	if page.AssetsHost == "" {
		page.AssetsHost = DefaultAssetsHost
	}
	if page.Title == "" {
		page.Title = "telemetry"
	}
	if !builtinThemes[o.Theme] {
		page.ThemeScript = o.Theme
	}

	for _, col := range l.columns() {
		group := make([]htmlChart, 0, len(col.Stack))
		for i := range col.Stack {
			p := &col.Stack[i]
			snippet := htmlPanel(p, o).RenderSnippet()
			group = append(group, htmlChart{
				Title:   p.Title,
				Element: template.HTML(snippet.Element),
				Script:  template.HTML(snippet.Script),
			})
			page.ColWidth = max(page.ColWidth, p.Width)
		}
		page.Columns = append(page.Columns, group)
	}
	page.Cols = max(len(page.Columns), 1)
	if page.ColWidth == 0 {
		page.ColWidth = DefaultPanelWidth
	}

	if err := pageTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func htmlPanel(p *Panel, o HTMLOptions) *charts.Line {
	xAxis := opts.XAxis{Name: "ts", NameLocation: "middle", NameGap: 25}
	switch p.Axis {
	case timeseries.AxisTime:
		xAxis.Type = "time"
	case timeseries.AxisLabel:
		xAxis.Type = "category"
	default:
		xAxis.Type = "value"
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:      fmt.Sprintf("%dpx", p.Width),
			Height:     fmt.Sprintf("%dpx", p.Height),
			Theme:      o.Theme,
			AssetsHost: o.AssetsHost,
		}),
		charts.WithTitleOpts(opts.Title{Title: p.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
		charts.WithXAxisOpts(xAxis),
		charts.WithYAxisOpts(opts.YAxis{Name: p.YLabel, NameLocation: "middle", NameGap: 40}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}),
	)
	if p.Axis == timeseries.AxisLabel {
		line.SetXAxis(p.Labels)
	}

	smoothed := make([]opts.LineData, 0, len(p.Smoothed.Points))
	for _, pt := range p.Smoothed.Points {
		smoothed = append(smoothed, opts.LineData{Value: []interface{}{htmlX(p.Axis, pt.X), pt.Y}})
	}
	line.AddSeries(p.Smoothed.Name, smoothed,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: p.Smoothed.Color, Width: 2}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: p.Smoothed.Color}),
	)

	raw := make([]opts.ScatterData, 0, len(p.Raw.Points))
	for _, pt := range p.Raw.Points {
		raw = append(raw, opts.ScatterData{Value: []interface{}{htmlX(p.Axis, pt.X), pt.Y}})
	}
	scatter := charts.NewScatter()
	scatter.AddSeries(p.Raw.Name, raw,
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: p.Raw.Color}),
	)
	line.Overlap(scatter)

	return line
}

// htmlX maps an axis position to what echarts expects: milliseconds for time
// axes, the category index for label axes, the value otherwise.
func htmlX(kind timeseries.AxisKind, x float64) interface{} {
	switch kind {
	case timeseries.AxisTime:
		return int64(x * 1000)
	case timeseries.AxisLabel:
		return int(x)
	default:
		return x
	}
}
