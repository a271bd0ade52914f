package chart

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/telemetry/internal/timeseries"
)

func linearAxis(n int) (timeseries.Timestamps, []float64) {
	ts := timeseries.Timestamps{Kind: timeseries.AxisNumeric, Raw: make([]string, n), X: make([]float64, n)}
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		ts.X[i] = float64(i)
		values[i] = float64(i)
	}
	return ts, values
}

func TestColorCycle_RoundRobin(t *testing.T) {
	c := Dark2_5.Cycle()
	var got []string
	for i := 0; i < 7; i++ {
		got = append(got, c.Next())
	}
	assert.Equal(t, []string{"#1b9e77", "#d95f02", "#7570b3", "#e7298a", "#66a61e", "#1b9e77", "#d95f02"}, got)
}

func TestBuilder_PanelRestartsColourCycle(t *testing.T) {
	b := NewBuilder(BuilderConfig{})
	ts, values := linearAxis(12)

	for _, title := range []string{"Pitch", "Roll", "Yaw"} {
		p, err := b.Panel(title, title, ts, values)
		require.NoError(t, err)
		assert.Equal(t, Dark2_5[0], p.Raw.Color, title)
		assert.Equal(t, Dark2_5[1], p.Smoothed.Color, title)
	}
}

func TestBuilder_PanelSeries(t *testing.T) {
	b := NewBuilder(BuilderConfig{})
	ts, values := linearAxis(12)
	values[3] = math.NaN()

	p, err := b.Panel("Pitch", "Pitch", ts, values)
	require.NoError(t, err)

	assert.Equal(t, "Pitch", p.Title)
	assert.Equal(t, "Pitch", p.YLabel)
	assert.Equal(t, DefaultPanelWidth, p.Width)
	assert.Len(t, p.Raw.Points, 11, "NaN raw sample is not drawn")
	// Every full window (ending at 9, 10 or 11) covers the NaN at index 3.
	assert.Empty(t, p.Smoothed.Points)

	values[3] = 3
	p, err = b.Panel("Pitch", "Pitch", ts, values)
	require.NoError(t, err)
	require.Len(t, p.Smoothed.Points, 3)
	assert.Equal(t, Point{X: 9, Y: 4.5}, p.Smoothed.Points[0])
	assert.Equal(t, Point{X: 11, Y: 6.5}, p.Smoothed.Points[2])
}

func TestBuilder_PanelLengthMismatch(t *testing.T) {
	b := NewBuilder(BuilderConfig{})
	ts, _ := linearAxis(3)
	_, err := b.Panel("X", "X", ts, []float64{1, 2})
	assert.Error(t, err)
}

func TestBuilder_CustomWindowAndPalette(t *testing.T) {
	b := NewBuilder(BuilderConfig{Window: 2, Palette: Palette{"#000000", "#ffffff", "#ff0000"}})
	ts, values := linearAxis(4)

	p, err := b.Panel("A", "a", ts, values)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Window())
	assert.Equal(t, "#000000", p.Raw.Color)
	assert.Equal(t, "#ffffff", p.Smoothed.Color)
	assert.Len(t, p.Smoothed.Points, 3)
	assert.Contains(t, p.Smoothed.Name, "mean of 2")
}

func TestLayout_ColumnAndRow(t *testing.T) {
	a, b, c := Panel{Title: "ax"}, Panel{Title: "ay"}, Panel{Title: "az"}
	x, y, z := Panel{Title: "gx"}, Panel{Title: "gy"}, Panel{Title: "gz"}

	stack := Column(a, b, c)
	rows, cols := stack.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 1, cols)

	grid := Row(Column(a, b, c), Column(x, y, z))
	rows, cols = grid.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 2, cols)

	g := grid.Grid()
	assert.Equal(t, "ax", g[0][0].Title)
	assert.Equal(t, "gx", g[0][1].Title)
	assert.Equal(t, "az", g[2][0].Title)
	assert.Equal(t, "gz", g[2][1].Title)

	var titles []string
	for _, p := range grid.Panels() {
		titles = append(titles, p.Title)
	}
	assert.Equal(t, []string{"ax", "ay", "az", "gx", "gy", "gz"}, titles)
}

func TestLayout_RaggedRowAndFlatten(t *testing.T) {
	l := Row(Row(Column(Panel{Title: "a"})), Column(Panel{Title: "b"}, Panel{Title: "c"}))
	rows, cols := l.Dims()
	require.Equal(t, 2, rows)
	require.Equal(t, 2, cols)

	g := l.Grid()
	assert.Nil(t, g[1][0])
	assert.Equal(t, "c", g[1][1].Title)
}

func TestParseHex(t *testing.T) {
	got, err := ParseHex("#1b9e77")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x1b, G: 0x9e, B: 0x77, A: 0xff}, got)

	got, err = ParseHex("#fa0")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xaa, B: 0x00, A: 0xff}, got)

	_, err = ParseHex("blue")
	assert.Error(t, err)

	assert.NoError(t, Dark2_5.Validate())
	assert.Error(t, Palette{"#123456", "nope"}.Validate())
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]Format{
		"output.html":   FormatHTML,
		"OUT.HTM":       FormatHTML,
		"plots/imu.png": FormatPNG,
		"a.svg":         FormatSVG,
	} {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := FormatFromPath("out.pdf")
	assert.Error(t, err)
}

func samplePanels(t *testing.T, kind timeseries.AxisKind) []Panel {
	t.Helper()
	b := NewBuilder(BuilderConfig{Width: 200, Height: 120})
	ts, values := linearAxis(20)
	ts.Kind = kind
	if kind == timeseries.AxisTime {
		for i := range ts.X {
			ts.X[i] = 1659348000 + float64(i)*0.5
		}
	}
	if kind == timeseries.AxisLabel {
		for i := range ts.Raw {
			ts.Raw[i] = "t" + string(rune('a'+i))
		}
	}
	var panels []Panel
	for _, title := range []string{"IMU Acceleration X", "IMU Gyro X"} {
		p, err := b.Panel(title, "Acceleration", ts, values)
		require.NoError(t, err)
		panels = append(panels, p)
	}
	return panels
}

func TestRenderHTML(t *testing.T) {
	panels := samplePanels(t, timeseries.AxisTime)

	var buf bytes.Buffer
	err := Render(&buf, Row(Column(panels[0]), Column(panels[1])), FormatHTML, HTMLOptions{PageTitle: "IMU"})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "<title>IMU</title>")
	assert.Contains(t, html, "IMU Acceleration X")
	assert.Contains(t, html, "IMU Gyro X")
	assert.Contains(t, html, `"type":"time"`)
	assert.Contains(t, html, "#1b9e77")
	assert.Contains(t, html, "#d95f02")
	assert.Equal(t, 2, strings.Count(html, "echarts.init("))
	assert.Contains(t, html, DefaultAssetsHost+"echarts.min.js")
}

var dataTitle = regexp.MustCompile(`data-title="([^"]*)"`)

// htmlColumns returns the panel titles inside each column group, in order.
func htmlColumns(html string) [][]string {
	var groups [][]string
	for _, chunk := range strings.Split(html, `<div class="column">`)[1:] {
		var titles []string
		for _, m := range dataTitle.FindAllStringSubmatch(chunk, -1) {
			titles = append(titles, m[1])
		}
		groups = append(groups, titles)
	}
	return groups
}

func TestRenderHTML_GroupsPanelsByColumn(t *testing.T) {
	b := NewBuilder(BuilderConfig{})
	ts, values := linearAxis(12)
	panel := func(title string) Panel {
		p, err := b.Panel(title, "y", ts, values)
		require.NoError(t, err)
		return p
	}
	l := Row(
		Column(panel("AX"), panel("AY"), panel("AZ")),
		Column(panel("GX"), panel("GY"), panel("GZ")),
	)

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, l, HTMLOptions{}))
	html := buf.String()

	assert.Equal(t, [][]string{{"AX", "AY", "AZ"}, {"GX", "GY", "GZ"}}, htmlColumns(html))
	assert.Contains(t, html, "grid-template-columns: repeat(2, 800px)")
	assert.Equal(t, 6, strings.Count(html, "echarts.init("))
}

func TestRenderHTML_StackIsOneColumn(t *testing.T) {
	panels := samplePanels(t, timeseries.AxisNumeric)

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, Column(panels...), HTMLOptions{AssetsHost: "/static/", Theme: "vintage"}))
	html := buf.String()

	assert.Equal(t, [][]string{{"IMU Acceleration X", "IMU Gyro X"}}, htmlColumns(html))
	assert.Contains(t, html, "grid-template-columns: repeat(1, 200px)")
	assert.Contains(t, html, `src="/static/echarts.min.js"`)
	assert.Contains(t, html, `src="/static/themes/vintage.js"`)
}

func TestRenderHTML_LabelAxis(t *testing.T) {
	panels := samplePanels(t, timeseries.AxisLabel)

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, Column(panels...), HTMLOptions{}))
	assert.Contains(t, buf.String(), `"type":"category"`)
	assert.Contains(t, buf.String(), `"ta"`)
}

func TestRenderImage_PNG(t *testing.T) {
	panels := samplePanels(t, timeseries.AxisNumeric)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Row(Column(panels[0]), Column(panels[1])), FormatPNG, HTMLOptions{}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	bounds := img.Bounds()
	assert.InDelta(t, 400, bounds.Dx(), 1)
	assert.InDelta(t, 120, bounds.Dy(), 1)
}

func TestRenderImage_SVGWithTimeAndLabels(t *testing.T) {
	for _, kind := range []timeseries.AxisKind{timeseries.AxisTime, timeseries.AxisLabel} {
		panels := samplePanels(t, kind)

		var buf bytes.Buffer
		require.NoError(t, RenderImage(&buf, Column(panels...), FormatSVG), kind.String())
		assert.True(t, strings.Contains(buf.String(), "<svg"), kind.String())
	}
}

func TestRenderImage_EmptyLayout(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, RenderImage(&buf, Column(), FormatPNG))
}

func TestRenderImage_EmptyPanel(t *testing.T) {
	b := NewBuilder(BuilderConfig{Width: 100, Height: 100})
	p, err := b.Panel("Empty", "y", timeseries.Timestamps{}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, RenderImage(&buf, Column(p), FormatPNG))
}

func TestLabelTicks(t *testing.T) {
	labels := make(labelTicks, 25)
	for i := range labels {
		labels[i] = string(rune('A' + i))
	}
	ticks := labels.Ticks(-1, 30)
	require.Len(t, ticks, 25)

	shown := 0
	for _, tk := range ticks {
		if tk.Label != "" {
			shown++
		}
	}
	assert.LessOrEqual(t, shown, maxLabelTicks)
	assert.Equal(t, "A", ticks[0].Label)
}
