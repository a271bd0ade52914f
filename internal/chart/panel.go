package chart

import (
	"fmt"
	"math"

	"github.com/banshee-data/telemetry/internal/timeseries"
)

const (
	// DefaultPanelWidth matches the width the attitude and IMU views were
	// designed for.
	DefaultPanelWidth  = 800
	DefaultPanelHeight = 300
)

// Point is one (x, y) sample on a panel.
type Point struct {
	X, Y float64
}

// Series is a named, coloured run of points.
type Series struct {
	Name   string
	Color  string
	Points []Point
}

// Panel pairs a raw series drawn as points with its rolling mean drawn as a
// line, on a shared time axis.
type Panel struct {
	Title  string
	YLabel string

	Axis   timeseries.AxisKind
	Labels []string

	Raw      Series
	Smoothed Series

	Width  int
	Height int
}

// BuilderConfig controls panel construction. Zero fields take defaults.
type BuilderConfig struct {
	Palette Palette
	Window  int
	Width   int
	Height  int
}

// Builder constructs panels.
type Builder struct {
	palette Palette
	window  int
	width   int
	height  int
}

// NewBuilder returns a Builder with defaults applied to cfg.
func NewBuilder(cfg BuilderConfig) *Builder {
	b := &Builder{
		palette: cfg.Palette,
		window:  cfg.Window,
		width:   cfg.Width,
		height:  cfg.Height,
	}
	if len(b.palette) == 0 {
		b.palette = Dark2_5
	}
	if b.window < 1 {
		b.window = timeseries.DefaultWindow
	}
	if b.width <= 0 {
		b.width = DefaultPanelWidth
	}
	if b.height <= 0 {
		b.height = DefaultPanelHeight
	}
	return b
}

// Window returns the rolling-mean window the builder applies.
func (b *Builder) Window() int { return b.window }

// Panel builds one panel from a timestamp axis and a raw column. Each call
// starts a fresh colour cycle, so the raw points always take the first
// palette colour and the rolling-mean line the second.
func (b *Builder) Panel(title, yLabel string, ts timeseries.Timestamps, values []float64) (Panel, error) {
	if len(values) != ts.Len() {
		return Panel{}, fmt.Errorf("panel %q: %d values for %d timestamps", title, len(values), ts.Len())
	}

	colors := b.palette.Cycle()
	p := Panel{
		Title:  title,
		YLabel: yLabel,
		Axis:   ts.Kind,
		Raw:    Series{Name: title, Color: colors.Next()},
		Smoothed: Series{
			Name:  fmt.Sprintf("%s (mean of %d)", title, b.window),
			Color: colors.Next(),
		},
		Width:  b.width,
		Height: b.height,
	}
	if ts.Kind == timeseries.AxisLabel {
		p.Labels = ts.Raw
	}

	p.Raw.Points = make([]Point, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		p.Raw.Points = append(p.Raw.Points, Point{X: ts.X[i], Y: v})
	}

	p.Smoothed.Points = make([]Point, 0, max(len(values)-b.window+1, 0))
	for i, s := range timeseries.RollingMean(values, b.window) {
		if s.Valid {
			p.Smoothed.Points = append(p.Smoothed.Points, Point{X: ts.X[i], Y: s.Mean})
		}
	}
	return p, nil
}
