package chart

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/banshee-data/telemetry/internal/timeseries"
)

// screenDPI converts panel pixel sizes into vg lengths.
const screenDPI = 96

// maxLabelTicks bounds how many category labels are drawn on a label axis.
const maxLabelTicks = 10

func pixels(px int) vg.Length {
	return vg.Length(px) * vg.Inch / screenDPI
}

// RenderImage draws the layout as one tiled image. format must be FormatPNG
// or FormatSVG.
func RenderImage(w io.Writer, l Layout, format Format) error {
	rows, cols := l.Dims()
	if rows == 0 || cols == 0 {
		return fmt.Errorf("render %s: layout has no panels", format)
	}

	grid := l.Grid()
	plots := make([][]*plot.Plot, rows)
	tileW, tileH := 0, 0
	for r := range grid {
		plots[r] = make([]*plot.Plot, cols)
		for c, p := range grid[r] {
			if p == nil {
				blank := plot.New()
				blank.HideAxes()
				plots[r][c] = blank
				continue
			}
			pl, err := imagePanel(p)
			if err != nil {
				return fmt.Errorf("render %s: panel %q: %w", format, p.Title, err)
			}
			plots[r][c] = pl
			tileW = max(tileW, p.Width)
			tileH = max(tileH, p.Height)
		}
	}

	width, height := pixels(tileW*cols), pixels(tileH*rows)
	tiles := draw.Tiles{
		Rows:      rows,
		Cols:      cols,
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}

	switch format {
	case FormatPNG:
		img := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(screenDPI))
		drawTiles(plots, tiles, draw.New(img))
		if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
			return fmt.Errorf("render png: %w", err)
		}
	case FormatSVG:
		svg := vgsvg.New(width, height)
		drawTiles(plots, tiles, draw.New(svg))
		if _, err := svg.WriteTo(w); err != nil {
			return fmt.Errorf("render svg: %w", err)
		}
	default:
		return fmt.Errorf("render image: unsupported format %q", format)
	}
	return nil
}

func drawTiles(plots [][]*plot.Plot, tiles draw.Tiles, dc draw.Canvas) {
	canvases := plot.Align(plots, tiles, dc)
	for r := range plots {
		for c := range plots[r] {
			plots[r][c].Draw(canvases[r][c])
		}
	}
}

func imagePanel(p *Panel) (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = p.Title
	pl.Y.Label.Text = p.YLabel
	pl.X.Label.Text = "ts"
	pl.Add(plotter.NewGrid())

	switch p.Axis {
	case timeseries.AxisTime:
		pl.X.Tick.Marker = plot.TimeTicks{Format: "15:04:05"}
	case timeseries.AxisLabel:
		pl.X.Tick.Marker = labelTicks(p.Labels)
	}

	raw, err := ParseHex(p.Raw.Color)
	if err != nil {
		return nil, err
	}
	smoothed, err := ParseHex(p.Smoothed.Color)
	if err != nil {
		return nil, err
	}

	if len(p.Raw.Points) > 0 {
		s, err := plotter.NewScatter(toXYs(p.Raw.Points))
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Color = raw
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(1.5)
		pl.Add(s)
		pl.Legend.Add(p.Raw.Name, s)
	}
	if len(p.Smoothed.Points) > 0 {
		line, err := plotter.NewLine(toXYs(p.Smoothed.Points))
		if err != nil {
			return nil, err
		}
		line.LineStyle.Color = smoothed
		line.LineStyle.Width = vg.Points(1.5)
		pl.Add(line)
		pl.Legend.Add(p.Smoothed.Name, line)
	}

	pl.Legend.Top = true
	pl.Legend.Left = false
	pl.Legend.XOffs = -10
	pl.Legend.YOffs = -10
	return pl, nil
}

func toXYs(points []Point) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	return xys
}

// labelTicks places category labels at integer row positions, thinned so at
// most maxLabelTicks are drawn.
type labelTicks []string

func (lt labelTicks) Ticks(min, max float64) []plot.Tick {
	if len(lt) == 0 {
		return nil
	}
	lo := int(math.Max(0, math.Ceil(min)))
	hi := int(math.Min(float64(len(lt)-1), math.Floor(max)))
	if hi < lo {
		return nil
	}
	step := (hi-lo)/maxLabelTicks + 1

	var ticks []plot.Tick
	for i := lo; i <= hi; i++ {
		label := ""
		if (i-lo)%step == 0 {
			label = lt[i]
		}
		ticks = append(ticks, plot.Tick{Value: float64(i), Label: label})
	}
	return ticks
}
