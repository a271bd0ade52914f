package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/banshee-data/telemetry/internal/chart"
	"github.com/banshee-data/telemetry/internal/fsutil"
	"github.com/banshee-data/telemetry/internal/monitoring"
	"github.com/banshee-data/telemetry/internal/timeseries"
)

// DefaultOutput is written when no output path is given.
const DefaultOutput = "output.html"

// Options configures Run. Zero fields take defaults.
type Options struct {
	FS     fsutil.FileSystem
	Input  string
	Output string
	// Timestamps overrides the definition's default mode when set.
	Timestamps timeseries.TimestampMode
	Builder    chart.BuilderConfig
	HTML       chart.HTMLOptions
	// Show opens the artifact with Viewer after it is written.
	Show   bool
	Viewer chart.Viewer
}

// Result describes a completed run.
type Result struct {
	Output string
	Format chart.Format
	Table  *timeseries.Table
	Layout chart.Layout
	Bytes  int
}

// Run loads opts.Input, builds one panel per definition column, composes them
// and writes the rendered artifact to opts.Output. Nothing is written when
// any step before the write fails.
func Run(ctx context.Context, def Definition, opts Options) (*Result, error) {
	if opts.Input == "" {
		return nil, fmt.Errorf("%s: input csv is required", def.Name)
	}
	if opts.FS == nil {
		opts.FS = fsutil.OSFileSystem{}
	}
	if opts.Output == "" {
		opts.Output = DefaultOutput
	}
	if opts.Timestamps == "" {
		opts.Timestamps = def.DefaultTimestamps
	}
	if opts.HTML.PageTitle == "" {
		opts.HTML.PageTitle = filepath.Base(opts.Input)
	}

	format, err := chart.FormatFromPath(opts.Output)
	if err != nil {
		return nil, err
	}

	table, err := timeseries.LoadFile(opts.FS, opts.Input, def.Schema, timeseries.LoadOptions{Timestamps: opts.Timestamps})
	if err != nil {
		return nil, err
	}
	monitoring.Debugf("%s: loaded %d rows from %s (%s axis)", def.Name, table.Len(), opts.Input, table.Time.Kind)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	layout, err := Build(def, table, chart.NewBuilder(opts.Builder))
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf, layout, format, opts.HTML); err != nil {
		return nil, err
	}

	if dir := filepath.Dir(opts.Output); dir != "." {
		if err := opts.FS.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := opts.FS.WriteFile(opts.Output, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("write %s: %w", opts.Output, err)
	}
	monitoring.Logf("%s: wrote %s (%d bytes)", def.Name, opts.Output, buf.Len())

	res := &Result{Output: opts.Output, Format: format, Table: table, Layout: layout, Bytes: buf.Len()}

	if opts.Show {
		viewer := opts.Viewer
		if viewer == nil {
			viewer = chart.OpenInSystemViewer
		}
		if err := viewer(opts.Output); err != nil {
			return res, fmt.Errorf("show %s: %w", opts.Output, err)
		}
	}
	return res, nil
}

// Build turns a loaded table into the definition's layout.
func Build(def Definition, table *timeseries.Table, b *chart.Builder) (chart.Layout, error) {
	panels := make([]chart.Panel, 0, len(def.Panels))
	for _, ps := range def.Panels {
		values, ok := table.Column(ps.Column)
		if !ok {
			return chart.Layout{}, fmt.Errorf("%s: column %q not loaded", def.Name, ps.Column)
		}
		p, err := b.Panel(ps.Title, ps.YLabel, table.Time, values)
		if err != nil {
			return chart.Layout{}, err
		}
		panels = append(panels, p)
	}
	return def.Arrange(panels), nil
}
