// Package plotcli implements the shared command line of the plot tools.
package plotcli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/banshee-data/telemetry/internal/chart"
	"github.com/banshee-data/telemetry/internal/config"
	"github.com/banshee-data/telemetry/internal/fsutil"
	"github.com/banshee-data/telemetry/internal/monitoring"
	"github.com/banshee-data/telemetry/internal/pipeline"
	"github.com/banshee-data/telemetry/internal/timeseries"
	"github.com/banshee-data/telemetry/internal/version"
)

// Env carries the process dependencies a run needs.
type Env struct {
	FS     fsutil.FileSystem
	Stdout io.Writer
	Stderr io.Writer
	Viewer chart.Viewer
}

type flags struct {
	input      string
	output     string
	configPath string
	timestamps string
	window     int
	show       bool
	summary    bool
	verbose    bool
	version    bool
}

func newFlagSet(name string, f *flags, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)

	fs.StringVar(&f.input, "input-csv", "", "Input CSV file (required)")
	fs.StringVar(&f.input, "i", "", "Shorthand for --input-csv")
	fs.StringVar(&f.output, "output-html", pipeline.DefaultOutput, "Output file; .html, .png or .svg")
	fs.StringVar(&f.output, "o", pipeline.DefaultOutput, "Shorthand for --output-html")
	fs.StringVar(&f.configPath, "config", "", "Optional JSON or YAML plot config")
	fs.StringVar(&f.timestamps, "timestamps", "", "Timestamp parsing: auto, numeric, iso8601 or raw")
	fs.IntVar(&f.window, "window", timeseries.DefaultWindow, "Rolling-mean window in samples")
	fs.BoolVar(&f.show, "show", false, "Open the output in the system viewer")
	fs.BoolVar(&f.summary, "summary", false, "Print per-column statistics")
	fs.BoolVar(&f.verbose, "v", false, "Verbose logging")
	fs.BoolVar(&f.version, "version", false, "Print version and exit")
	return fs
}

// Run parses args and runs def. flag.ErrHelp is returned for -h.
func Run(ctx context.Context, name string, def pipeline.Definition, args []string, env Env) error {
	if env.FS == nil {
		env.FS = fsutil.OSFileSystem{}
	}
	if env.Stdout == nil {
		env.Stdout = io.Discard
	}
	if env.Stderr == nil {
		env.Stderr = io.Discard
	}

	var f flags
	fs := newFlagSet(name, &f, env.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if f.version {
		fmt.Fprintln(env.Stdout, version.String(name))
		return nil
	}
	monitoring.SetVerbose(f.verbose)

	if f.input == "" {
		return fmt.Errorf("--input-csv is required")
	}

	cfg := config.EmptyPlotConfig()
	if f.configPath != "" {
		loaded, err := config.LoadPlotConfig(env.FS, f.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Flags given explicitly win over the config file.
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "window":
			cfg.SetWindow(f.window)
		case "timestamps":
			cfg.SetTimestamps(f.timestamps)
		case "show":
			cfg.SetShow(f.show)
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	res, err := pipeline.Run(ctx, def, pipeline.Options{
		FS:         env.FS,
		Input:      f.input,
		Output:     f.output,
		Timestamps: cfg.GetTimestamps(def.DefaultTimestamps),
		Builder: chart.BuilderConfig{
			Palette: cfg.GetPalette(),
			Window:  cfg.GetWindow(),
			Width:   cfg.GetPanelWidth(),
			Height:  cfg.GetPanelHeight(),
		},
		HTML: chart.HTMLOptions{
			AssetsHost: cfg.GetAssetsHost(),
			Theme:      cfg.GetTheme(),
		},
		Show:   cfg.GetShow(),
		Viewer: env.Viewer,
	})
	if res != nil && f.summary {
		if werr := WriteSummary(env.Stdout, res.Table); werr != nil && err == nil {
			err = werr
		}
	}
	return err
}

// WriteSummary prints per-column statistics as an aligned table.
func WriteSummary(w io.Writer, t *timeseries.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "column\trows\tcount\tmean\tstddev\tmin\tmax")
	for _, s := range timeseries.Summarise(t) {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.4g\t%.4g\t%.4g\t%.4g\n", s.Column, s.Rows, s.Count, s.Mean, s.StdDev, s.Min, s.Max)
	}
	return tw.Flush()
}
