// Command gen-telemetry writes synthetic attitude or IMU logs so the plot
// tools can be tried without a device attached.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/banshee-data/telemetry/internal/fsutil"
	"github.com/banshee-data/telemetry/internal/pipeline"
	"github.com/banshee-data/telemetry/internal/timeseries"
)

// sampleInterval matches the logger's 10 Hz output.
const sampleInterval = 100 * time.Millisecond

var epoch = time.Date(2022, 8, 1, 12, 0, 0, 0, time.UTC)

type genOptions struct {
	Kind string
	Rows int
	Seed uint64
	ISO  bool
}

func main() {
	kind := flag.String("kind", "imu", "Log kind: attitude or imu")
	rows := flag.Int("rows", 600, "Number of rows")
	out := flag.String("out", "", "Output CSV path (stdout when empty)")
	seed := flag.Uint64("seed", 1, "Noise seed")
	iso := flag.Bool("iso", false, "Write ISO-8601 timestamps instead of seconds")
	flag.Parse()

	table, err := generate(genOptions{Kind: *kind, Rows: *rows, Seed: *seed, ISO: *iso})
	if err != nil {
		log.Fatalf("gen-telemetry: %v", err)
	}

	var buf bytes.Buffer
	if err := table.WriteCSV(&buf, timeseries.DefaultTimeColumn); err != nil {
		log.Fatalf("gen-telemetry: %v", err)
	}
	if *out == "" {
		os.Stdout.Write(buf.Bytes())
		return
	}
	if err := (fsutil.OSFileSystem{}).WriteFile(*out, buf.Bytes(), 0644); err != nil {
		log.Fatalf("gen-telemetry: %v", err)
	}
	log.Printf("wrote %d %s rows to %s", table.Len(), *kind, *out)
}

// signal is one synthetic column: a sine of the given amplitude and period
// plus a constant offset.
type signal struct {
	amplitude float64
	period    float64
	offset    float64
	noise     float64
}

var signals = map[string]map[string]signal{
	"attitude": {
		"pitch": {amplitude: 5, period: 8, noise: 0.4},
		"roll":  {amplitude: 12, period: 5, noise: 0.6},
		"yaw":   {amplitude: 90, period: 60, offset: 180, noise: 1},
	},
	"imu": {
		"ax": {amplitude: 0.3, period: 4, noise: 0.05},
		"ay": {amplitude: 0.2, period: 6, noise: 0.05},
		"az": {amplitude: 0.1, period: 3, offset: 9.81, noise: 0.05},
		"gx": {amplitude: 2, period: 5, noise: 0.3},
		"gy": {amplitude: 1.5, period: 7, noise: 0.3},
		"gz": {amplitude: 4, period: 11, noise: 0.3},
	},
}

func generate(o genOptions) (*timeseries.Table, error) {
	def, ok := pipeline.Lookup(o.Kind)
	if !ok {
		return nil, fmt.Errorf("unknown kind %q: expected attitude or imu", o.Kind)
	}
	if o.Rows < 0 {
		return nil, fmt.Errorf("rows must not be negative, got %d", o.Rows)
	}

	noise := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewPCG(o.Seed, o.Seed^0x9e3779b97f4a7c15)}

	ts := timeseries.Timestamps{
		Kind: timeseries.AxisNumeric,
		Raw:  make([]string, o.Rows),
		X:    make([]float64, o.Rows),
	}
	if o.ISO {
		ts.Kind = timeseries.AxisTime
	}
	for i := 0; i < o.Rows; i++ {
		at := epoch.Add(time.Duration(i) * sampleInterval)
		secs := float64(i) * sampleInterval.Seconds()
		if o.ISO {
			ts.Raw[i] = at.Format("2006-01-02 15:04:05.000")
			ts.X[i] = float64(at.UnixMilli()) / 1000
		} else {
			ts.Raw[i] = fmt.Sprintf("%.1f", secs)
			ts.X[i] = secs
		}
	}

	columns := make(map[string][]float64, len(def.Schema.Columns))
	for _, name := range def.Schema.Columns {
		s := signals[def.Name][name]
		values := make([]float64, o.Rows)
		for i := range values {
			t := ts.X[i] - ts.X[0]
			values[i] = s.offset + s.amplitude*math.Sin(2*math.Pi*t/s.period) + s.noise*noise.Rand()
		}
		columns[name] = values
	}
	return timeseries.NewTable(def.Schema, ts, columns)
}
