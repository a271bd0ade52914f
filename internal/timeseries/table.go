// Package timeseries loads telemetry CSV logs into column-oriented tables and
// derives rolling-mean smoothed series from them.
package timeseries

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/banshee-data/telemetry/internal/fsutil"
	"github.com/banshee-data/telemetry/internal/monitoring"
)

// DefaultTimeColumn is the header name of the timestamp column.
const DefaultTimeColumn = "ts"

// Schema enumerates the columns a table must provide.
type Schema struct {
	// Time is the timestamp column name; empty means DefaultTimeColumn.
	Time string
	// Columns are the required numeric columns, in presentation order.
	Columns []string
}

// AttitudeSchema is the layout of attitude logs.
var AttitudeSchema = Schema{Time: DefaultTimeColumn, Columns: []string{"pitch", "roll", "yaw"}}

// IMUSchema is the layout of raw IMU logs.
var IMUSchema = Schema{Time: DefaultTimeColumn, Columns: []string{"ax", "ay", "az", "gx", "gy", "gz"}}

func (s Schema) timeColumn() string {
	if s.Time == "" {
		return DefaultTimeColumn
	}
	return s.Time
}

// Table is a timestamp axis plus equal-length numeric columns.
type Table struct {
	Source string
	Time   Timestamps

	order   []string
	columns map[string][]float64
}

// NewTable assembles a table from already-parsed data. Every schema column
// must be present and match the timestamp count.
func NewTable(schema Schema, ts Timestamps, columns map[string][]float64) (*Table, error) {
	t := &Table{
		Time:    ts,
		order:   append([]string(nil), schema.Columns...),
		columns: make(map[string][]float64, len(schema.Columns)),
	}
	for _, name := range schema.Columns {
		values, ok := columns[name]
		if !ok {
			return nil, &DataFormatError{Column: name, Reason: "required column missing"}
		}
		if len(values) != ts.Len() {
			return nil, &DataFormatError{
				Column: name,
				Reason: fmt.Sprintf("column has %d values, want %d", len(values), ts.Len()),
			}
		}
		t.columns[name] = values
	}
	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.Time.Len() }

// Columns returns the numeric column names in schema order.
func (t *Table) Columns() []string { return append([]string(nil), t.order...) }

// Column returns the values of a numeric column.
func (t *Table) Column(name string) ([]float64, bool) {
	values, ok := t.columns[name]
	return values, ok
}

// LoadOptions tunes Load.
type LoadOptions struct {
	// Timestamps selects timestamp parsing; the zero value is auto.
	Timestamps TimestampMode
	// Path labels errors and Table.Source.
	Path string
}

// LoadFile opens path on fsys and loads it with Load.
func LoadFile(fsys fsutil.FileSystem, path string, schema Schema, opts LoadOptions) (*Table, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input csv: %w", err)
	}
	defer f.Close()

	if opts.Path == "" {
		opts.Path = path
	}
	return Load(f, schema, opts)
}

// Load parses comma-delimited text with a header row into a Table. Missing
// columns and malformed rows are reported as *DataFormatError.
func Load(r io.Reader, schema Schema, opts LoadOptions) (*Table, error) {
	path := opts.Path
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &DataFormatError{Path: path, Reason: "missing header row"}
	}
	if err != nil {
		return nil, csvError(path, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	timeCol := schema.timeColumn()
	required := append([]string{timeCol}, schema.Columns...)
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, &DataFormatError{Path: path, Line: 1, Column: name, Reason: "required column missing"}
		}
	}

	var (
		raw     []string
		lines   []int
		columns = make(map[string][]float64, len(schema.Columns))
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(path, err)
		}
		line, _ := reader.FieldPos(0)

		raw = append(raw, strings.TrimSpace(record[index[timeCol]]))
		lines = append(lines, line)

		for _, name := range schema.Columns {
			v, err := parseValue(record[index[name]])
			if err != nil {
				return nil, &DataFormatError{Path: path, Line: line, Column: name, Reason: err.Error()}
			}
			columns[name] = append(columns[name], v)
		}
	}

	mode := opts.Timestamps
	if mode == "" {
		mode = TimestampsAuto
	}
	ts, err := resolveTimestamps(raw, lines, mode, path, timeCol)
	if err != nil {
		return nil, err
	}
	if ts.X == nil {
		ts.X = []float64{}
	}
	for _, name := range schema.Columns {
		if columns[name] == nil {
			columns[name] = []float64{}
		}
	}

	if i := firstDecrease(ts); i > 0 {
		monitoring.Logf("warning: %s timestamps decrease at line %d (%s after %s)", sourceName(path), lines[i], raw[i], raw[i-1])
	}

	t, err := NewTable(schema, ts, columns)
	if err != nil {
		return nil, err
	}
	t.Source = path
	monitoring.Debugf("loaded %d rows from %s (timestamps: %s)", t.Len(), sourceName(path), ts.Kind)
	return t, nil
}

func parseValue(field string) (float64, error) {
	s := strings.TrimSpace(field)
	if s == "" {
		return 0, errors.New("empty value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric value %q", s)
	}
	if math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return v, nil
}

func csvError(path string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &DataFormatError{Path: path, Line: pe.Line, Reason: "malformed row", Err: pe.Err}
	}
	return fmt.Errorf("failed to read csv: %w", err)
}

// firstDecrease returns the index of the first timestamp lower than its
// predecessor, or -1. Label axes are never checked.
func firstDecrease(ts Timestamps) int {
	if ts.Kind == AxisLabel {
		return -1
	}
	for i := 1; i < len(ts.X); i++ {
		if ts.X[i] < ts.X[i-1] {
			return i
		}
	}
	return -1
}

func sourceName(path string) string {
	if path == "" {
		return "input"
	}
	return path
}

// WriteCSV writes the table with its raw timestamp text in the same layout
// Load accepts.
func (t *Table) WriteCSV(w io.Writer, timeColumn string) error {
	if timeColumn == "" {
		timeColumn = DefaultTimeColumn
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{timeColumn}, t.order...)); err != nil {
		return err
	}

	row := make([]string, len(t.order)+1)
	for i := 0; i < t.Len(); i++ {
		if i < len(t.Time.Raw) {
			row[0] = t.Time.Raw[i]
		} else {
			row[0] = strconv.FormatFloat(t.Time.X[i], 'f', -1, 64)
		}
		for j, name := range t.order {
			row[j+1] = strconv.FormatFloat(t.columns[name][i], 'f', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
