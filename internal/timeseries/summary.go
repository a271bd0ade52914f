package timeseries

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ColumnSummary holds descriptive statistics for one column. NaN rows are
// counted in Rows but excluded from the statistics.
type ColumnSummary struct {
	Column string
	Rows   int
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarise computes a ColumnSummary per column in schema order.
func Summarise(t *Table) []ColumnSummary {
	out := make([]ColumnSummary, 0, len(t.order))
	for _, name := range t.order {
		values := t.columns[name]
		finite := make([]float64, 0, len(values))
		for _, v := range values {
			if !math.IsNaN(v) {
				finite = append(finite, v)
			}
		}

		s := ColumnSummary{Column: name, Rows: len(values), Count: len(finite)}
		switch len(finite) {
		case 0:
			s.Mean, s.StdDev, s.Min, s.Max = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		case 1:
			s.Mean, s.Min, s.Max = finite[0], finite[0], finite[0]
		default:
			s.Mean, s.StdDev = stat.MeanStdDev(finite, nil)
			s.Min = floats.Min(finite)
			s.Max = floats.Max(finite)
		}
		out = append(out, s)
	}
	return out
}
