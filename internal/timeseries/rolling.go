package timeseries

import (
	"iter"
	"math"
)

// DefaultWindow is the rolling-mean window used by the plot tools.
const DefaultWindow = 10

// Smoothed is one rolling-mean output. Valid is false until the trailing
// window is full, and for any window that contains a NaN.
type Smoothed struct {
	Mean  float64
	Valid bool
}

// RollingMean lazily yields, for every index of values, the mean of the
// trailing window ending at that index. The first window-1 outputs are not
// valid; there is no partial-window averaging or edge padding.
func RollingMean(values []float64, window int) iter.Seq2[int, Smoothed] {
	if window < 1 {
		panic("timeseries: rolling window must be at least 1")
	}
	return func(yield func(int, Smoothed) bool) {
		buf := make([]float64, window)
		var (
			sum   float64
			nans  int
			count int
			head  int
		)
		for i, v := range values {
			if count == window {
				old := buf[head]
				if math.IsNaN(old) {
					nans--
				} else {
					sum -= old
				}
			} else {
				count++
			}
			buf[head] = v
			head = (head + 1) % window
			if math.IsNaN(v) {
				nans++
			} else {
				sum += v
			}
			// Re-sum once per revolution of the buffer so subtraction error
			// stays bounded on long logs.
			if head == 0 && count == window {
				sum, nans = 0, 0
				for _, b := range buf {
					if math.IsNaN(b) {
						nans++
					} else {
						sum += b
					}
				}
			}

			out := Smoothed{}
			if count == window && nans == 0 {
				out = Smoothed{Mean: sum / float64(window), Valid: true}
			}
			if !yield(i, out) {
				return
			}
		}
	}
}

// Smooth collects RollingMean into a slice of len(values).
func Smooth(values []float64, window int) []Smoothed {
	out := make([]Smoothed, 0, len(values))
	for _, s := range RollingMean(values, window) {
		out = append(out, s)
	}
	return out
}
