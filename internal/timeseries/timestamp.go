package timeseries

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimestampMode selects how the timestamp column is interpreted.
type TimestampMode string

const (
	// TimestampsAuto uses numeric values when every row parses as a number,
	// ISO-8601 when every row parses as a date, and row labels otherwise.
	TimestampsAuto TimestampMode = "auto"
	// TimestampsNumeric requires every timestamp to be a number.
	TimestampsNumeric TimestampMode = "numeric"
	// TimestampsISO8601 requires every timestamp to be an ISO-8601 date/time.
	TimestampsISO8601 TimestampMode = "iso8601"
	// TimestampsRaw keeps timestamps as opaque labels.
	TimestampsRaw TimestampMode = "raw"
)

// ParseTimestampMode validates a mode name. The empty string maps to auto.
func ParseTimestampMode(s string) (TimestampMode, error) {
	switch m := TimestampMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return TimestampsAuto, nil
	case TimestampsAuto, TimestampsNumeric, TimestampsISO8601, TimestampsRaw:
		return m, nil
	default:
		return "", fmt.Errorf("unknown timestamp mode %q: expected auto, numeric, iso8601 or raw", s)
	}
}

// AxisKind describes what Timestamps.X holds.
type AxisKind int

const (
	// AxisNumeric holds the timestamp values as written.
	AxisNumeric AxisKind = iota
	// AxisTime holds Unix seconds (with fraction) parsed from ISO-8601 text.
	AxisTime
	// AxisLabel holds row indices; Raw carries the category labels.
	AxisLabel
)

func (k AxisKind) String() string {
	switch k {
	case AxisNumeric:
		return "numeric"
	case AxisTime:
		return "time"
	case AxisLabel:
		return "label"
	default:
		return fmt.Sprintf("AxisKind(%d)", int(k))
	}
}

// Timestamps is the shared time axis of a table.
type Timestamps struct {
	Kind AxisKind
	Raw  []string
	X    []float64
}

// Len returns the number of timestamps.
func (ts Timestamps) Len() int { return len(ts.X) }

// Time converts X[i] back to a time.Time. It is only meaningful for AxisTime.
func (ts Timestamps) Time(i int) time.Time {
	sec := ts.X[i]
	whole := int64(sec)
	nanos := int64((sec - float64(whole)) * 1e9)
	return time.Unix(whole, nanos).UTC()
}

// isoLayouts are tried in order. The space-separated forms cover what
// loggers commonly emit when formatting a timestamp with its default
// string representation.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999 -07:00",
	"2006-01-02 15:04:05.999999999 MST",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseISO8601 parses an ISO-8601 timestamp. Values without a zone are UTC.
func ParseISO8601(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("not an ISO-8601 timestamp: %q", s)
}

var errNonFinite = errors.New("non-finite timestamp")

func unixSeconds(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}

// resolveTimestamps builds the time axis for raw timestamp text. lines holds
// the source line of each row for error reporting.
func resolveTimestamps(raw []string, lines []int, mode TimestampMode, path, column string) (Timestamps, error) {
	fail := func(i int, reason string, err error) error {
		return &DataFormatError{Path: path, Line: lines[i], Column: column, Reason: reason, Err: err}
	}

	numeric := func(strict bool) ([]float64, error) {
		xs := make([]float64, len(raw))
		for i, s := range raw {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				if strict {
					return nil, fail(i, fmt.Sprintf("invalid numeric timestamp %q", s), err)
				}
				return nil, err
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				if strict {
					return nil, fail(i, fmt.Sprintf("non-finite numeric timestamp %q", s), nil)
				}
				return nil, errNonFinite
			}
			xs[i] = v
		}
		return xs, nil
	}

	iso := func(strict bool) ([]float64, error) {
		xs := make([]float64, len(raw))
		for i, s := range raw {
			t, err := ParseISO8601(s)
			if err != nil {
				if strict {
					return nil, fail(i, fmt.Sprintf("invalid ISO-8601 timestamp %q", s), nil)
				}
				return nil, err
			}
			xs[i] = unixSeconds(t)
		}
		return xs, nil
	}

	labels := func() Timestamps {
		xs := make([]float64, len(raw))
		for i := range xs {
			xs[i] = float64(i)
		}
		return Timestamps{Kind: AxisLabel, Raw: raw, X: xs}
	}

	switch mode {
	case TimestampsNumeric:
		xs, err := numeric(true)
		if err != nil {
			return Timestamps{}, err
		}
		return Timestamps{Kind: AxisNumeric, Raw: raw, X: xs}, nil
	case TimestampsISO8601:
		xs, err := iso(true)
		if err != nil {
			return Timestamps{}, err
		}
		return Timestamps{Kind: AxisTime, Raw: raw, X: xs}, nil
	case TimestampsRaw:
		return labels(), nil
	case TimestampsAuto, "":
		if xs, err := numeric(false); err == nil {
			return Timestamps{Kind: AxisNumeric, Raw: raw, X: xs}, nil
		}
		if xs, err := iso(false); err == nil {
			return Timestamps{Kind: AxisTime, Raw: raw, X: xs}, nil
		}
		return labels(), nil
	default:
		return Timestamps{}, fmt.Errorf("unknown timestamp mode %q", mode)
	}
}
