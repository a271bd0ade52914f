package timeseries

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestampMode(t *testing.T) {
	for in, want := range map[string]TimestampMode{
		"":         TimestampsAuto,
		"auto":     TimestampsAuto,
		"NUMERIC":  TimestampsNumeric,
		" iso8601": TimestampsISO8601,
		"raw":      TimestampsRaw,
	} {
		got, err := ParseTimestampMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseTimestampMode("epoch")
	assert.Error(t, err)
}

func TestParseISO8601_Layouts(t *testing.T) {
	want := time.Date(2021, 12, 14, 10, 30, 0, 250_000_000, time.UTC)
	for _, s := range []string{
		"2021-12-14T10:30:00.25Z",
		"2021-12-14T10:30:00.25",
		"2021-12-14 10:30:00.25Z",
		"2021-12-14 10:30:00.25 UTC",
		"2021-12-14 10:30:00.25 +00:00",
		"2021-12-14 10:30:00.250",
	} {
		got, err := ParseISO8601(s)
		require.NoError(t, err, s)
		assert.True(t, got.Equal(want), "%s parsed as %v", s, got)
	}

	_, err := ParseISO8601("yesterday")
	assert.Error(t, err)
}

func TestLoad_TimestampModes(t *testing.T) {
	numeric := "ts,pitch,roll,yaw\n100,0,0,0\n200,0,0,0\n"
	iso := "ts,pitch,roll,yaw\n2021-12-14T10:00:00Z,0,0,0\n2021-12-14T10:00:01Z,0,0,0\n"
	labels := "ts,pitch,roll,yaw\nboot,0,0,0\narmed,0,0,0\n"

	tests := []struct {
		name    string
		csv     string
		mode    TimestampMode
		kind    AxisKind
		x1      float64
		wantErr bool
	}{
		{"auto numeric", numeric, TimestampsAuto, AxisNumeric, 200, false},
		{"auto iso", iso, TimestampsAuto, AxisTime, 1639476001, false},
		{"auto labels", labels, TimestampsAuto, AxisLabel, 1, false},
		{"strict numeric", numeric, TimestampsNumeric, AxisNumeric, 200, false},
		{"strict numeric rejects iso", iso, TimestampsNumeric, 0, 0, true},
		{"strict iso", iso, TimestampsISO8601, AxisTime, 1639476001, false},
		{"strict iso rejects labels", labels, TimestampsISO8601, 0, 0, true},
		{"raw keeps numbers as labels", numeric, TimestampsRaw, AxisLabel, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Load(strings.NewReader(tt.csv), AttitudeSchema, LoadOptions{Timestamps: tt.mode})
			if tt.wantErr {
				var dfe *DataFormatError
				require.True(t, errors.As(err, &dfe), "error = %v", err)
				assert.Equal(t, "ts", dfe.Column)
				assert.Equal(t, 2, dfe.Line)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, table.Time.Kind)
			assert.InDelta(t, tt.x1, table.Time.X[1], 1e-6)
			assert.Len(t, table.Time.Raw, 2)
		})
	}
}

func TestTimestamps_TimeRoundTrip(t *testing.T) {
	when := time.Date(2022, 8, 1, 10, 0, 0, 500_000_000, time.UTC)
	ts := Timestamps{Kind: AxisTime, X: []float64{unixSeconds(when)}}

	got := ts.Time(0)
	assert.WithinDuration(t, when, got, time.Microsecond)
}

func TestAxisKind_String(t *testing.T) {
	assert.Equal(t, "numeric", AxisNumeric.String())
	assert.Equal(t, "time", AxisTime.String())
	assert.Equal(t, "label", AxisLabel.String())
	assert.Equal(t, "AxisKind(9)", AxisKind(9).String())
}

func TestLoad_NonFiniteNumericTimestamps(t *testing.T) {
	for _, ts := range []string{"NaN", "Inf", "-Inf"} {
		csv := "ts,pitch,roll,yaw\n0,0,0,0\n" + ts + ",0,0,0\n"

		_, err := Load(strings.NewReader(csv), AttitudeSchema, LoadOptions{Timestamps: TimestampsNumeric, Path: "att.csv"})
		var dfe *DataFormatError
		require.True(t, errors.As(err, &dfe), "%s: error = %v", ts, err)
		assert.Equal(t, 3, dfe.Line, ts)
		assert.Equal(t, "ts", dfe.Column, ts)
		assert.Contains(t, dfe.Reason, "non-finite", ts)

		// auto never builds a numeric axis from non-finite values
		table, err := Load(strings.NewReader(csv), AttitudeSchema, LoadOptions{})
		require.NoError(t, err, ts)
		assert.Equal(t, AxisLabel, table.Time.Kind, ts)
	}
}

func TestLoad_ISOTimestampErrorMessage(t *testing.T) {
	csv := "ts,pitch,roll,yaw\n2021-12-14T10:00:00Z,0,0,0\n0.0,0,0,0\n"
	_, err := Load(strings.NewReader(csv), AttitudeSchema, LoadOptions{Timestamps: TimestampsISO8601, Path: "imu.csv"})
	require.Error(t, err)
	assert.Equal(t, `data format error in imu.csv at line 3 column "ts": invalid ISO-8601 timestamp "0.0"`, err.Error())
}
