// Package pipeline ties loading, smoothing, panel building and rendering
// together for the attitude and IMU plot tools.
package pipeline

import (
	"github.com/banshee-data/telemetry/internal/chart"
	"github.com/banshee-data/telemetry/internal/timeseries"
)

// PanelSpec names one column to plot and how to label it.
type PanelSpec struct {
	Column string
	Title  string
	YLabel string
}

// Definition describes one plot tool.
type Definition struct {
	Name   string
	Schema timeseries.Schema
	Panels []PanelSpec
	// Arrange composes the built panels, given in Panels order.
	Arrange           func(panels []chart.Panel) chart.Layout
	DefaultTimestamps timeseries.TimestampMode
}

// Attitude stacks pitch, roll and yaw.
var Attitude = Definition{
	Name:   "attitude",
	Schema: timeseries.AttitudeSchema,
	Panels: []PanelSpec{
		{Column: "pitch", Title: "Pitch", YLabel: "Pitch"},
		{Column: "roll", Title: "Roll", YLabel: "Roll"},
		{Column: "yaw", Title: "Yaw", YLabel: "Yaw"},
	},
	Arrange: func(panels []chart.Panel) chart.Layout {
		return chart.Column(panels...)
	},
	DefaultTimestamps: timeseries.TimestampsAuto,
}

// IMU places acceleration panels in the left column and gyro panels in the
// right column.
var IMU = Definition{
	Name:   "imu",
	Schema: timeseries.IMUSchema,
	Panels: []PanelSpec{
		{Column: "ax", Title: "IMU Acceleration X", YLabel: "Acceleration"},
		{Column: "ay", Title: "IMU Acceleration Y", YLabel: "Acceleration"},
		{Column: "az", Title: "IMU Acceleration Z", YLabel: "Acceleration"},
		{Column: "gx", Title: "IMU Gyro X", YLabel: "Rotation"},
		{Column: "gy", Title: "IMU Gyro Y", YLabel: "Rotation"},
		{Column: "gz", Title: "IMU Gyro Z", YLabel: "Rotation"},
	},
	Arrange: func(panels []chart.Panel) chart.Layout {
		return chart.Row(chart.Column(panels[:3]...), chart.Column(panels[3:]...))
	},
	DefaultTimestamps: timeseries.TimestampsAuto,
}

// Lookup returns the definition registered under name.
func Lookup(name string) (Definition, bool) {
	switch name {
	case Attitude.Name:
		return Attitude, true
	case IMU.Name:
		return IMU, true
	}
	return Definition{}, false
}
