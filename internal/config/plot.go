package config

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/banshee-data/telemetry/internal/chart"
	"github.com/banshee-data/telemetry/internal/fsutil"
	"github.com/banshee-data/telemetry/internal/timeseries"
)

// maxConfigFileSize bounds config files read from disk.
const maxConfigFileSize = 1 * 1024 * 1024

// PlotConfig holds optional overrides for the plot tools. Unset fields fall
// back to the defaults returned by the Get* methods, so partial files are
// safe.
type PlotConfig struct {
	Window      *int     `json:"window,omitempty" yaml:"window,omitempty"`
	PanelWidth  *int     `json:"panel_width,omitempty" yaml:"panel_width,omitempty"`
	PanelHeight *int     `json:"panel_height,omitempty" yaml:"panel_height,omitempty"`
	Timestamps  *string  `json:"timestamps,omitempty" yaml:"timestamps,omitempty"`
	Palette     []string `json:"palette,omitempty" yaml:"palette,omitempty"`
	AssetsHost  *string  `json:"assets_host,omitempty" yaml:"assets_host,omitempty"`
	Theme       *string  `json:"theme,omitempty" yaml:"theme,omitempty"`
	Show        *bool    `json:"show,omitempty" yaml:"show,omitempty"`
}

// EmptyPlotConfig returns a PlotConfig with every field unset.
func EmptyPlotConfig() *PlotConfig {
	return &PlotConfig{}
}

// LoadPlotConfig reads a PlotConfig from a .json, .yaml or .yml file on fsys.
func LoadPlotConfig(fsys fsutil.FileSystem, path string) (*PlotConfig, error) {
	cleanPath := filepath.Clean(path)
	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("config file must have .json, .yaml or .yml extension, got %q", ext)
	}

	f, err := fsys.Open(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxConfigFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if len(data) > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: more than %d bytes", maxConfigFileSize)
	}

	cfg := EmptyPlotConfig()
	if ext == ".json" {
		err = json.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", filepath.Base(cleanPath), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that set values are usable.
func (c *PlotConfig) Validate() error {
	if c.Window != nil && *c.Window < 1 {
		return fmt.Errorf("window must be at least 1, got %d", *c.Window)
	}
	if c.PanelWidth != nil && *c.PanelWidth <= 0 {
		return fmt.Errorf("panel_width must be positive, got %d", *c.PanelWidth)
	}
	if c.PanelHeight != nil && *c.PanelHeight <= 0 {
		return fmt.Errorf("panel_height must be positive, got %d", *c.PanelHeight)
	}
	if c.Timestamps != nil {
		if _, err := timeseries.ParseTimestampMode(*c.Timestamps); err != nil {
			return err
		}
	}
	if len(c.Palette) == 1 {
		return fmt.Errorf("palette needs at least two colours, got 1")
	}
	if err := chart.Palette(c.Palette).Validate(); err != nil {
		return err
	}
	return nil
}

// GetWindow returns the rolling-mean window or the default of 10.
func (c *PlotConfig) GetWindow() int {
	if c.Window == nil {
		return timeseries.DefaultWindow
	}
	return *c.Window
}

// GetPanelWidth returns the panel width in pixels.
func (c *PlotConfig) GetPanelWidth() int {
	if c.PanelWidth == nil {
		return chart.DefaultPanelWidth
	}
	return *c.PanelWidth
}

// GetPanelHeight returns the panel height in pixels.
func (c *PlotConfig) GetPanelHeight() int {
	if c.PanelHeight == nil {
		return chart.DefaultPanelHeight
	}
	return *c.PanelHeight
}

// GetTimestamps returns the timestamp mode, or fallback when unset.
func (c *PlotConfig) GetTimestamps(fallback timeseries.TimestampMode) timeseries.TimestampMode {
	if c.Timestamps == nil {
		return fallback
	}
	mode, err := timeseries.ParseTimestampMode(*c.Timestamps)
	if err != nil {
		return fallback
	}
	return mode
}

// GetPalette returns the configured palette or Dark2_5.
func (c *PlotConfig) GetPalette() chart.Palette {
	if len(c.Palette) == 0 {
		return chart.Dark2_5
	}
	return chart.Palette(c.Palette)
}

// GetAssetsHost returns the echarts assets host; empty means the CDN default.
func (c *PlotConfig) GetAssetsHost() string {
	if c.AssetsHost == nil {
		return ""
	}
	return *c.AssetsHost
}

// GetTheme returns the echarts theme name.
func (c *PlotConfig) GetTheme() string {
	if c.Theme == nil {
		return ""
	}
	return *c.Theme
}

// GetShow reports whether the artifact should be opened after rendering.
func (c *PlotConfig) GetShow() bool {
	if c.Show == nil {
		return false
	}
	return *c.Show
}

// SetWindow and friends let command-line flags override file values.
func (c *PlotConfig) SetWindow(v int)        { c.Window = &v }
func (c *PlotConfig) SetTimestamps(v string) { c.Timestamps = &v }
func (c *PlotConfig) SetShow(v bool)         { c.Show = &v }
