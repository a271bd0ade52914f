// Package chart builds raw-plus-rolling-mean panels from telemetry tables and
// renders stacked or gridded compositions of them to HTML (go-echarts) or
// images (gonum/plot).
package chart

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Palette is a fixed, ordered list of hex colours.
type Palette []string

// Dark2_5 is the default palette, the first five colours of ColorBrewer's
// Dark2 qualitative scheme.
var Dark2_5 = Palette{"#1b9e77", "#d95f02", "#7570b3", "#e7298a", "#66a61e"}

// Cycle returns a fresh round-robin iterator starting at the first colour.
func (p Palette) Cycle() *ColorCycle {
	if len(p) == 0 {
		p = Dark2_5
	}
	return &ColorCycle{palette: p}
}

// Validate checks that every entry is a #rgb or #rrggbb hex colour.
func (p Palette) Validate() error {
	for i, c := range p {
		if _, err := ParseHex(c); err != nil {
			return fmt.Errorf("palette entry %d: %w", i, err)
		}
	}
	return nil
}

// ColorCycle hands out palette colours in order, wrapping at the end.
type ColorCycle struct {
	palette Palette
	next    int
}

// Next returns the next colour.
func (c *ColorCycle) Next() string {
	col := c.palette[c.next]
	c.next = (c.next + 1) % len(c.palette)
	return col
}

// ParseHex converts "#rrggbb" or "#rgb" into an opaque colour.
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex colour %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
