package voxel

import (
	"fmt"
	"strconv"
)

// Color is an opaque RGB voxel colour.
type Color struct {
	R, G, B uint8
}

var (
	// DefaultColor is the paint colour a new editor starts with.
	DefaultColor = Color{0x99, 0x32, 0xCC}
	// BaseColor is the initial colour of the base voxel.
	BaseColor = Color{0xFF, 0xFF, 0xFF}
)

// ParseColor parses a "#RRGGBB" hex string.
func ParseColor(hex string) (Color, error) {
	if len(hex) != 7 || hex[0] != '#' {
		return Color{}, fmt.Errorf("invalid hex color %q", hex)
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// MustParseColor is ParseColor for package-level literals.
func MustParseColor(hex string) Color {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c Color) String() string { return c.Hex() }

// RGBA returns normalised components with full alpha.
func (c Color) RGBA() [4]float32 {
	return [4]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, 1}
}
