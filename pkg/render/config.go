// Package render implements the spinmesh rendering pipeline: rigid Euler
// rotation, pinhole perspective projection, Bresenham line rasterization,
// frame compositing, and terminal presentation, driven by a fixed-rate
// animation loop.
package render

import (
	"fmt"
	"image/color"
	"time"
	"unicode"
)

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// Config holds the fixed render parameters. They are set once before the
// animation loop starts and never mutated at runtime.
type Config struct {
	Width  int // canvas width in cells
	Height int // canvas height in cells

	ScaleX float64 // horizontal projection scale
	ScaleY float64 // vertical projection scale
	Dist   float64 // perspective distance (zoom)

	Char  rune          // fill character for covered cells
	Pause time.Duration // delay between frames

	// Rotation increments in radians per frame. Zero and negative values
	// are valid.
	SpeedX float64
	SpeedY float64
	SpeedZ float64

	// Ease springs each rotation speed up from rest instead of starting at
	// full rate.
	Ease bool
}

// DefaultConfig returns the render defaults: an 80x24 canvas, 20/10 scale,
// perspective distance 4, '#' fill, 50ms between frames, and rotation
// speeds 0.03/0.02/0.01.
func DefaultConfig() Config {
	return Config{
		Width:  80,
		Height: 24,
		ScaleX: 20,
		ScaleY: 10,
		Dist:   4,
		Char:   '#',
		Pause:  50 * time.Millisecond,
		SpeedX: 0.03,
		SpeedY: 0.02,
		SpeedZ: 0.01,
	}
}

// Validate reports the first configuration error, if any. A renderer must
// refuse to start on an invalid configuration.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("canvas size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Pause < 0 {
		return fmt.Errorf("pause must be non-negative, got %v", c.Pause)
	}
	if !unicode.IsPrint(c.Char) || c.Char == ' ' {
		return fmt.Errorf("fill character %q is not printable", c.Char)
	}
	return nil
}
