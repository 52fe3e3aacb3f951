package texture

import (
	"image/color"
	"math"
)

// Color is a linear-light RGBA color with float components (0.0 to 1.0).
// Color channels are premultiplied by alpha.
type Color struct {
	R, G, B, A float64
}

// Predefined colors.
var (
	Transparent = Color{0, 0, 0, 0}
	Black       = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}
)

// Add returns c + other on the color channels, keeping c's alpha.
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B, c.A}
}

// Scale multiplies the color channels by s, leaving alpha alone.
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A}
}

// Lerp interpolates from a to b by t, alpha included. t is not clamped.
func Lerp(t float64, a, b Color) Color {
	return Color{
		R: a.R*(1-t) + b.R*t,
		G: a.G*(1-t) + b.G*t,
		B: a.B*(1-t) + b.B*t,
		A: a.A*(1-t) + b.A*t,
	}
}

// Over composites src over dst (premultiplied alpha).
func Over(src, dst Color) Color {
	k := 1 - src.A
	return Color{
		R: src.R + dst.R*k,
		G: src.G + dst.G*k,
		B: src.B + dst.B*k,
		A: src.A + dst.A*k,
	}
}

// Clamp limits every channel to [0, 1] and maps NaN to 0.
func (c Color) Clamp() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B), clamp01(c.A)}
}

// NRGBA encodes the color as 8-bit sRGB with straight alpha.
func (c Color) NRGBA() color.NRGBA {
	c = c.Clamp()
	if c.A == 0 {
		return color.NRGBA{}
	}
	return color.NRGBA{
		R: EncodeSRGB(c.R / c.A),
		G: EncodeSRGB(c.G / c.A),
		B: EncodeSRGB(c.B / c.A),
		A: uint8(math.Round(c.A * 255)),
	}
}

// FromRGB parses an 8-bit sRGB triple into an opaque linear color.
func FromRGB(r, g, b uint8) Color {
	return Color{DecodeSRGB(r), DecodeSRGB(g), DecodeSRGB(b), 1}
}

// FromNRGBA converts an 8-bit sRGB straight-alpha color to linear premultiplied.
func FromNRGBA(c color.NRGBA) Color {
	a := float64(c.A) / 255
	return Color{DecodeSRGB(c.R) * a, DecodeSRGB(c.G) * a, DecodeSRGB(c.B) * a, a}
}

func clamp01(x float64) float64 {
	if !(x > 0) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
