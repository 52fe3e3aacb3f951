// Package clockface draws the 24-hour dial overlaid on the globe: quadrant
// ticks plus an hour hand that turns once a day and a minute hand that turns
// once an hour.
package clockface

import (
	"image"
	"image/color"
	"math"
	"time"

	gmath "github.com/Faultbox/global-clock/pkg/math"
)

// Config describes the dial geometry. Lengths are in normalized disk units
// (the globe rim is 1.0).
type Config struct {
	Size int // overlay width and height in pixels

	MajorTicks int // ticks around the dial, starting at +X
	MinorTicks int // ticks between two major ticks

	MajorInnerRadius float64
	MajorOuterRadius float64
	MinorInnerRadius float64
	MinorOuterRadius float64

	MajorWidth float64 // major ticks and the hour hand
	MinorWidth float64 // minor ticks and the minute hand

	HourHandLength   float64
	MinuteHandLength float64

	Color color.NRGBA
}

// DefaultConfig returns the standard dial: 4 major and 5 minor ticks per
// quadrant, drawn in half-transparent white on a 1024x1024 overlay.
func DefaultConfig() Config {
	return Config{
		Size:             1024,
		MajorTicks:       4,
		MinorTicks:       5,
		MajorInnerRadius: 0.85,
		MajorOuterRadius: 0.95,
		MinorInnerRadius: 0.9,
		MinorOuterRadius: 0.95,
		MajorWidth:       0.02,
		MinorWidth:       0.015,
		HourHandLength:   0.4,
		MinuteHandLength: 0.6,
		Color:            color.NRGBA{R: 255, G: 255, B: 255, A: 128},
	}
}

// HandAngles returns the clockwise angles from 12 o'clock of the 24-hour hand
// and the minute hand for the wall-clock time of t in its own location.
func HandAngles(t time.Time) (hour, minute float64) {
	h, m, s := t.Clock()
	secs := float64(h*3600+m*60+s) + float64(t.Nanosecond())/1e9
	return secs / 86400 * gmath.Tau, math.Mod(secs, 3600) / 3600 * gmath.Tau
}

// HandDirection returns the unit vector (Y up) of a hand at the given
// clockwise angle from 12 o'clock.
func HandDirection(angle float64) gmath.Vec2 {
	return gmath.Vec2{X: math.Sin(angle), Y: math.Cos(angle)}
}

// TickAngles returns the angles of the major and minor ticks, counter-clockwise
// from +X.
func (c Config) TickAngles() (major, minor []float64) {
	if c.MajorTicks <= 0 {
		return nil, nil
	}
	step := gmath.Tau / float64(c.MajorTicks)
	for i := 0; i < c.MajorTicks; i++ {
		start := float64(i) * step
		major = append(major, start)
		for j := 1; j <= c.MinorTicks; j++ {
			minor = append(minor, start+float64(j)/float64(c.MinorTicks+1)*step)
		}
	}
	return major, minor
}

// Bounds returns the overlay image rectangle.
func (c Config) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.Size, c.Size)
}
