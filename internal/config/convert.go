package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Faultbox/global-clock/internal/clockface"
	"github.com/Faultbox/global-clock/internal/engine/texture"
	"github.com/Faultbox/global-clock/internal/ephemeris"
	"github.com/Faultbox/global-clock/internal/globe"
	gmath "github.com/Faultbox/global-clock/pkg/math"
)

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q (want #rrggbb)", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// TiltMode parses the configured tilt model.
func (g GlobeConfig) TiltMode() (ephemeris.TiltMode, error) {
	return ephemeris.ParseTiltMode(g.Tilt)
}

// Parameters converts the layout to projection parameters with no rotation
// or tilt.
func (g GlobeConfig) Parameters() globe.Parameters {
	p := globe.DefaultParameters()
	p.MinLatitude = gmath.Radians(g.MinLatitude)
	p.MaxLatitude = gmath.Radians(g.MaxLatitude)
	p.Deflection = gmath.Vec2{X: g.DeflectionRadius, Y: gmath.Radians(g.DeflectionLatitude)}
	if g.Scale > 0 && g.Scale != 1 {
		s := float32(g.Scale)
		p.LocalTransform = gmath.Scale(s, s, 1)
	}
	return p
}

// Tuning converts the shading settings. The background is always opaque; an
// unparsable one falls back to black.
func (r RenderConfig) Tuning() globe.Tuning {
	t := globe.Tuning{
		TerminatorSharpness: r.TerminatorSharpness,
		AmbientWeight:       r.AmbientWeight,
		DiffuseWeight:       r.DiffuseWeight,
		Background:          texture.Black,
	}
	if c, err := ParseHexColor(r.Background); err == nil {
		c.A = 0xff
		t.Background = texture.FromNRGBA(c)
	}
	return t
}

// FaceConfig converts the overlay settings to a dial configuration.
func (c ClockFaceConfig) FaceConfig() clockface.Config {
	fc := clockface.DefaultConfig()
	if c.Size > 0 {
		fc.Size = c.Size
	}
	if rgb, err := ParseHexColor(c.Color); err == nil {
		rgb.A = uint8(gmath.Clamp(c.Opacity, 0, 1)*255 + 0.5)
		fc.Color = rgb
	}
	return fc
}

// Instant parses the pinned instant. The zero time means "not pinned".
func (c ClockConfig) Instant() (time.Time, error) {
	if c.At == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, c.At)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %q: %w", c.At, err)
	}
	return t, nil
}

// Pinned reports whether the clock is frozen at a fixed instant.
func (c ClockConfig) Pinned() bool {
	return c.At != ""
}

// Location returns the dial time zone.
func (c ClockConfig) Location() (*time.Location, error) {
	if c.TimeZone == "" || strings.EqualFold(c.TimeZone, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(c.TimeZone)
}

// NewClock returns the real clock, or a fake clock frozen at the pinned
// instant.
func (c ClockConfig) NewClock() (clockwork.Clock, error) {
	at, err := c.Instant()
	if err != nil {
		return nil, err
	}
	if at.IsZero() {
		return clockwork.NewRealClock(), nil
	}
	return clockwork.NewFakeClockAt(at), nil
}
