// Package ephemeris derives the globe's per-frame rotation and axial tilt
// from wall-clock time.
//
// Convention: the disk is centered on the south pole, the meridian at local
// midnight points up and the subsolar meridian points down, and the Earth
// turns clockwise on screen.
package ephemeris

import (
	"fmt"
	"math"
	"strings"
	"time"

	gmath "github.com/Faultbox/global-clock/pkg/math"
)

const (
	secondsPerDay = 86400

	// RotationPhase aligns rotation 0 with the screen frame: at 00:00 UTC
	// the prime meridian must sit at the top of the disk.
	RotationPhase = math.Pi / 2

	// FixedAxialTilt is the mean obliquity of the ecliptic, 23.44°.
	FixedAxialTilt = 23.44 * math.Pi / 180

	// SeasonalAmplitude is the peak tilt of the seasonal model, 23.4°.
	SeasonalAmplitude = 23.4 * math.Pi / 180

	daysPerYear = 365.0
	// equinoxOffset shifts day-of-year 0 so the sinusoid crosses zero near
	// the March equinox (about March 20).
	equinoxOffset = -78.0
)

// TiltMode selects how the axial tilt is computed.
type TiltMode int

const (
	// TiltSeasonal follows the day of year: zero at the equinoxes, maximal
	// at the solstices.
	TiltSeasonal TiltMode = iota
	// TiltFixed uses FixedAxialTilt regardless of date.
	TiltFixed
	// TiltNone disables the tilt (permanent equinox).
	TiltNone
)

// String returns the config name of the mode.
func (m TiltMode) String() string {
	switch m {
	case TiltSeasonal:
		return "seasonal"
	case TiltFixed:
		return "fixed"
	case TiltNone:
		return "none"
	default:
		return fmt.Sprintf("TiltMode(%d)", int(m))
	}
}

// ParseTiltMode parses "seasonal", "fixed" or "none".
func ParseTiltMode(s string) (TiltMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "seasonal", "":
		return TiltSeasonal, nil
	case "fixed":
		return TiltFixed, nil
	case "none", "off":
		return TiltNone, nil
	default:
		return 0, fmt.Errorf("unknown tilt mode %q (want seasonal, fixed or none)", s)
	}
}

// DayFraction returns the time of day of t in its own location as a fraction
// of 24 hours, in [0, 1).
func DayFraction(t time.Time) float64 {
	h, m, s := t.Clock()
	secs := float64(h*3600+m*60+s) + float64(t.Nanosecond())/1e9
	return secs / secondsPerDay
}

// Rotation returns the Earth rotation angle for instant t in [0, 2π).
// It depends only on the UTC time of day.
func Rotation(t time.Time) float64 {
	return gmath.WrapAngle(gmath.Tau*DayFraction(t.UTC()) + RotationPhase)
}

// AxialTilt returns the sun's declination for instant t under the given mode.
func AxialTilt(t time.Time, mode TiltMode) float64 {
	switch mode {
	case TiltFixed:
		return FixedAxialTilt
	case TiltNone:
		return 0
	default:
		day := float64(t.UTC().YearDay() - 1)
		return SeasonalAmplitude * math.Sin((day+equinoxOffset)/daysPerYear*gmath.Tau)
	}
}
