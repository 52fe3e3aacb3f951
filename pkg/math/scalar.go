package math

import "math"

// Tau is a full turn in radians.
const Tau = 2 * math.Pi

// Lerp interpolates between a and b. t is not clamped.
func Lerp(t, a, b float64) float64 {
	return a*(1-t) + b*t
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// WrapAngle maps an angle in radians to [0, 2π).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, Tau)
	if a < 0 {
		a += Tau
	}
	return a
}

// Fract returns x - floor(x), always in [0, 1).
func Fract(x float64) float64 {
	f := x - math.Floor(x)
	if f >= 1 {
		return 0
	}
	return f
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
