// Package lighting provides the point-light sun model used to shade the globe.
package lighting

import (
	"math"

	gmath "github.com/Faultbox/global-clock/pkg/math"
)

// SunRay returns the unit direction toward the sun for the given axial tilt
// (radians). The sun lies in the plane perpendicular to the viewer axis,
// raised out of the equatorial plane by the tilt.
func SunRay(axialTilt float64) gmath.Vec3 {
	return gmath.Vec3{
		X: 0,
		Y: math.Cos(axialTilt),
		Z: math.Sin(axialTilt),
	}
}

// Sigmoid is the logistic function 1/(1+e^-z).
func Sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// TerminatorBlend maps the cosine between a surface normal and the sun ray to
// a day weight in (0, 1). Higher sharpness narrows the twilight band.
func TerminatorBlend(cosine, sharpness float64) float64 {
	return Sigmoid(sharpness * cosine)
}

// Lambert returns the diffuse factor max(0, cosine).
func Lambert(cosine float64) float64 {
	return math.Max(0, cosine)
}
