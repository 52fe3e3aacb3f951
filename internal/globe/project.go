package globe

import (
	"math"

	gmath "github.com/Faultbox/global-clock/pkg/math"
)

// Projection is the result of mapping a fragment onto the globe.
type Projection struct {
	Longitude float64 // radians
	Latitude  float64 // radians
	Radius    float64 // distance from the disk center, 1 at the rim
}

// Inside reports whether the fragment lies on the globe disk.
func (p Projection) Inside() bool {
	return p.Radius <= 1
}

// Project maps a fragment at texture-space (u, v), origin top-left, onto the
// globe using an azimuthal projection centered on the pole at MinLatitude.
// Longitude grows clockwise on screen.
func Project(u, v float64, p Parameters) Projection {
	x := 2*u - 1
	y := 1 - 2*v
	radius := math.Hypot(x, y)

	return Projection{
		Longitude: -math.Atan2(y, x),
		Latitude:  LatitudeAt(radius, p),
		Radius:    radius,
	}
}

// LatitudeAt evaluates the two-segment radius to latitude curve through
// (0, MinLatitude), Deflection and (1, MaxLatitude). A deflection radius
// outside (0, 1) collapses the curve to one segment from MinLatitude to
// MaxLatitude.
func LatitudeAt(radius float64, p Parameters) float64 {
	d := p.Deflection
	if !(d.X > 0 && d.X < 1) {
		return gmath.Lerp(radius, p.MinLatitude, p.MaxLatitude)
	}
	if radius < d.X {
		return gmath.Lerp(radius/d.X, p.MinLatitude, d.Y)
	}
	return gmath.Lerp((radius-d.X)/(1-d.X), d.Y, p.MaxLatitude)
}

// GlobeRay returns the unit vector for a longitude/latitude in the globe
// frame: equator in the XY plane, +Z toward the geographic north pole.
func GlobeRay(longitude, latitude float64) gmath.Vec3 {
	cosLat := math.Cos(latitude)
	return gmath.Vec3{
		X: cosLat * math.Cos(longitude),
		Y: cosLat * math.Sin(longitude),
		Z: math.Sin(latitude),
	}
}

// SampleCoords returns the equirectangular texture coordinates for a screen
// longitude/latitude under the given rotation. U is not wrapped; samplers
// repeat horizontally.
func SampleCoords(longitude, latitude, rotation float64) (u, v float64) {
	u = (longitude - gmath.WrapAngle(rotation)) / gmath.Tau
	v = 0.5 - latitude/math.Pi
	return u, v
}

// InverseSampleCoords recovers the screen longitude (in [0, 2π)) and
// latitude from texture coordinates under the given rotation.
func InverseSampleCoords(u, v, rotation float64) (longitude, latitude float64) {
	longitude = gmath.WrapAngle(u*gmath.Tau + gmath.WrapAngle(rotation))
	latitude = (0.5 - v) * math.Pi
	return longitude, latitude
}
