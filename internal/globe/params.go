// Package globe implements the projection and illumination model of the
// globe clock: a screen-space fragment on the unit disk is mapped to a
// longitude/latitude on a tilted, rotating sphere, lit by a point sun and
// blended between day and night maps.
//
// Every function here is pure. A frame is described by a Parameters value
// passed explicitly; nothing reads ambient state.
package globe

import (
	"fmt"
	"math"

	gmath "github.com/Faultbox/global-clock/pkg/math"
)

// Parameters is the per-frame snapshot consumed by the pipeline.
type Parameters struct {
	// LocalTransform places and scales the globe quad in scene space.
	LocalTransform gmath.Mat4

	// Rotation of the Earth about its polar axis, radians. Taken mod 2π
	// when sampling.
	Rotation float64

	// AxialTilt in radians, positive when the north pole leans toward the sun.
	AxialTilt float64

	// MinLatitude is the latitude at the disk center, MaxLatitude at the rim.
	MinLatitude float64
	MaxLatitude float64

	// Deflection bends the radius to latitude curve: X is the radius
	// fraction in (0, 1), Y the latitude (radians) reached at that radius.
	Deflection gmath.Vec2
}

// DefaultParameters returns the south-pole-centered, equator-at-half-radius
// layout with the rim at the north pole and no rotation or tilt.
func DefaultParameters() Parameters {
	return Parameters{
		LocalTransform: gmath.Identity(),
		MinLatitude:    -math.Pi / 2,
		MaxLatitude:    math.Pi / 2,
		Deflection:     gmath.Vec2{X: 0.5, Y: 0},
	}
}

// Validate reports parameters outside their documented ranges. The pipeline
// still produces finite colors for invalid values; this is for hosts that
// want to warn about configuration mistakes.
func (p Parameters) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"rotation", p.Rotation},
		{"axial tilt", p.AxialTilt},
		{"min latitude", p.MinLatitude},
		{"max latitude", p.MaxLatitude},
		{"deflection radius", p.Deflection.X},
		{"deflection latitude", p.Deflection.Y},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%s is not finite", f.name)
		}
	}
	if p.Deflection.X <= 0 || p.Deflection.X >= 1 {
		return fmt.Errorf("deflection radius %g outside (0, 1); using a single segment", p.Deflection.X)
	}
	for _, lat := range []float64{p.MinLatitude, p.MaxLatitude, p.Deflection.Y} {
		if lat < -math.Pi/2 || lat > math.Pi/2 {
			return fmt.Errorf("latitude %g outside [-π/2, π/2]", lat)
		}
	}
	return nil
}
