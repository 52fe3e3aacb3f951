// Package viewport keeps the aspect-preserving projection shared by every
// pass of a frame.
package viewport

import (
	gmath "github.com/Faultbox/global-clock/pkg/math"
)

// Viewport maps the -1..1 scene square onto a render target without
// stretching it. The projection is recomputed only when the size changes.
type Viewport struct {
	width  int
	height int
	proj   gmath.Mat4
}

// New creates a viewport for a target of the given size.
func New(width, height int) *Viewport {
	v := &Viewport{}
	v.Resize(width, height)
	return v
}

// Resize updates the target size. It reports whether the projection changed.
func (v *Viewport) Resize(width, height int) bool {
	if width == v.width && height == v.height && v.proj != (gmath.Mat4{}) {
		return false
	}
	v.width = width
	v.height = height
	v.proj = gmath.AspectFit(width, height)
	return true
}

// Size returns the current target size.
func (v *Viewport) Size() (width, height int) {
	return v.width, v.height
}

// Projection returns the current projection matrix.
func (v *Viewport) Projection() gmath.Mat4 {
	return v.proj
}

// PixelToNDC returns the normalized device coordinates (Y up) of the center
// of pixel (x, y), row 0 at the top.
func (v *Viewport) PixelToNDC(x, y int) gmath.Vec2 {
	if v.width <= 0 || v.height <= 0 {
		return gmath.Vec2{}
	}
	return gmath.Vec2{
		X: (float64(x)+0.5)/float64(v.width)*2 - 1,
		Y: 1 - (float64(y)+0.5)/float64(v.height)*2,
	}
}

// QuadUV maps a point on the -1..1 quad (Y up) to quad texture
// coordinates, origin top-left.
func QuadUV(p gmath.Vec2) (u, v float64) {
	return (p.X + 1) / 2, (1 - p.Y) / 2
}
