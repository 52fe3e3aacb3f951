package viewport

import (
	"math"
	"testing"

	gmath "github.com/Faultbox/global-clock/pkg/math"
)

func TestNewSquare(t *testing.T) {
	v := New(720, 720)
	if v.Projection() != gmath.Identity() {
		t.Errorf("square target should use identity, got %v", v.Projection())
	}
	w, h := v.Size()
	if w != 720 || h != 720 {
		t.Errorf("size = %dx%d", w, h)
	}
}

func TestResize(t *testing.T) {
	v := New(800, 400)
	p := v.Projection()
	if math.Abs(float64(p[0])-0.5) > 1e-6 || math.Abs(float64(p[5])-1) > 1e-6 {
		t.Errorf("wide projection = %v", p)
	}

	if v.Resize(800, 400) {
		t.Error("same size reported as a change")
	}
	if !v.Resize(400, 800) {
		t.Error("new size not reported")
	}
	p = v.Projection()
	if math.Abs(float64(p[0])-1) > 1e-6 || math.Abs(float64(p[5])-0.5) > 1e-6 {
		t.Errorf("tall projection = %v", p)
	}
}

func TestResizeDegenerate(t *testing.T) {
	v := New(0, 0)
	if v.Projection() != gmath.Identity() {
		t.Error("empty target should fall back to identity")
	}
	if got := v.PixelToNDC(0, 0); got != (gmath.Vec2{}) {
		t.Errorf("PixelToNDC on empty target = %v", got)
	}
}

func TestPixelToNDC(t *testing.T) {
	v := New(4, 2)
	tests := []struct {
		x, y int
		want gmath.Vec2
	}{
		{0, 0, gmath.Vec2{X: -0.75, Y: 0.5}},
		{3, 1, gmath.Vec2{X: 0.75, Y: -0.5}},
	}
	for _, tt := range tests {
		if got := v.PixelToNDC(tt.x, tt.y); got.Sub(tt.want).Length() > 1e-12 {
			t.Errorf("PixelToNDC(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestQuadUV(t *testing.T) {
	tests := []struct {
		p    gmath.Vec2
		u, v float64
	}{
		{gmath.Vec2{X: -1, Y: 1}, 0, 0},
		{gmath.Vec2{X: 1, Y: -1}, 1, 1},
		{gmath.Vec2{}, 0.5, 0.5},
	}
	for _, tt := range tests {
		u, v := QuadUV(tt.p)
		if u != tt.u || v != tt.v {
			t.Errorf("QuadUV(%v) = (%v, %v), want (%v, %v)", tt.p, u, v, tt.u, tt.v)
		}
	}
}
