package clockface

import (
	"image"
	"math"
	"time"

	"golang.org/x/image/vector"

	gmath "github.com/Faultbox/global-clock/pkg/math"
)

// capSegments is the number of edges used for each round line cap.
const capSegments = 12

// Face rasterizes the dial into a reusable RGBA image. Not safe for
// concurrent use.
type Face struct {
	cfg Config
	img *image.RGBA
	z   *vector.Rasterizer
	src *image.Uniform

	majorTicks []float64
	minorTicks []float64
}

// New creates a dial renderer. A non-positive size falls back to the default.
func New(cfg Config) *Face {
	if cfg.Size <= 0 {
		cfg.Size = DefaultConfig().Size
	}
	major, minor := cfg.TickAngles()
	return &Face{
		cfg:        cfg,
		img:        image.NewRGBA(cfg.Bounds()),
		z:          vector.NewRasterizer(cfg.Size, cfg.Size),
		src:        image.NewUniform(cfg.Color),
		majorTicks: major,
		minorTicks: minor,
	}
}

// Config returns the dial configuration.
func (f *Face) Config() Config {
	return f.cfg
}

// Image returns the most recently drawn overlay.
func (f *Face) Image() *image.RGBA {
	return f.img
}

// Draw redraws the dial for the local time t and returns the overlay.
// The returned image is reused by the next call.
func (f *Face) Draw(t time.Time) *image.RGBA {
	clear(f.img.Pix)

	f.z.Reset(f.cfg.Size, f.cfg.Size)
	for _, a := range f.majorTicks {
		f.line(gmath.Polar(f.cfg.MajorInnerRadius, a), gmath.Polar(f.cfg.MajorOuterRadius, a), f.cfg.MajorWidth)
	}
	f.fill()

	f.z.Reset(f.cfg.Size, f.cfg.Size)
	for _, a := range f.minorTicks {
		f.line(gmath.Polar(f.cfg.MinorInnerRadius, a), gmath.Polar(f.cfg.MinorOuterRadius, a), f.cfg.MinorWidth)
	}
	f.fill()

	hour, minute := HandAngles(t)

	f.z.Reset(f.cfg.Size, f.cfg.Size)
	f.line(gmath.Vec2{}, HandDirection(hour).Scale(f.cfg.HourHandLength), f.cfg.MajorWidth)
	f.fill()

	f.z.Reset(f.cfg.Size, f.cfg.Size)
	f.line(gmath.Vec2{}, HandDirection(minute).Scale(f.cfg.MinuteHandLength), f.cfg.MinorWidth)
	f.fill()

	return f.img
}

func (f *Face) fill() {
	f.z.Draw(f.img, f.img.Bounds(), f.src, image.Point{})
}

// line adds a round-capped segment from a to b (normalized, Y up) to the
// current path.
func (f *Face) line(a, b gmath.Vec2, width float64) {
	for i, p := range capsule(a, b, width/2) {
		x, y := f.toPixel(p)
		if i == 0 {
			f.z.MoveTo(x, y)
		} else {
			f.z.LineTo(x, y)
		}
	}
	f.z.ClosePath()
}

// toPixel maps normalized coordinates (-1..1, Y up) to image pixels.
func (f *Face) toPixel(p gmath.Vec2) (float32, float32) {
	half := float64(f.cfg.Size) / 2
	return float32((p.X + 1) * half), float32((1 - p.Y) * half)
}

// capsule returns the outline of a segment widened by radius with round caps.
// A zero-length segment yields a circle.
func capsule(a, b gmath.Vec2, radius float64) []gmath.Vec2 {
	dir := b.Sub(a).Normalize()
	if dir == (gmath.Vec2{}) {
		dir = gmath.Vec2{X: 1}
	}
	side := dir.Perp()
	start := math.Atan2(side.Y, side.X)

	pts := make([]gmath.Vec2, 0, 2*(capSegments+1))
	for i := 0; i <= capSegments; i++ {
		pts = append(pts, b.Add(gmath.Polar(radius, start-math.Pi*float64(i)/capSegments)))
	}
	for i := 0; i <= capSegments; i++ {
		pts = append(pts, a.Add(gmath.Polar(radius, start+math.Pi-math.Pi*float64(i)/capSegments)))
	}
	return pts
}
