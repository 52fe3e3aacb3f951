// Package raster is the CPU backend: it evaluates the globe pipeline for every
// pixel of an image, spreading row bands across a bounded worker group.
package raster

import (
	"context"
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/global-clock/internal/engine/texture"
	"github.com/Faultbox/global-clock/internal/engine/viewport"
	"github.com/Faultbox/global-clock/internal/globe"
	gmath "github.com/Faultbox/global-clock/pkg/math"
)

// bandRows is the number of rows handed to a worker at a time.
const bandRows = 16

// Renderer draws frames on the CPU. It is safe for concurrent use as long as
// callers render into different images.
type Renderer struct {
	shader  *globe.Shader
	workers int
}

// New creates a renderer. workers <= 0 uses GOMAXPROCS.
func New(shader *globe.Shader, workers int) *Renderer {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Renderer{shader: shader, workers: workers}
}

// Workers returns the worker limit.
func (r *Renderer) Workers() int {
	return r.workers
}

// Shader returns the shader used for the globe pass.
func (r *Renderer) Shader() *globe.Shader {
	return r.shader
}

// Scene is one frame's input.
type Scene struct {
	Params globe.Parameters
	// Overlay is drawn on the viewport square above the globe. Optional.
	Overlay texture.Sampler
}

// pass is the per-frame state shared by the workers.
type pass struct {
	shader     *globe.Shader
	vp         *viewport.Viewport
	params     globe.Parameters
	overlay    texture.Sampler
	globeInv   gmath.Mat4
	overlayInv gmath.Mat4
}

// Render fills dst with the frame. The viewport must match dst's size.
// Rendering stops early with ctx.Err() if the context is canceled.
func (r *Renderer) Render(ctx context.Context, dst *image.NRGBA, vp *viewport.Viewport, scene Scene) error {
	proj := vp.Projection()
	p := &pass{
		shader:     r.shader,
		vp:         vp,
		params:     scene.Params,
		overlay:    scene.Overlay,
		globeInv:   proj.Mul(scene.Params.LocalTransform).Inverse(),
		overlayInv: proj.Inverse(),
	}

	bounds := dst.Bounds()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for y0 := 0; y0 < bounds.Dy(); y0 += bandRows {
		y0 := y0
		y1 := min(y0+bandRows, bounds.Dy())
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for y := y0; y < y1; y++ {
				for x := 0; x < bounds.Dx(); x++ {
					dst.SetNRGBA(bounds.Min.X+x, bounds.Min.Y+y, p.pixel(x, y).NRGBA())
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// RenderImage allocates an image of the given size and renders into it.
func (r *Renderer) RenderImage(ctx context.Context, width, height int, scene Scene) (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	if err := r.Render(ctx, img, viewport.New(width, height), scene); err != nil {
		return nil, err
	}
	return img, nil
}

// pixel computes the final linear color of pixel (x, y): background, then the
// globe quad, then the overlay.
func (p *pass) pixel(x, y int) texture.Color {
	ndc := p.vp.PixelToNDC(x, y)
	c := p.shader.Tuning.Background

	if q := p.globeInv.TransformVec2(ndc); onQuad(q) {
		u, v := viewport.QuadUV(q)
		c = p.shader.Fragment(u, v, p.params)
	}

	if p.overlay != nil {
		if q := p.overlayInv.TransformVec2(ndc); onQuad(q) {
			u, v := viewport.QuadUV(q)
			c = texture.Over(p.overlay.Sample(u, v), c)
		}
	}
	return c
}

func onQuad(q gmath.Vec2) bool {
	return q.X >= -1 && q.X <= 1 && q.Y >= -1 && q.Y <= 1
}
