// Package texture decodes images into linear-light textures and samples them
// with the filtering and wrap rules the globe needs.
package texture

import (
	"image"
	"image/color"
	"math"
)

// Wrap selects how a coordinate outside [0, 1] is resolved.
type Wrap int

const (
	// WrapClamp repeats the edge texel.
	WrapClamp Wrap = iota
	// WrapRepeat tiles the texture.
	WrapRepeat
)

// Sampler returns a filtered color at normalized coordinates, origin top-left.
type Sampler interface {
	Sample(u, v float64) Color
}

// Texture is a decoded image held in linear premultiplied RGBA.
// It is read-only after construction and safe for concurrent sampling.
type Texture struct {
	Width  int
	Height int
	WrapU  Wrap
	WrapV  Wrap

	pix []Color // row-major, pix[y*Width+x]
}

// FromImage converts img into a texture, decoding sRGB to linear light.
func FromImage(img image.Image, wrapU, wrapV Wrap) *Texture {
	bounds := img.Bounds()
	t := &Texture{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		WrapU:  wrapU,
		WrapV:  wrapV,
		pix:    make([]Color, bounds.Dx()*bounds.Dy()),
	}

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			t.pix[i] = FromNRGBA(c)
			i++
		}
	}
	return t
}

// Equirectangular builds a globe map texture: longitude wraps, latitude clamps.
func Equirectangular(img image.Image) *Texture {
	return FromImage(img, WrapRepeat, WrapClamp)
}

// At returns the texel at integer coordinates, applying the wrap rules.
func (t *Texture) At(x, y int) Color {
	if t.Width == 0 || t.Height == 0 {
		return Transparent
	}
	x = resolve(x, t.Width, t.WrapU)
	y = resolve(y, t.Height, t.WrapV)
	return t.pix[y*t.Width+x]
}

// Sample returns the bilinearly filtered color at (u, v).
// Texel centers sit at (i+0.5)/size, matching GPU samplers.
func (t *Texture) Sample(u, v float64) Color {
	if t.Width == 0 || t.Height == 0 {
		return Transparent
	}
	if math.IsNaN(u) || math.IsInf(u, 0) {
		u = 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	if t.WrapU == WrapRepeat {
		u -= math.Floor(u)
	}
	if t.WrapV == WrapRepeat {
		v -= math.Floor(v)
	}

	x := u*float64(t.Width) - 0.5
	y := v*float64(t.Height) - 0.5
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	fx := x - x0
	fy := y - y0
	ix, iy := int(x0), int(y0)

	top := Lerp(fx, t.At(ix, iy), t.At(ix+1, iy))
	bottom := Lerp(fx, t.At(ix, iy+1), t.At(ix+1, iy+1))
	return Lerp(fy, top, bottom)
}

func resolve(i, size int, wrap Wrap) int {
	if wrap == WrapRepeat {
		i %= size
		if i < 0 {
			i += size
		}
		return i
	}
	if i < 0 {
		return 0
	}
	if i >= size {
		return size - 1
	}
	return i
}

// Solid is a sampler that returns the same color everywhere.
type Solid Color

// Sample implements Sampler.
func (s Solid) Sample(u, v float64) Color {
	return Color(s)
}
