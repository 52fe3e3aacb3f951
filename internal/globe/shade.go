package globe

import (
	"github.com/Faultbox/global-clock/internal/engine/lighting"
	"github.com/Faultbox/global-clock/internal/engine/texture"
)

// Visual tuning constants. They are chosen by eye, not derived from physics.
const (
	DefaultTerminatorSharpness = 20.0
	DefaultAmbientWeight       = 0.7
	DefaultDiffuseWeight       = 0.3
)

// Tuning holds the shading knobs shared by the CPU and GPU paths.
type Tuning struct {
	// TerminatorSharpness multiplies the sun cosine before the sigmoid.
	TerminatorSharpness float64
	// AmbientWeight scales the day map in the ambient term.
	AmbientWeight float64
	// DiffuseWeight scales the day map in the Lambert term.
	DiffuseWeight float64
	// Background is returned for fragments off the disk.
	Background texture.Color
}

// DefaultTuning returns the reference look: sharpness 20, 0.7 ambient,
// 0.3 diffuse, opaque black background.
func DefaultTuning() Tuning {
	return Tuning{
		TerminatorSharpness: DefaultTerminatorSharpness,
		AmbientWeight:       DefaultAmbientWeight,
		DiffuseWeight:       DefaultDiffuseWeight,
		Background:          texture.Black,
	}
}

// Shader evaluates the illumination stage. Day and Night are equirectangular
// maps; they must repeat horizontally and clamp vertically. A Shader holds no
// mutable state and may be used from many goroutines.
type Shader struct {
	Day    texture.Sampler
	Night  texture.Sampler
	Tuning Tuning
}

// NewShader returns a shader with the default tuning.
func NewShader(day, night texture.Sampler) *Shader {
	return &Shader{Day: day, Night: night, Tuning: DefaultTuning()}
}

// Illumination is the lighting of one surface point.
type Illumination struct {
	Cosine float64 // dot(sun ray, globe ray)
	Blend  float64 // night (0) to day (1) weight
}

// Illuminate computes the sun cosine and the day/night blend for a point.
func (s *Shader) Illuminate(longitude, latitude, axialTilt float64) Illumination {
	cosine := lighting.SunRay(axialTilt).Dot(GlobeRay(longitude, latitude))
	return Illumination{
		Cosine: cosine,
		Blend:  lighting.TerminatorBlend(cosine, s.Tuning.TerminatorSharpness),
	}
}

// Shade returns the lit color of a point on the globe.
func (s *Shader) Shade(longitude, latitude float64, p Parameters) texture.Color {
	light := s.Illuminate(longitude, latitude, p.AxialTilt)
	u, v := SampleCoords(longitude, latitude, p.Rotation)
	day := s.Day.Sample(u, v)
	night := s.Night.Sample(u, v)

	ambient := texture.Lerp(light.Blend, night, day.Scale(s.Tuning.AmbientWeight))
	diffuse := day.Scale(s.Tuning.DiffuseWeight * lighting.Lambert(light.Cosine))
	return ambient.Add(diffuse)
}

// Fragment runs the full pipeline for a fragment at texture-space (u, v) on
// the globe quad. Fragments off the disk get the background color.
func (s *Shader) Fragment(u, v float64, p Parameters) texture.Color {
	proj := Project(u, v, p)
	if !proj.Inside() {
		return s.Tuning.Background
	}
	return s.Shade(proj.Longitude, proj.Latitude, p)
}
