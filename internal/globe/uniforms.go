package globe

import (
	"encoding/binary"
	"math"

	gmath "github.com/Faultbox/global-clock/pkg/math"
)

// UniformsSize is the byte size of the std140 parameter block.
const UniformsSize = 96

// Uniforms is the fixed-size parameter block uploaded to the GPU once per
// frame. Field order and padding follow std140:
//
//	layout(std140) uniform Globe {
//	    mat4  uLocal;       // offset  0
//	    float uRotation;    // offset 64
//	    float uAxialTilt;   // offset 68
//	    float uMinLatitude; // offset 72
//	    float uMaxLatitude; // offset 76
//	    vec2  uDeflection;  // offset 80
//	};                      // size 96
type Uniforms struct {
	LocalTransform gmath.Mat4
	Rotation       float32
	AxialTilt      float32
	MinLatitude    float32
	MaxLatitude    float32
	Deflection     [2]float32
	_              [2]float32
}

// Uniforms packs the parameters for upload. Rotation is wrapped to [0, 2π)
// so the float32 conversion keeps its precision.
func (p Parameters) Uniforms() Uniforms {
	return Uniforms{
		LocalTransform: p.LocalTransform,
		Rotation:       float32(gmath.WrapAngle(p.Rotation)),
		AxialTilt:      float32(p.AxialTilt),
		MinLatitude:    float32(p.MinLatitude),
		MaxLatitude:    float32(p.MaxLatitude),
		Deflection:     [2]float32{float32(p.Deflection.X), float32(p.Deflection.Y)},
	}
}

// Bytes returns the little-endian std140 encoding of the block.
func (u Uniforms) Bytes() []byte {
	b := make([]byte, 0, UniformsSize)
	b = u.LocalTransform.AppendBytes(b)
	for _, f := range []float32{
		u.Rotation, u.AxialTilt, u.MinLatitude, u.MaxLatitude,
		u.Deflection[0], u.Deflection[1], 0, 0,
	} {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(f))
	}
	return b
}
