package texture

import (
	"math"
	"sync"
)

var (
	decodeOnce sync.Once
	decodeLUT  [256]float64
)

// DecodeSRGB converts an 8-bit sRGB channel value to linear light.
func DecodeSRGB(v uint8) float64 {
	decodeOnce.Do(func() {
		for i := range decodeLUT {
			decodeLUT[i] = srgbToLinear(float64(i) / 255)
		}
	})
	return decodeLUT[v]
}

// EncodeSRGB converts a linear-light channel value in [0, 1] to 8-bit sRGB.
func EncodeSRGB(v float64) uint8 {
	return uint8(math.Round(clamp01(linearToSRGB(v)) * 255))
}

func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func linearToSRGB(c float64) float64 {
	if c <= 0.0031308 {
		return c * 12.92
	}
	return 1.055*math.Pow(c, 1/2.4) - 0.055
}
