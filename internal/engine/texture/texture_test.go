package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"
)

// stripes builds a 4x2 image whose columns are black, white, black, white.
func stripes() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			v := uint8(0)
			if x%2 == 1 {
				v = 255
			}
			img.SetNRGBA(x, y, color.NRGBA{v, v, v, 255})
		}
	}
	return img
}

func near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestSampleTexelCenters(t *testing.T) {
	tex := Equirectangular(stripes())

	tests := []struct {
		u    float64
		want float64
	}{
		{0.125, 0}, // center of column 0
		{0.375, 1}, // center of column 1
		{0.25, 0.5},
	}
	for _, tt := range tests {
		got := tex.Sample(tt.u, 0.5)
		if !near(got.R, tt.want, 1e-9) {
			t.Errorf("Sample(%v, 0.5).R = %v, want %v", tt.u, got.R, tt.want)
		}
	}
}

func TestSampleWrapsHorizontally(t *testing.T) {
	tex := Equirectangular(stripes())

	// Between the last column (white) and the first column (black).
	got := tex.Sample(1.0, 0.5)
	if !near(got.R, 0.5, 1e-9) {
		t.Errorf("Sample at seam = %v, want 0.5", got.R)
	}

	for _, u := range []float64{0.1, 0.3, 0.77} {
		a := tex.Sample(u, 0.25)
		b := tex.Sample(u+3, 0.25)
		c := tex.Sample(u-1, 0.25)
		if !near(a.R, b.R, 1e-9) || !near(a.R, c.R, 1e-9) {
			t.Errorf("Sample not periodic at u=%v: %v %v %v", u, a.R, b.R, c.R)
		}
	}
}

func TestSampleClampsVertically(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	img.SetNRGBA(0, 0, color.NRGBA{255, 255, 255, 255})
	img.SetNRGBA(0, 1, color.NRGBA{0, 0, 0, 255})
	tex := Equirectangular(img)

	if got := tex.Sample(0.5, -3); got.R != 1 {
		t.Errorf("above top edge: got %v, want 1", got.R)
	}
	if got := tex.Sample(0.5, 0); got.R != 1 {
		t.Errorf("top edge: got %v, want 1", got.R)
	}
	if got := tex.Sample(0.5, 1); got.R != 0 {
		t.Errorf("bottom edge: got %v, want 0", got.R)
	}
}

func TestSampleNaN(t *testing.T) {
	tex := Equirectangular(stripes())
	got := tex.Sample(math.NaN(), math.Inf(1))
	if math.IsNaN(got.R) || math.IsNaN(got.A) {
		t.Errorf("NaN coordinates produced NaN color: %+v", got)
	}
}

func TestEmptyTexture(t *testing.T) {
	var tex Texture
	if got := tex.Sample(0.5, 0.5); got != Transparent {
		t.Errorf("empty texture sample = %+v, want transparent", got)
	}
}

func TestSolid(t *testing.T) {
	s := Solid(White)
	if got := s.Sample(12, -4); got != White {
		t.Errorf("Solid.Sample = %+v, want white", got)
	}
}

func TestSRGBRoundTrip(t *testing.T) {
	for i := 0; i < 256; i++ {
		lin := DecodeSRGB(uint8(i))
		if got := EncodeSRGB(lin); got != uint8(i) {
			t.Fatalf("EncodeSRGB(DecodeSRGB(%d)) = %d", i, got)
		}
	}
	if DecodeSRGB(0) != 0 || DecodeSRGB(255) != 1 {
		t.Error("sRGB endpoints should map to 0 and 1")
	}
}

func TestColorOver(t *testing.T) {
	half := Color{0.5, 0.5, 0.5, 0.5} // premultiplied 50% white
	got := Over(half, Black)
	want := Color{0.5, 0.5, 0.5, 1}
	if got != want {
		t.Errorf("Over = %+v, want %+v", got, want)
	}
	if Over(Transparent, Black) != Black {
		t.Error("transparent over black should be black")
	}
}

func TestColorNRGBA(t *testing.T) {
	if got := White.NRGBA(); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("White.NRGBA() = %v", got)
	}
	if got := (Color{math.NaN(), 2, -1, 1}).NRGBA(); got != (color.NRGBA{0, 255, 0, 255}) {
		t.Errorf("out-of-range NRGBA = %v", got)
	}
	if got := Transparent.NRGBA(); got != (color.NRGBA{}) {
		t.Errorf("Transparent.NRGBA() = %v", got)
	}
}

func TestDecodePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, stripes()); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	img, err := Decode(buf.Bytes(), "day.png")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 2 {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode([]byte("not an image"), "night.jpg"); err == nil {
		t.Error("expected error decoding garbage")
	}
}

func TestDownscale(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 400, 200))
	got := Downscale(src, 100)
	if got.Bounds().Dx() != 100 || got.Bounds().Dy() != 50 {
		t.Errorf("Downscale bounds = %v, want 100x50", got.Bounds())
	}
	if Downscale(src, 0) != image.Image(src) {
		t.Error("maxWidth 0 should keep the image")
	}
	if Downscale(src, 800) != image.Image(src) {
		t.Error("small image should be kept")
	}
}

func TestToNRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(2, 3, 6, 5))
	src.Set(2, 3, color.RGBA{255, 0, 0, 255})
	got := ToNRGBA(src)
	if got.Rect.Min != (image.Point{}) {
		t.Errorf("origin = %v, want (0,0)", got.Rect.Min)
	}
	if c := got.NRGBAAt(0, 0); c != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("first pixel = %v", c)
	}
}
