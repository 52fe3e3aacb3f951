package raster

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"testing"

	"github.com/Faultbox/global-clock/internal/engine/texture"
	"github.com/Faultbox/global-clock/internal/engine/viewport"
	"github.com/Faultbox/global-clock/internal/globe"
)

func testRenderer(workers int) *Renderer {
	shader := globe.NewShader(texture.Solid(texture.White), texture.Solid(texture.FromRGB(0, 0, 64)))
	return New(shader, workers)
}

func near(a, b color.NRGBA, tol int) bool {
	d := func(x, y uint8) bool {
		diff := int(x) - int(y)
		return diff >= -tol && diff <= tol
	}
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func TestRenderMatchesShader(t *testing.T) {
	r := testRenderer(2)
	params := globe.DefaultParameters()
	params.Rotation = 1.1
	params.AxialTilt = 0.3

	img, err := r.RenderImage(context.Background(), 64, 64, Scene{Params: params})
	if err != nil {
		t.Fatalf("RenderImage: %v", err)
	}

	vp := viewport.New(64, 64)
	for _, px := range [][2]int{{32, 32}, {10, 40}, {50, 20}, {32, 2}} {
		u, v := viewport.QuadUV(vp.PixelToNDC(px[0], px[1]))
		want := r.Shader().Fragment(u, v, params).NRGBA()
		if got := img.NRGBAAt(px[0], px[1]); !near(got, want, 1) {
			t.Errorf("pixel %v = %v, want %v", px, got, want)
		}
	}
}

func TestRenderBackgroundOutsideDisk(t *testing.T) {
	r := testRenderer(0)
	img, err := r.RenderImage(context.Background(), 32, 32, Scene{Params: globe.DefaultParameters()})
	if err != nil {
		t.Fatalf("RenderImage: %v", err)
	}
	black := color.NRGBA{A: 255}
	for _, px := range [][2]int{{0, 0}, {31, 0}, {0, 31}, {31, 31}} {
		if got := img.NRGBAAt(px[0], px[1]); got != black {
			t.Errorf("corner %v = %v, want opaque black", px, got)
		}
	}
}

func TestRenderLetterbox(t *testing.T) {
	r := testRenderer(4)
	params := globe.DefaultParameters()

	wide, err := r.RenderImage(context.Background(), 128, 64, Scene{Params: params})
	if err != nil {
		t.Fatalf("RenderImage: %v", err)
	}
	square, err := r.RenderImage(context.Background(), 64, 64, Scene{Params: params})
	if err != nil {
		t.Fatalf("RenderImage: %v", err)
	}

	if got := wide.NRGBAAt(5, 32); got != (color.NRGBA{A: 255}) {
		t.Errorf("letterbox pixel = %v, want background", got)
	}
	if a, b := wide.NRGBAAt(64, 32), square.NRGBAAt(32, 32); !near(a, b, 1) {
		t.Errorf("centers differ: wide %v, square %v", a, b)
	}
}

func TestRenderOverlay(t *testing.T) {
	r := testRenderer(1)
	overlay := texture.Solid(texture.Color{R: 0.5, G: 0.5, B: 0.5, A: 0.5})
	img, err := r.RenderImage(context.Background(), 16, 16, Scene{
		Params:  globe.DefaultParameters(),
		Overlay: overlay,
	})
	if err != nil {
		t.Fatalf("RenderImage: %v", err)
	}
	want := color.NRGBA{R: texture.EncodeSRGB(0.5), G: texture.EncodeSRGB(0.5), B: texture.EncodeSRGB(0.5), A: 255}
	if got := img.NRGBAAt(0, 0); got != want {
		t.Errorf("overlay over background = %v, want %v", got, want)
	}
}

func TestRenderWorkerCountDoesNotChangeOutput(t *testing.T) {
	params := globe.DefaultParameters()
	params.Rotation = 2.5
	params.AxialTilt = -0.4

	one, err := testRenderer(1).RenderImage(context.Background(), 48, 40, Scene{Params: params})
	if err != nil {
		t.Fatal(err)
	}
	many, err := testRenderer(8).RenderImage(context.Background(), 48, 40, Scene{Params: params})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(one.Pix, many.Pix) {
		t.Error("output depends on the worker count")
	}
}

func TestRenderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := testRenderer(2).RenderImage(ctx, 32, 32, Scene{Params: globe.DefaultParameters()})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestNewDefaultsWorkers(t *testing.T) {
	if testRenderer(0).Workers() < 1 {
		t.Error("expected at least one worker")
	}
}
