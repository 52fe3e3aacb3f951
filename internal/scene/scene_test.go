package scene

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Faultbox/global-clock/internal/assets"
	"github.com/Faultbox/global-clock/internal/config"
	"github.com/Faultbox/global-clock/internal/engine/raster"
	"github.com/Faultbox/global-clock/internal/ephemeris"
)

func writePNG(t *testing.T, path string, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "day.png"), color.NRGBA{R: 200, G: 180, B: 90, A: 255})
	writePNG(t, filepath.Join(dir, "night.png"), color.NRGBA{R: 10, G: 10, B: 40, A: 255})

	cfg := config.Default()
	cfg.Textures.Roots = []string{dir}
	cfg.Textures.Day = "day.png"
	cfg.Textures.Night = "night.png"
	cfg.Clock.At = "2026-06-21T12:00:00Z"
	cfg.Clock.TimeZone = "UTC"
	cfg.ClockFace.Size = 64
	return cfg
}

func TestNewLoadsMaps(t *testing.T) {
	s, err := New(testConfig(t), assets.NewManager(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.Day.Rect.Dx() != 8 || s.Night.Rect.Dx() != 8 {
		t.Errorf("map widths = %d/%d, want 8", s.Day.Rect.Dx(), s.Night.Rect.Dx())
	}
	if s.Day.NRGBAAt(0, 0).R != 200 {
		t.Errorf("day pixel = %v", s.Day.NRGBAAt(0, 0))
	}
	if s.Face == nil {
		t.Error("clock face should be enabled by default")
	}
}

func TestNewFallsBackToPlaceholders(t *testing.T) {
	cfg := testConfig(t)
	cfg.Textures.Day = "missing.png"
	cfg.Textures.Night = ""
	cfg.Textures.Roots = append(cfg.Textures.Roots, filepath.Join(t.TempDir(), "gone"))

	s, err := New(cfg, assets.NewManager(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := s.Day.NRGBAAt(0, 0); got != PlaceholderDay {
		t.Errorf("day = %v, want placeholder", got)
	}
	if got := s.Night.NRGBAAt(0, 0); got != PlaceholderNight {
		t.Errorf("night = %v, want placeholder", got)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Globe.Tilt = "upside down"
	if _, err := New(cfg, assets.NewManager(), nil); err == nil {
		t.Error("expected tilt error")
	}

	cfg = testConfig(t)
	cfg.Clock.At = "noon"
	if _, err := New(cfg, assets.NewManager(), nil); err == nil {
		t.Error("expected clock error")
	}
}

func TestFrame(t *testing.T) {
	s, err := New(testConfig(t), assets.NewManager(), nil)
	if err != nil {
		t.Fatal(err)
	}

	f := s.Frame()
	at := time.Date(2026, 6, 21, 12, 0, 0, 0, time.UTC)
	if f.Params.Rotation != ephemeris.Rotation(at) {
		t.Errorf("rotation = %v, want %v", f.Params.Rotation, ephemeris.Rotation(at))
	}
	if f.Params.AxialTilt != ephemeris.AxialTilt(at, ephemeris.TiltSeasonal) {
		t.Errorf("tilt = %v", f.Params.AxialTilt)
	}
	if f.Local.Hour() != 12 {
		t.Errorf("local hour = %d, want 12", f.Local.Hour())
	}
	if f.Overlay == nil || f.Overlay.Rect.Dx() != 64 {
		t.Fatalf("overlay = %v", f.Overlay)
	}

	// The pinned clock does not move.
	if g := s.Frame(); g.Params.Rotation != f.Params.Rotation {
		t.Error("pinned clock drifted")
	}
}

func TestFrameWithoutFace(t *testing.T) {
	cfg := testConfig(t)
	cfg.ClockFace.Enabled = false
	s, err := New(cfg, assets.NewManager(), nil)
	if err != nil {
		t.Fatal(err)
	}
	f := s.Frame()
	if f.Overlay != nil {
		t.Error("overlay drawn while disabled")
	}
	if f.Raster().Overlay != nil {
		t.Error("raster overlay set while disabled")
	}
}

func TestRasterFrame(t *testing.T) {
	s, err := New(testConfig(t), assets.NewManager(), nil)
	if err != nil {
		t.Fatal(err)
	}
	r := raster.New(s.Shader, 2)
	img, err := r.RenderImage(context.Background(), 32, 32, s.Frame().Raster())
	if err != nil {
		t.Fatalf("RenderImage: %v", err)
	}
	if c := img.NRGBAAt(0, 0); c != (color.NRGBA{A: 255}) {
		t.Errorf("corner = %v, want background", c)
	}
	if c := img.NRGBAAt(16, 24); c.A != 255 || (c.R == 0 && c.G == 0 && c.B == 0) {
		t.Errorf("lit globe pixel = %v", c)
	}
}
