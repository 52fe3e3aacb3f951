package assets

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func pngBytes(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestLoadPriority(t *testing.T) {
	m := NewManager()
	m.AddFS(fstest.MapFS{
		"maps/day.png": {Data: []byte("base")},
		"only-base":    {Data: []byte("x")},
	})
	m.AddFS(fstest.MapFS{
		"maps/day.png": {Data: []byte("override")},
	})

	data, err := m.Load("maps/day.png")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != "override" {
		t.Errorf("got %q, want the last root to win", data)
	}

	if _, err := m.Load("only-base"); err != nil {
		t.Errorf("fallback to earlier root failed: %v", err)
	}
}

func TestLoadNotFound(t *testing.T) {
	m := NewManager()
	m.AddFS(fstest.MapFS{})
	_, err := m.Load("missing.png")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLoadCaches(t *testing.T) {
	m := NewManager()
	m.AddFS(fstest.MapFS{"a": {Data: []byte("1")}})

	for i := 0; i < 3; i++ {
		if _, err := m.Load("a"); err != nil {
			t.Fatal(err)
		}
	}
	hits, misses := m.cache.Stats()
	if hits != 2 || misses != 1 {
		t.Errorf("hits=%d misses=%d, want 2/1", hits, misses)
	}
}

func TestAddDirAndAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "night.png")
	if err := os.WriteFile(file, []byte("n"), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewManager()
	if err := m.AddDir(dir); err != nil {
		t.Fatalf("AddDir: %v", err)
	}
	if data, err := m.Load("night.png"); err != nil || string(data) != "n" {
		t.Errorf("relative load = %q, %v", data, err)
	}
	if data, err := m.Load(file); err != nil || string(data) != "n" {
		t.Errorf("absolute load = %q, %v", data, err)
	}

	if err := m.AddDir(filepath.Join(dir, "nope")); err == nil {
		t.Error("expected error for missing dir")
	}
	if err := m.AddDir(file); err == nil {
		t.Error("expected error for a file root")
	}
}

func TestTexture(t *testing.T) {
	m := NewManager()
	m.AddFS(fstest.MapFS{
		"day.png": {Data: pngBytes(t, 8, 4, color.NRGBA{R: 255, A: 255})},
		"bad.png": {Data: []byte("not an image")},
	})

	tex, err := m.Texture("day.png", 0)
	if err != nil {
		t.Fatalf("Texture: %v", err)
	}
	if tex.Width != 8 || tex.Height != 4 {
		t.Errorf("size = %dx%d, want 8x4", tex.Width, tex.Height)
	}
	if c := tex.Sample(0.5, 0.5); c.R < 0.99 || c.G > 0.01 {
		t.Errorf("sample = %+v, want red", c)
	}

	again, _ := m.Texture("day.png", 0)
	if again != tex {
		t.Error("texture not cached")
	}

	small, err := m.Texture("day.png", 4)
	if err != nil {
		t.Fatal(err)
	}
	if small.Width != 4 || small.Height != 2 {
		t.Errorf("downscaled size = %dx%d, want 4x2", small.Width, small.Height)
	}

	if _, err := m.Texture("bad.png", 0); err == nil {
		t.Error("expected decode error")
	}
}

func TestClose(t *testing.T) {
	m := NewManager()
	m.AddFS(fstest.MapFS{"a": {Data: []byte("1")}})
	if _, err := m.Load("a"); err != nil {
		t.Fatal(err)
	}
	m.Close()
	if _, err := m.Load("a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("after Close err = %v, want ErrNotFound", err)
	}
}

func TestCache(t *testing.T) {
	c := NewCache()
	if _, ok := c.Get("x"); ok {
		t.Error("empty cache hit")
	}
	c.Set("x", []byte("y"))
	if data, ok := c.Get("x"); !ok || string(data) != "y" {
		t.Errorf("Get = %q, %v", data, ok)
	}
	c.Clear()
	if h, m := c.Stats(); h != 0 || m != 0 {
		t.Errorf("stats after clear = %d/%d", h, m)
	}
}

func TestImage(t *testing.T) {
	m := NewManager()
	m.AddFS(fstest.MapFS{"night.png": {Data: pngBytes(t, 6, 3, color.NRGBA{B: 200, A: 255})}})

	img, err := m.Image("night.png", 0)
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if img.Rect != image.Rect(0, 0, 6, 3) {
		t.Errorf("bounds = %v", img.Rect)
	}
	if got := img.NRGBAAt(2, 1); got != (color.NRGBA{B: 200, A: 255}) {
		t.Errorf("pixel = %v", got)
	}
	if again, _ := m.Image("night.png", 0); again != img {
		t.Error("image not cached")
	}
}

func TestPlaceholder(t *testing.T) {
	c := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	img := Placeholder(c)
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 1 {
		t.Errorf("bounds = %v", img.Bounds())
	}
	if img.NRGBAAt(1, 0) != c {
		t.Errorf("pixel = %v", img.NRGBAAt(1, 0))
	}
}
