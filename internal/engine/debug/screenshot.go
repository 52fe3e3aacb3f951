// Package debug provides screenshot capture for the windowed host.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/jonboulle/clockwork"
)

// ScreenshotCapture writes timestamped PNG files.
type ScreenshotCapture struct {
	outputDir string
	prefix    string
	clock     clockwork.Clock
}

// NewScreenshotCapture creates a new screenshot capture handler. A nil clock
// uses the real clock for file names.
func NewScreenshotCapture(outputDir, prefix string, clock clockwork.Clock) *ScreenshotCapture {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &ScreenshotCapture{
		outputDir: outputDir,
		prefix:    prefix,
		clock:     clock,
	}
}

// SetOutputDir sets the output directory for screenshots.
func (sc *ScreenshotCapture) SetOutputDir(dir string) {
	sc.outputDir = dir
}

// GenerateFilename generates a screenshot filename without saving.
func (sc *ScreenshotCapture) GenerateFilename() string {
	timestamp := sc.clock.Now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s.png", sc.prefix, timestamp)
	if sc.outputDir != "" {
		filename = filepath.Join(sc.outputDir, filename)
	}
	return filename
}

// CaptureFromImage saves img under a generated name and returns the path.
func (sc *ScreenshotCapture) CaptureFromImage(img image.Image) (string, error) {
	filename := sc.GenerateFilename()
	if err := SavePNG(filename, img); err != nil {
		return "", err
	}
	return filename, nil
}

// CaptureFromPixels saves bottom-up RGBA rows as read back from OpenGL.
func (sc *ScreenshotCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	return sc.CaptureFromImage(FlipRows(pixels, width, height))
}

// SavePNG encodes img to path, creating parent directories.
func SavePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return file.Close()
}

// FlipRows copies bottom-up RGBA rows (OpenGL order) into a top-down image.
// Short input leaves the remaining rows transparent.
func FlipRows(pixels []byte, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		if src+rowSize > len(pixels) {
			continue
		}
		copy(img.Pix[y*img.Stride:y*img.Stride+rowSize], pixels[src:src+rowSize])
	}
	return img
}
