// Package scene assembles everything a host needs to draw the clock from the
// configuration: the time driver, the day and night maps, the shader and the
// dial overlay.
package scene

import (
	"fmt"
	"image"
	"image/color"

	"go.uber.org/zap"

	"github.com/Faultbox/global-clock/internal/assets"
	"github.com/Faultbox/global-clock/internal/clockface"
	"github.com/Faultbox/global-clock/internal/config"
	"github.com/Faultbox/global-clock/internal/engine/raster"
	"github.com/Faultbox/global-clock/internal/engine/texture"
	"github.com/Faultbox/global-clock/internal/ephemeris"
	"github.com/Faultbox/global-clock/internal/globe"
)

// Colors used when a map cannot be loaded.
var (
	PlaceholderDay   = color.NRGBA{R: 0x2b, G: 0x5d, B: 0x8a, A: 0xff}
	PlaceholderNight = color.NRGBA{R: 0x05, G: 0x07, B: 0x0d, A: 0xff}
)

// Scene is the host-independent state of the clock.
type Scene struct {
	Driver *ephemeris.Driver

	// Day and Night are the decoded maps, ready for GPU upload.
	Day   *image.NRGBA
	Night *image.NRGBA

	// Shader samples Day and Night on the CPU.
	Shader *globe.Shader

	// Face draws the dial. Nil when the overlay is disabled.
	Face *clockface.Face

	log *zap.Logger
}

// Frame is one frame of the scene.
type Frame struct {
	ephemeris.Frame
	// Overlay is the dial for the frame, nil when disabled. It is reused by
	// the next call to Scene.Frame.
	Overlay *image.RGBA
}

// New builds a scene. Missing asset roots and maps are logged and replaced by
// placeholders; only configuration errors are returned.
func New(cfg *config.Config, am *assets.Manager, log *zap.Logger) (*Scene, error) {
	if log == nil {
		log = zap.NewNop()
	}

	tilt, err := cfg.Globe.TiltMode()
	if err != nil {
		return nil, fmt.Errorf("globe tilt: %w", err)
	}
	clock, err := cfg.Clock.NewClock()
	if err != nil {
		return nil, fmt.Errorf("clock: %w", err)
	}
	loc, err := cfg.Clock.Location()
	if err != nil {
		return nil, fmt.Errorf("time zone: %w", err)
	}

	layout := cfg.Globe.Parameters()
	if err := layout.Validate(); err != nil {
		log.Warn("globe layout out of range", zap.Error(err))
	}

	for _, root := range cfg.Textures.Roots {
		if err := am.AddDir(root); err != nil {
			log.Debug("skipping asset root", zap.String("root", root), zap.Error(err))
		}
	}

	s := &Scene{
		Driver: ephemeris.NewDriver(clock, layout, tilt, loc),
		Day:    loadMap(am, cfg.Textures.Day, cfg.Textures.MaxWidth, PlaceholderDay, log),
		Night:  loadMap(am, cfg.Textures.Night, cfg.Textures.MaxWidth, PlaceholderNight, log),
		log:    log,
	}
	s.Shader = &globe.Shader{
		Day:    texture.Equirectangular(s.Day),
		Night:  texture.Equirectangular(s.Night),
		Tuning: cfg.Render.Tuning(),
	}
	if cfg.ClockFace.Enabled {
		s.Face = clockface.New(cfg.ClockFace.FaceConfig())
	}

	log.Info("scene ready",
		zap.Stringer("tilt", tilt),
		zap.Bool("pinned", cfg.Clock.Pinned()),
		zap.String("zone", loc.String()),
		zap.Bool("clock_face", s.Face != nil),
	)
	return s, nil
}

func loadMap(am *assets.Manager, name string, maxWidth int, fallback color.NRGBA, log *zap.Logger) *image.NRGBA {
	if name == "" {
		return assets.Placeholder(fallback)
	}
	img, err := am.Image(name, maxWidth)
	if err != nil {
		log.Warn("map unavailable, using placeholder", zap.String("map", name), zap.Error(err))
		return assets.Placeholder(fallback)
	}
	log.Debug("map loaded",
		zap.String("map", name),
		zap.Int("width", img.Rect.Dx()),
		zap.Int("height", img.Rect.Dy()),
	)
	return img
}

// Frame reads the clock and produces the frame parameters and dial.
func (s *Scene) Frame() Frame {
	f := Frame{Frame: s.Driver.Frame()}
	if s.Face != nil {
		f.Overlay = s.Face.Draw(f.Local)
	}
	return f
}

// Raster converts a frame into CPU renderer input.
func (f Frame) Raster() raster.Scene {
	rs := raster.Scene{Params: f.Params}
	if f.Overlay != nil {
		rs.Overlay = texture.FromImage(f.Overlay, texture.WrapClamp, texture.WrapClamp)
	}
	return rs
}
