// Package app implements the windowed globe clock: an SDL window with an
// OpenGL renderer, redrawn whenever the clock moves.
package app

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/global-clock/internal/assets"
	"github.com/Faultbox/global-clock/internal/config"
	"github.com/Faultbox/global-clock/internal/engine/debug"
	"github.com/Faultbox/global-clock/internal/engine/input"
	"github.com/Faultbox/global-clock/internal/engine/renderer"
	"github.com/Faultbox/global-clock/internal/engine/window"
	"github.com/Faultbox/global-clock/internal/logger"
	"github.com/Faultbox/global-clock/internal/scene"
)

// ScreenshotDir is where F12 captures are written.
const ScreenshotDir = "screenshots"

// App is the windowed clock instance.
type App struct {
	config   *config.Config
	running  bool
	log      *zap.Logger
	assets   *assets.Manager
	scene    *scene.Scene
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	shots    *debug.ScreenshotCapture
}

// New creates the window, the GL renderer and the scene.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		config: cfg,
		log:    logger.Named("app"),
		assets: assets.NewManager(),
	}
	a.log.Info("initializing",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	var err error
	a.scene, err = scene.New(cfg, a.assets, logger.Named("scene"))
	if err != nil {
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}

	// Create window (this also creates OpenGL context)
	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		a.assets.Close()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	w, h := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:  w,
		Height: h,
		Tuning: cfg.Render.Tuning(),
	})
	if err != nil {
		a.window.Close()
		a.assets.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	a.renderer.SetMaps(a.scene.Day, a.scene.Night)

	a.input = input.New()
	a.shots = debug.NewScreenshotCapture(ScreenshotDir, "globe", nil)

	a.log.Info("initialized successfully")
	return a, nil
}

// Run draws until the window is closed or Escape is pressed. A frame is
// drawn at start, after each resize and whenever the redraw interval has
// elapsed on the scene clock.
func (a *App) Run() error {
	a.running = true
	interval := a.config.Render.RedrawInterval
	clock := a.scene.Driver.Clock()

	var last time.Time
	dirty := true

	a.log.Info("starting main loop", zap.Duration("interval", interval))

	for a.running {
		wait := interval
		if !dirty {
			wait = interval - clock.Since(last)
		}
		if a.input.Wait(wait) {
			a.running = false
			break
		}

		for _, event := range a.input.Events() {
			if event.Type == input.EventWindowResize {
				a.renderer.Resize(a.window.DrawableSize())
				dirty = true
			}
		}
		if a.input.IsKeyPressed(sdl.SCANCODE_ESCAPE) {
			a.running = false
			break
		}
		if a.input.IsKeyPressed(sdl.SCANCODE_F12) {
			a.screenshot()
		}

		if dirty || clock.Since(last) >= interval {
			last = clock.Now()
			a.renderer.Draw(a.frame())
			a.window.SwapBuffers()
			dirty = false
		}
	}

	return nil
}

func (a *App) frame() renderer.Frame {
	f := a.scene.Frame()
	rf := renderer.Frame{Params: f.Params}
	if f.Overlay != nil {
		rf.Overlay = f.Overlay
	}
	return rf
}

func (a *App) screenshot() {
	w, h := a.window.DrawableSize()
	img, err := a.renderer.Capture(a.frame(), w, h)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	path, err := a.shots.CaptureFromImage(img)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close cleans up resources.
func (a *App) Close() {
	a.log.Info("closing")

	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
	if a.assets != nil {
		a.assets.Close()
	}
}
