// Package terminal renders the globe clock into a text terminal with tcell.
// Each cell shows two vertically stacked pixels as an upper half block, the
// top pixel in the foreground color and the bottom one in the background.
package terminal

import (
	"context"
	"image"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/global-clock/internal/engine/raster"
	"github.com/Faultbox/global-clock/internal/engine/viewport"
	"github.com/Faultbox/global-clock/internal/scene"
)

// halfBlock is U+2580 UPPER HALF BLOCK.
const halfBlock = '▀'

// Viewer draws a scene into a tcell screen.
type Viewer struct {
	screen   tcell.Screen
	scene    *scene.Scene
	raster   *raster.Renderer
	interval time.Duration
	log      *zap.Logger

	img *image.NRGBA
	vp  *viewport.Viewport
}

// New creates a viewer. The screen must already be initialized.
func New(screen tcell.Screen, sc *scene.Scene, workers int, interval time.Duration, log *zap.Logger) *Viewer {
	if log == nil {
		log = zap.NewNop()
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Viewer{
		screen:   screen,
		scene:    sc,
		raster:   raster.New(sc.Shader, workers),
		interval: interval,
		log:      log,
		vp:       viewport.New(0, 0),
	}
}

// Draw renders the current frame at the screen size and shows it.
func (v *Viewer) Draw(ctx context.Context) error {
	cols, rows := v.screen.Size()
	if cols <= 0 || rows <= 0 {
		return nil
	}
	w, h := cols, rows*2
	if v.vp.Resize(w, h) || v.img == nil {
		v.img = image.NewNRGBA(image.Rect(0, 0, w, h))
		v.log.Debug("terminal resized", zap.Int("cols", cols), zap.Int("rows", rows))
	}

	if err := v.raster.Render(ctx, v.img, v.vp, v.scene.Frame().Raster()); err != nil {
		return err
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := v.img.NRGBAAt(x, 2*y)
			bottom := v.img.NRGBAAt(x, 2*y+1)
			style := tcell.StyleDefault.Foreground(cellColor(top)).Background(cellColor(bottom))
			v.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	v.screen.Show()
	return nil
}

func cellColor(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Run redraws on every redraw interval of the scene clock until ctx is done
// or the user presses q, Escape or Ctrl-C.
func (v *Viewer) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := v.scene.Driver.Clock().NewTicker(v.interval)
	defer ticker.Stop()

	if err := v.Draw(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if quitKey(ev) {
					return nil
				}
			case *tcell.EventResize:
				v.screen.Sync()
				if err := v.Draw(ctx); err != nil {
					return err
				}
			}

		case <-ticker.Chan():
			if err := v.Draw(ctx); err != nil {
				return err
			}
		}
	}
}

func quitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			return ev.Rune() == 'c' || ev.Rune() == 'C'
		}
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}
