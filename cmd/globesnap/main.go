// Package main renders a single frame of the globe clock to a PNG file
// without a window or GPU.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/global-clock/internal/assets"
	"github.com/Faultbox/global-clock/internal/config"
	"github.com/Faultbox/global-clock/internal/engine/debug"
	"github.com/Faultbox/global-clock/internal/engine/raster"
	"github.com/Faultbox/global-clock/internal/logger"
	"github.com/Faultbox/global-clock/internal/scene"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if path := config.WriteConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("config written to %s\n", path)
		return
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("snapshot failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	am := assets.NewManager()
	defer am.Close()

	sc, err := scene.New(cfg, am, logger.Named("scene"))
	if err != nil {
		return err
	}

	frame := sc.Frame()
	r := raster.New(sc.Shader, cfg.Render.Workers)

	start := time.Now()
	img, err := r.RenderImage(ctx, cfg.Snapshot.Width, cfg.Snapshot.Height, frame.Raster())
	if err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	if err := debug.SavePNG(cfg.Snapshot.Output, img); err != nil {
		return err
	}

	logger.Info("snapshot written",
		zap.String("path", cfg.Snapshot.Output),
		zap.Time("local", frame.Local),
		zap.Int("width", cfg.Snapshot.Width),
		zap.Int("height", cfg.Snapshot.Height),
		zap.Int("workers", r.Workers()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
