// Package config handles globe clock configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all settings.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Globe     GlobeConfig     `yaml:"globe"`
	Render    RenderConfig    `yaml:"render"`
	Textures  TexturesConfig  `yaml:"textures"`
	ClockFace ClockFaceConfig `yaml:"clock_face"`
	Clock     ClockConfig     `yaml:"clock"`
	Snapshot  SnapshotConfig  `yaml:"snapshot"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// WindowConfig holds display settings for the windowed host.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// GlobeConfig holds the projection layout. Angles are in degrees.
type GlobeConfig struct {
	MinLatitude        float64 `yaml:"min_latitude"`        // at the disk center
	MaxLatitude        float64 `yaml:"max_latitude"`        // at the rim
	DeflectionRadius   float64 `yaml:"deflection_radius"`   // fraction of the radius, (0, 1)
	DeflectionLatitude float64 `yaml:"deflection_latitude"` // latitude reached at DeflectionRadius
	Scale              float64 `yaml:"scale"`               // globe size relative to the viewport
	Tilt               string  `yaml:"tilt"`                // seasonal, fixed or none
}

// RenderConfig holds frame pacing and shading settings.
type RenderConfig struct {
	RedrawInterval      time.Duration `yaml:"redraw_interval"`
	Workers             int           `yaml:"workers"` // CPU backend, 0 = GOMAXPROCS
	TerminatorSharpness float64       `yaml:"terminator_sharpness"`
	AmbientWeight       float64       `yaml:"ambient_weight"`
	DiffuseWeight       float64       `yaml:"diffuse_weight"`
	Background          string        `yaml:"background"` // #rrggbb
}

// TexturesConfig holds the day and night map locations.
type TexturesConfig struct {
	Roots    []string `yaml:"roots"` // searched last to first
	Day      string   `yaml:"day"`
	Night    string   `yaml:"night"`
	MaxWidth int      `yaml:"max_width"` // downscale wider maps, 0 = keep
}

// ClockFaceConfig holds the dial overlay settings.
type ClockFaceConfig struct {
	Enabled bool    `yaml:"enabled"`
	Size    int     `yaml:"size"`
	Color   string  `yaml:"color"` // #rrggbb
	Opacity float64 `yaml:"opacity"`
}

// ClockConfig selects the time source.
type ClockConfig struct {
	At       string `yaml:"at"`        // RFC 3339 instant to freeze the clock at
	TimeZone string `yaml:"time_zone"` // IANA name for the dial, empty = local
}

// SnapshotConfig holds settings for headless renders.
type SnapshotConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Output string `yaml:"output"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Global Clock",
			Width:      720,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Globe: GlobeConfig{
			MinLatitude:        -90,
			MaxLatitude:        90,
			DeflectionRadius:   0.5,
			DeflectionLatitude: 0,
			Scale:              1,
			Tilt:               "seasonal",
		},
		Render: RenderConfig{
			RedrawInterval:      time.Second,
			Workers:             0,
			TerminatorSharpness: 20,
			AmbientWeight:       0.7,
			DiffuseWeight:       0.3,
			Background:          "#000000",
		},
		Textures: TexturesConfig{
			Roots:    []string{"assets"},
			Day:      "day.jpg",
			Night:    "night.jpg",
			MaxWidth: 4096,
		},
		ClockFace: ClockFaceConfig{
			Enabled: true,
			Size:    1024,
			Color:   "#ffffff",
			Opacity: 0.5,
		},
		Snapshot: SnapshotConfig{
			Width:  1024,
			Height: 1024,
			Output: "globe.png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks the settings that cannot be repaired at use.
func (c *Config) Validate() error {
	var errs []error
	if c.Render.RedrawInterval <= 0 {
		errs = append(errs, fmt.Errorf("render.redraw_interval must be positive, got %v", c.Render.RedrawInterval))
	}
	if c.Globe.Scale <= 0 {
		errs = append(errs, fmt.Errorf("globe.scale must be positive, got %v", c.Globe.Scale))
	}
	if _, err := c.Globe.TiltMode(); err != nil {
		errs = append(errs, fmt.Errorf("globe.tilt: %w", err))
	}
	if _, err := ParseHexColor(c.Render.Background); err != nil {
		errs = append(errs, fmt.Errorf("render.background: %w", err))
	}
	if _, err := ParseHexColor(c.ClockFace.Color); err != nil {
		errs = append(errs, fmt.Errorf("clock_face.color: %w", err))
	}
	if c.ClockFace.Opacity < 0 || c.ClockFace.Opacity > 1 {
		errs = append(errs, fmt.Errorf("clock_face.opacity must be in [0, 1], got %v", c.ClockFace.Opacity))
	}
	if _, err := c.Clock.Instant(); err != nil {
		errs = append(errs, fmt.Errorf("clock.at: %w", err))
	}
	if _, err := c.Clock.Location(); err != nil {
		errs = append(errs, fmt.Errorf("clock.time_zone: %w", err))
	}
	return errors.Join(errs...)
}
