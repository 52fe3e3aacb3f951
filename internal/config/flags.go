package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window or snapshot width")
	flagHeight     = flag.Int("height", 0, "Window or snapshot height")
	flagAt         = flag.String("at", "", "Freeze the clock at an RFC 3339 instant")
	flagTilt       = flag.String("tilt", "", "Axial tilt model: seasonal, fixed or none")
	flagWorkers    = flag.Int("workers", 0, "CPU render workers (0 = all cores)")
	flagOut        = flag.String("out", "", "Snapshot output path")
	flagWrite      = flag.String("write-config", "", "Write the effective config to this path and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfigPath returns the path given by --write-config, if any. The
// value "user" selects UserConfigPath.
func WriteConfigPath() string {
	if *flagWrite == "user" {
		return UserConfigPath()
	}
	return *flagWrite
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
		cfg.Snapshot.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
		cfg.Snapshot.Height = *flagHeight
	}
	if *flagAt != "" {
		cfg.Clock.At = *flagAt
	}
	if *flagTilt != "" {
		cfg.Globe.Tilt = *flagTilt
	}
	if *flagWorkers > 0 {
		cfg.Render.Workers = *flagWorkers
	}
	if *flagOut != "" {
		cfg.Snapshot.Output = *flagOut
	}
}
