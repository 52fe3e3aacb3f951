package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working and config dirs.
const FileName = "config.yaml"

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over the standard locations.
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		filepath.Join(".", FileName),
		UserConfigPath(),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "GlobalClock")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "GlobalClock")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "global-clock")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "global-clock")
	}
}

// loadFromFile merges a YAML file into cfg. Unknown keys are rejected.
// Relative texture roots named by the file are taken relative to the file's
// directory, so a config can ship next to its maps.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	defaultRoots := cfg.Textures.Roots
	cfg.Textures.Roots = nil

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	if cfg.Textures.Roots == nil {
		cfg.Textures.Roots = defaultRoots
		return nil
	}
	dir := filepath.Dir(path)
	for i, root := range cfg.Textures.Roots {
		if !filepath.IsAbs(root) {
			cfg.Textures.Roots[i] = filepath.Join(dir, root)
		}
	}
	return nil
}
