package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

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
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail deep inside the engine.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	switch c.Camera.Mode {
	case "fly", "orbit":
	default:
		return fmt.Errorf("unknown camera mode %q", c.Camera.Mode)
	}
	if l := c.Render.Light; l.Elevation < -90 || l.Elevation > 90 || l.Ambient < 0 || l.Ambient > 1 {
		return fmt.Errorf("invalid light: elevation %v, ambient %v", l.Elevation, l.Ambient)
	}
	if c.Skybox.Enabled && len(c.Skybox.Faces) != 6 {
		return fmt.Errorf("skybox needs 6 faces, got %d", len(c.Skybox.Faces))
	}
	for i, m := range c.Scene.Models {
		if m.Path == "" {
			return fmt.Errorf("scene model %d: empty path", i)
		}
		if m.Parent != nil && (*m.Parent < 0 || *m.Parent >= len(c.Scene.Models) || *m.Parent == i) {
			return fmt.Errorf("scene model %d: invalid parent %d", i, *m.Parent)
		}
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
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
		return filepath.Join(home, "Library", "Application Support", "modelview")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "modelview")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "modelview")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "modelview")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
