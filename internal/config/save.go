package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Save writes the config back to the file it was loaded from, or to the
// user's config directory when none was found.
func (c *Config) Save() error {
	return c.SaveTo(SavePath())
}

// SavePath returns where Save writes: the --config path, then an existing
// config file, then the user's config directory.
func SavePath() string {
	if p := ConfigPath(); p != "" {
		return p
	}
	if p := findConfigFile(); p != "" {
		return p
	}
	return filepath.Join(ConfigDir(), "config.yaml")
}

// SaveTo writes the config to a specific path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}
