package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// UserConfigPath is where Save writes.
func UserConfigPath() string {
	return filepath.Join(ConfigDir(), fileName)
}

// Save writes the config to the user's config directory.
func (c *Config) Save() error {
	return c.SaveTo(UserConfigPath())
}

// SaveTo writes the config to a specific path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
