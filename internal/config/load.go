package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

const fileName = "meshtool.yaml"

// EnvConfigPath names an environment variable that points at a config file.
// The --config flag wins over it.
const EnvConfigPath = "MESHTOOL_CONFIG"

var (
	ErrInvalidCapacity = errors.New("builder capacity must be positive")
	ErrInvalidLevel    = errors.New("unknown log level")
	ErrInvalidDebounce = errors.New("watch debounce must not be negative")
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = os.Getenv(EnvConfigPath)
	}
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

// Validate rejects settings the tool cannot run with.
func (c *Config) Validate() error {
	if c.Builder.Capacity <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCapacity, c.Builder.Capacity)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLevel, c.Logging.Level)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDebounce, c.Watch.Debounce)
	}
	return nil
}

// findConfigFile looks for meshtool.yaml in the working directory, then in
// the user config directory.
func findConfigFile() string {
	candidates := []string{
		filepath.Join(".", fileName),
		filepath.Join(ConfigDir(), fileName),
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
		return filepath.Join(home, "Library", "Application Support", "Meshkit")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Meshkit")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "meshkit")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "meshkit")
	}
}

// loadFromFile merges a YAML file over the values already in cfg.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// DebounceOrDefault returns the watch debounce, falling back to the default
// when unset.
func (c *Config) DebounceOrDefault() time.Duration {
	if c.Watch.Debounce == 0 {
		return Default().Watch.Debounce
	}
	return c.Watch.Debounce
}
