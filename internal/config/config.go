// Package config handles meshtool configuration loading and management.
package config

import (
	"time"

	"github.com/Faultbox/meshkit/pkg/meshbuild"
)

// Config holds all tool settings.
type Config struct {
	Builder BuilderConfig `yaml:"builder"`
	Output  OutputConfig  `yaml:"output"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
}

// BuilderConfig holds mesh builder and finalize settings.
type BuilderConfig struct {
	Capacity           int  `yaml:"capacity"` // Vertex ceiling per mesh
	RecalculateNormals bool `yaml:"recalculate_normals"`
	ComputeTangents    bool `yaml:"compute_tangents"`
	Validate           bool `yaml:"validate"`
}

// OutputConfig holds export settings.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Used when no explicit output path is given
}

// WatchConfig holds file watching settings.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Builder: BuilderConfig{
			Capacity:           meshbuild.DefaultCapacity,
			RecalculateNormals: false,
			ComputeTangents:    false,
			Validate:           true,
		},
		Output: OutputConfig{
			Dir: ".",
		},
		Watch: WatchConfig{
			Debounce: 100 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// FinalizeOptions converts the builder settings for a named mesh.
func (c *Config) FinalizeOptions(name string) meshbuild.FinalizeOptions {
	return meshbuild.FinalizeOptions{
		Name:               name,
		RecalculateNormals: c.Builder.RecalculateNormals,
		ComputeTangents:    c.Builder.ComputeTangents,
		Validate:           c.Builder.Validate,
	}
}
