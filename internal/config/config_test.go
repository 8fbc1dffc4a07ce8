package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Faultbox/meshkit/pkg/meshbuild"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Builder.Capacity != meshbuild.DefaultCapacity {
		t.Errorf("expected capacity %d, got %d", meshbuild.DefaultCapacity, cfg.Builder.Capacity)
	}
	if cfg.Builder.RecalculateNormals {
		t.Error("expected recalculate_normals to be false by default")
	}
	if cfg.Builder.ComputeTangents {
		t.Error("expected compute_tangents to be false by default")
	}
	if !cfg.Builder.Validate {
		t.Error("expected validate to be true by default")
	}
	if cfg.Output.Dir != "." {
		t.Errorf("expected output dir '.', got %s", cfg.Output.Dir)
	}
	if cfg.Watch.Debounce != 100*time.Millisecond {
		t.Errorf("expected debounce 100ms, got %v", cfg.Watch.Debounce)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, fileName)

	yamlContent := `
builder:
  capacity: 1024
  recalculate_normals: true
  compute_tangents: true
  validate: false

output:
  dir: "build/meshes"

watch:
  debounce: 250ms

logging:
  level: "debug"
  log_file: "meshtool.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Builder.Capacity != 1024 {
		t.Errorf("expected capacity 1024, got %d", cfg.Builder.Capacity)
	}
	if !cfg.Builder.RecalculateNormals || !cfg.Builder.ComputeTangents {
		t.Error("expected normals and tangents enabled")
	}
	if cfg.Builder.Validate {
		t.Error("expected validate to be false")
	}
	if cfg.Output.Dir != "build/meshes" {
		t.Errorf("expected output dir build/meshes, got %s", cfg.Output.Dir)
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("expected debounce 250ms, got %v", cfg.Watch.Debounce)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "meshtool.log" {
		t.Errorf("expected log file 'meshtool.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
builder:
  capacity: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/meshtool.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"zero capacity", func(c *Config) { c.Builder.Capacity = 0 }, ErrInvalidCapacity},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }, ErrInvalidLevel},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -time.Second }, ErrInvalidDebounce},
		{"ok", func(c *Config) {}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestFinalizeOptions(t *testing.T) {
	cfg := Default()
	cfg.Builder.RecalculateNormals = true

	opts := cfg.FinalizeOptions("Spiral")
	if opts.Name != "Spiral" || !opts.RecalculateNormals || opts.ComputeTangents || !opts.Validate {
		t.Errorf("unexpected finalize options %+v", opts)
	}
}

func TestDebounceOrDefault(t *testing.T) {
	cfg := Default()
	cfg.Watch.Debounce = 0
	if got := cfg.DebounceOrDefault(); got != 100*time.Millisecond {
		t.Errorf("expected default debounce, got %v", got)
	}
	cfg.Watch.Debounce = time.Second
	if got := cfg.DebounceOrDefault(); got != time.Second {
		t.Errorf("expected 1s, got %v", got)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, fileName)
	if err := os.WriteFile(configPath, []byte("builder:\n  capacity: 10\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find meshtool.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "capacity flag",
			setup: func() { *flagCapacity = 500 },
			verify: func(cfg *Config) {
				if cfg.Builder.Capacity != 500 {
					t.Errorf("expected capacity 500, got %d", cfg.Builder.Capacity)
				}
			},
			teardown: func() { *flagCapacity = 0 },
		},
		{
			name: "post-processing flags",
			setup: func() {
				*flagNormals = true
				*flagTangents = true
			},
			verify: func(cfg *Config) {
				if !cfg.Builder.RecalculateNormals || !cfg.Builder.ComputeTangents {
					t.Error("expected normals and tangents enabled")
				}
			},
			teardown: func() {
				*flagNormals = false
				*flagTangents = false
			},
		},
		{
			name:  "no-validate flag",
			setup: func() { *flagNoValid = true },
			verify: func(cfg *Config) {
				if cfg.Builder.Validate {
					t.Error("expected validation disabled")
				}
			},
			teardown: func() { *flagNoValid = false },
		},
		{
			name:  "out-dir flag",
			setup: func() { *flagOutputDir = "/tmp/meshes" },
			verify: func(cfg *Config) {
				if cfg.Output.Dir != "/tmp/meshes" {
					t.Errorf("expected output dir /tmp/meshes, got %s", cfg.Output.Dir)
				}
			},
			teardown: func() { *flagOutputDir = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, fileName)

	yamlContent := `
builder:
  capacity: 2000
  recalculate_normals: true
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagCapacity = 3000
	defer func() {
		*flagConfig = ""
		*flagCapacity = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Capacity from flag, normals from file
	if cfg.Builder.Capacity != 3000 {
		t.Errorf("expected capacity 3000 from flag, got %d", cfg.Builder.Capacity)
	}
	if !cfg.Builder.RecalculateNormals {
		t.Error("expected recalculate_normals from file")
	}
}

func TestLoadFromEnv(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "env.yaml")
	if err := os.WriteFile(configPath, []byte("builder:\n  capacity: 42\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	t.Setenv(EnvConfigPath, configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Builder.Capacity != 42 {
		t.Errorf("expected capacity 42 from env config, got %d", cfg.Builder.Capacity)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(configPath, []byte("logging:\n  level: loud\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	t.Setenv(EnvConfigPath, configPath)

	if _, err := Load(); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("expected ErrInvalidLevel, got %v", err)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", fileName)

	cfg := Default()
	cfg.Builder.Capacity = 777
	cfg.Watch.Debounce = 2 * time.Second
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Builder.Capacity != 777 {
		t.Errorf("expected capacity 777, got %d", loaded.Builder.Capacity)
	}
	if loaded.Watch.Debounce != 2*time.Second {
		t.Errorf("expected debounce 2s, got %v", loaded.Watch.Debounce)
	}
}

func TestSaveToUserConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	t.Setenv("APPDATA", home)

	cfg := Default()
	cfg.Builder.Capacity = 4096
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	path := UserConfigPath()
	if !strings.HasPrefix(path, home) {
		t.Errorf("UserConfigPath %s not under %s", path, home)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Builder.Capacity != 4096 {
		t.Errorf("expected capacity 4096, got %d", loaded.Builder.Capacity)
	}
}
