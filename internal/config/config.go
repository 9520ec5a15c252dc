// Package config loads, validates, and persists testforge
// configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = ".testforge.yaml"

// Config holds all testforge configuration.
type Config struct {
	// Source is the directory walked recursively for .java files.
	Source string `yaml:"source" validate:"required"`

	// Output receives the generated scaffold tree, mirroring the
	// package layout.
	Output string `yaml:"output" validate:"required"`

	// Category selects the scaffold kinds to produce.
	Category string `yaml:"category" validate:"oneof=unit integration all"` // unit, integration, all

	// Naming selects the test naming convention.
	Naming string `yaml:"naming" validate:"oneof=camel snake given-when-then"`

	// Include and Exclude filter classes by qualified name. Patterns
	// support '*' wildcards; excludes win.
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`

	// Concurrency bounds the parallel scan workers. Zero picks a
	// default from the CPU count.
	Concurrency int `yaml:"concurrency" validate:"min=0"`

	// CreateDirs controls whether output directories are created on
	// demand.
	CreateDirs bool `yaml:"create_dirs"`

	// Logging
	Log LogConfig `yaml:"log"`

	// Watch mode
	Watch WatchConfig `yaml:"watch"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	// DebounceMS is how long changed files must stay quiet, in
	// milliseconds, before a regeneration run.
	DebounceMS int `yaml:"debounce_ms" validate:"min=50"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Source:      "./src/main/java",
		Output:      "./src/test/java",
		Category:    "unit",
		Naming:      "camel",
		Concurrency: 0,
		CreateDirs:  true,

		Log: LogConfig{
			Level: "info",
		},

		Watch: WatchConfig{
			DebounceMS: 500,
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if source := os.Getenv("TESTFORGE_SOURCE"); source != "" {
		c.Source = source
	}
	if output := os.Getenv("TESTFORGE_OUTPUT"); output != "" {
		c.Output = output
	}
	if category := os.Getenv("TESTFORGE_CATEGORY"); category != "" {
		c.Category = category
	}
	if naming := os.Getenv("TESTFORGE_NAMING"); naming != "" {
		c.Naming = naming
	}
	if level := os.Getenv("TESTFORGE_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if raw := os.Getenv("TESTFORGE_CONCURRENCY"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			c.Concurrency = n
		}
	}
}

var validate = validator.New()

// Validate validates the configuration.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Errorf("invalid configuration: %s", fieldMessage(verrs[0]))
	}
	return fmt.Errorf("invalid configuration: %w", err)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed validation", fe.Field())
	}
}

// GetDebounce returns the watch debounce as a duration.
func (c *Config) GetDebounce() time.Duration {
	if c.Watch.DebounceMS <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}
