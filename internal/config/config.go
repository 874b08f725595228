// Package config handles configuration loading and validation for study-tracker.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// MaxScanWindowDays bounds catchup.scan_window_days.
const MaxScanWindowDays = 366

// Config holds the application configuration.
type Config struct {
	DBPath       string        `yaml:"db_path"`
	TemplatePath string        `yaml:"template_path"` // empty uses the bundled template
	CatchUp      CatchUpConfig `yaml:"catchup"`
	Log          LogConfig     `yaml:"log"`
}

// CatchUpConfig holds catch-up scheduling settings.
type CatchUpConfig struct {
	ScanWindowDays int `yaml:"scan_window_days"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty writes to stderr
}

// DefaultDir returns the per-user data directory.
func DefaultDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".study-tracker")
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DBPath: filepath.Join(DefaultDir(), "tracker.db"),
		CatchUp: CatchUpConfig{
			ScanWindowDays: 30,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from path. A missing or empty path yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.DBPath == "" {
		c.DBPath = defaults.DBPath
	}
	if c.CatchUp.ScanWindowDays == 0 {
		c.CatchUp.ScanWindowDays = defaults.CatchUp.ScanWindowDays
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("catchup.scan_window_days", c.CatchUp.ScanWindowDays, windowInRange),
		criterio.Run("log.level", c.Log.Level, knownLevel),
		criterio.Run("template_path", c.TemplatePath, fileOrEmpty),
	)
}

func windowInRange(days int) error {
	if days < 1 || days > MaxScanWindowDays {
		return fmt.Errorf("must be between 1 and %d", MaxScanWindowDays)
	}
	return nil
}

func knownLevel(level string) error {
	if _, err := zerolog.ParseLevel(level); err != nil {
		return fmt.Errorf("unknown level %q", level)
	}
	return nil
}

func fileOrEmpty(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	return nil
}
