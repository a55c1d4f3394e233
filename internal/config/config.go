// Package config handles configuration loading and defaults.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is the TOML file kept under the root directory.
const ConfigFileName = "config.toml"

// Default values.
const (
	DefaultAutoRefreshSeconds = 60
	MinAutoRefreshSeconds     = 10
	MaxAutoRefreshSeconds     = 600
	DefaultMinGapMinutes      = 5
	DefaultMaxGapMinutes      = 120
)

// UIConfig controls the interactive view.
type UIConfig struct {
	// AutoRefreshSeconds is the periodic tick interval, clamped to
	// [10, 600] on load.
	AutoRefreshSeconds int  `toml:"auto_refresh_seconds"`
	ShowDescriptions   bool `toml:"show_descriptions"`
	ShowDurations      bool `toml:"show_durations"`
	Compact            bool `toml:"compact"`
}

// ReportConfig controls report generation.
type ReportConfig struct {
	AutoSave bool `toml:"auto_save"`
}

// ValidationConfig controls the schedule validation checks.
type ValidationConfig struct {
	WarnOverlapping bool `toml:"warn_overlapping"`
	WarnGaps        bool `toml:"warn_gaps"`
	MinGapMinutes   int  `toml:"min_gap_minutes"`
	MaxGapMinutes   int  `toml:"max_gap_minutes"`
	ValidateOnLoad  bool `toml:"validate_on_load"`
}

// Config holds the full configuration for dayplan.
type Config struct {
	DefaultScheduleDir string           `toml:"default_schedule_dir"`
	UI                 UIConfig         `toml:"ui"`
	Report             ReportConfig     `toml:"report"`
	Validation         ValidationConfig `toml:"validation"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		UI: UIConfig{
			AutoRefreshSeconds: DefaultAutoRefreshSeconds,
			ShowDescriptions:   true,
			ShowDurations:      true,
		},
		Report: ReportConfig{
			AutoSave: true,
		},
		Validation: ValidationConfig{
			WarnOverlapping: true,
			WarnGaps:        false,
			MinGapMinutes:   DefaultMinGapMinutes,
			MaxGapMinutes:   DefaultMaxGapMinutes,
			ValidateOnLoad:  true,
		},
	}
}

// Path returns the config file location under the given root directory.
func Path(root string) string {
	return filepath.Join(root, ConfigFileName)
}

// Load reads the config file under root. A missing or corrupt file
// yields the defaults; config problems never block a command.
func Load(root string) Config {
	cfg := Default()
	data, err := os.ReadFile(Path(root))
	if err != nil {
		return cfg
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default()
	}
	if cfg.UI.AutoRefreshSeconds < MinAutoRefreshSeconds {
		cfg.UI.AutoRefreshSeconds = MinAutoRefreshSeconds
	}
	if cfg.UI.AutoRefreshSeconds > MaxAutoRefreshSeconds {
		cfg.UI.AutoRefreshSeconds = MaxAutoRefreshSeconds
	}
	return cfg
}

// Save writes the config file under root, creating the root if needed.
func Save(root string, cfg Config) error {
	if err := os.MkdirAll(root, 0755); err != nil {
		return err
	}
	f, err := os.Create(Path(root))
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// Reset writes the defaults back to disk and returns them.
func Reset(root string) (Config, error) {
	cfg := Default()
	if err := Save(root, cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
