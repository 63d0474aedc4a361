// Package config holds the caffeinate2 configuration, loaded from a YAML
// file and CAFFEINATE2_* environment variables via viper.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete caffeinate2 configuration.
type Config struct {
	Lock    LockConfig    `mapstructure:"lock"`
	Logging LoggingConfig `mapstructure:"logging"`
	Detect  DetectConfig  `mapstructure:"detect"`
}

// LockConfig controls the shared lock registry.
type LockConfig struct {
	// Path overrides the registry location. Empty selects the platform
	// default: /var/run/caffeinate2.lock for root, a per-uid file in the
	// temp directory otherwise.
	Path string `mapstructure:"path"`
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error. The --verbose flag forces
	// debug regardless.
	Level string `mapstructure:"level"`
}

// DetectConfig controls the sleep-event detector.
type DetectConfig struct {
	// Interval between wall-clock checks.
	Interval time.Duration `mapstructure:"interval"`
	// Threshold above which an oversleeping tick counts as a sleep event.
	// Zero means twice the interval.
	Threshold time.Duration `mapstructure:"threshold"`
}

// SetDefaults registers default values for all settings.
func SetDefaults() {
	viper.SetDefault("lock.path", "")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("detect.interval", 5*time.Second)
	viper.SetDefault("detect.threshold", time.Duration(0))
}

// Load unmarshals the current viper state into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ConfigDir returns the directory searched for config.yaml.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "caffeinate2")
}
