package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Lock.Path != "" {
		t.Errorf("lock.path = %q, want empty (platform default)", cfg.Lock.Path)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("logging.level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Detect.Interval != 5*time.Second {
		t.Errorf("detect.interval = %v, want 5s", cfg.Detect.Interval)
	}
	if cfg.Detect.Threshold != 0 {
		t.Errorf("detect.threshold = %v, want 0", cfg.Detect.Threshold)
	}
}

func TestLoadOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	viper.Set("lock.path", "/tmp/test.lock")
	viper.Set("logging.level", "debug")
	viper.Set("detect.interval", "10s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Lock.Path != "/tmp/test.lock" {
		t.Errorf("lock.path = %q", cfg.Lock.Path)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging.level = %q", cfg.Logging.Level)
	}
	if cfg.Detect.Interval != 10*time.Second {
		t.Errorf("detect.interval = %v", cfg.Detect.Interval)
	}
}
