package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/thenoetrevino/tally/internal/models"
)

func TestLoadConfigWithoutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() without config file failed: %v", err)
	}

	if cfg.CostTracking.Mode != models.CostTrackingExpenditures {
		t.Errorf("default mode = %q, want expenditures", cfg.CostTracking.Mode)
	}
	if cfg.Defaults.Currency != "USD" {
		t.Errorf("default currency = %q, want USD", cfg.Defaults.Currency)
	}
	if cfg.Relay.PollInterval != 2*time.Second {
		t.Errorf("default poll interval = %v, want 2s", cfg.Relay.PollInterval)
	}
	if cfg.Relay.Breaker.ConsecutiveFailures != 3 {
		t.Errorf("default breaker failures = %d, want 3", cfg.Relay.Breaker.ConsecutiveFailures)
	}
}

func TestLoadConfigWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `cost_tracking:
  mode: task_costs
defaults:
  currency: php
log:
  level: DEBUG
relay:
  poll_interval: 500ms
  batch_size: 5
  breaker:
    timeout: 1m
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.CostTracking.Mode != models.CostTrackingTaskCosts {
		t.Errorf("mode = %q, want task_costs", cfg.CostTracking.Mode)
	}
	if cfg.Defaults.Currency != "PHP" {
		t.Errorf("currency = %q, want PHP", cfg.Defaults.Currency)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Relay.PollInterval != 500*time.Millisecond {
		t.Errorf("poll interval = %v, want 500ms", cfg.Relay.PollInterval)
	}
	if cfg.Relay.BatchSize != 5 {
		t.Errorf("batch size = %d, want 5", cfg.Relay.BatchSize)
	}
	if cfg.Relay.Breaker.Timeout != time.Minute {
		t.Errorf("breaker timeout = %v, want 1m", cfg.Relay.Breaker.Timeout)
	}
	if cfg.Relay.MaxAttempts != 5 {
		t.Errorf("unset keys keep defaults: max attempts = %d, want 5", cfg.Relay.MaxAttempts)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("TALLY_COST_TRACKING_MODE", "task_costs")
	t.Setenv("TALLY_DATABASE_PATH", "/tmp/override.db")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.CostTracking.Mode != models.CostTrackingTaskCosts {
		t.Errorf("mode = %q, want task_costs from env", cfg.CostTracking.Mode)
	}
	if cfg.Database.Path != "/tmp/override.db" {
		t.Errorf("database path = %q, want env override", cfg.Database.Path)
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown mode", "cost_tracking:\n  mode: both\n"},
		{"bad currency", "defaults:\n  currency: EURO\n"},
		{"bad log level", "log:\n  level: loud\n"},
		{"zero batch", "relay:\n  batch_size: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("Failed to write config: %v", err)
			}
			_, err := Load(path)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.CostTracking.Mode = models.CostTrackingTaskCosts
	cfg.Defaults.Currency = "EUR"
	cfg.Relay.PollInterval = 3 * time.Second
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() after Save() failed: %v", err)
	}
	if loaded.CostTracking.Mode != models.CostTrackingTaskCosts {
		t.Errorf("mode = %q after reload", loaded.CostTracking.Mode)
	}
	if loaded.Defaults.Currency != "EUR" {
		t.Errorf("currency = %q after reload", loaded.Defaults.Currency)
	}
	if loaded.Relay.PollInterval != 3*time.Second {
		t.Errorf("poll interval = %v after reload", loaded.Relay.PollInterval)
	}
}

func TestDefaultPathUsesXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() failed: %v", err)
	}
	if want := filepath.Join(dir, "tally", "config.yaml"); path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}
}
