package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/tally/internal/models"
)

// EnvPrefix prefixes environment overrides, e.g. TALLY_COST_TRACKING_MODE
const EnvPrefix = "TALLY"

// ErrInvalidConfig wraps every validation failure of a loaded config
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the application configuration
type Config struct {
	Database     DatabaseConfig     `mapstructure:"database" yaml:"database"`
	CostTracking CostTrackingConfig `mapstructure:"cost_tracking" yaml:"cost_tracking"`
	Defaults     DefaultsConfig     `mapstructure:"defaults" yaml:"defaults"`
	Log          LogConfig          `mapstructure:"log" yaml:"log"`
	Relay        RelayConfig        `mapstructure:"relay" yaml:"relay"`
}

// DatabaseConfig locates the SQLite database. An empty path means ~/.tally/tally.db.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// CostTrackingConfig selects what remaining budget is measured against for the
// whole deployment
type CostTrackingConfig struct {
	Mode models.CostTrackingMode `mapstructure:"mode" yaml:"mode"`
}

// DefaultsConfig holds values applied when a request leaves them out
type DefaultsConfig struct {
	Currency string `mapstructure:"currency" yaml:"currency"`
	ActorID  int    `mapstructure:"actor_id" yaml:"actor_id"` // recorded as the acting user of CLI writes
}

// LogConfig controls the log file. An empty file means ~/.tally/logs/tally.log.
type LogConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	File       string `mapstructure:"file" yaml:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
}

// RelayConfig configures the outbox relay process
type RelayConfig struct {
	PollInterval     time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`
	BatchSize        int           `mapstructure:"batch_size" yaml:"batch_size"`
	MaxAttempts      int           `mapstructure:"max_attempts" yaml:"max_attempts"`
	DeliveryAttempts int           `mapstructure:"delivery_attempts" yaml:"delivery_attempts"`
	Retention        time.Duration `mapstructure:"retention" yaml:"retention"`
	MetricsAddr      string        `mapstructure:"metrics_addr" yaml:"metrics_addr"`
	Breaker          BreakerConfig `mapstructure:"breaker" yaml:"breaker"`
}

// BreakerConfig configures the circuit breaker in front of the event sink
type BreakerConfig struct {
	MaxRequests         uint32        `mapstructure:"max_requests" yaml:"max_requests"`
	Interval            time.Duration `mapstructure:"interval" yaml:"interval"`
	Timeout             time.Duration `mapstructure:"timeout" yaml:"timeout"`
	ConsecutiveFailures uint32        `mapstructure:"consecutive_failures" yaml:"consecutive_failures"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		CostTracking: CostTrackingConfig{Mode: models.DefaultCostTrackingMode},
		Defaults:     DefaultsConfig{Currency: "USD", ActorID: 1},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Relay: RelayConfig{
			PollInterval:     2 * time.Second,
			BatchSize:        50,
			MaxAttempts:      5,
			DeliveryAttempts: 3,
			Retention:        7 * 24 * time.Hour,
			MetricsAddr:      "127.0.0.1:9464",
			Breaker: BreakerConfig{
				MaxRequests:         1,
				Timeout:             30 * time.Second,
				ConsecutiveFailures: 3,
			},
		},
	}
}

// setDefaults registers every key with viper, which is also what makes each key
// overridable from the environment
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("cost_tracking.mode", string(d.CostTracking.Mode))
	v.SetDefault("defaults.currency", d.Defaults.Currency)
	v.SetDefault("defaults.actor_id", d.Defaults.ActorID)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age_days", d.Log.MaxAgeDays)
	v.SetDefault("relay.poll_interval", d.Relay.PollInterval)
	v.SetDefault("relay.batch_size", d.Relay.BatchSize)
	v.SetDefault("relay.max_attempts", d.Relay.MaxAttempts)
	v.SetDefault("relay.delivery_attempts", d.Relay.DeliveryAttempts)
	v.SetDefault("relay.retention", d.Relay.Retention)
	v.SetDefault("relay.metrics_addr", d.Relay.MetricsAddr)
	v.SetDefault("relay.breaker.max_requests", d.Relay.Breaker.MaxRequests)
	v.SetDefault("relay.breaker.interval", d.Relay.Breaker.Interval)
	v.SetDefault("relay.breaker.timeout", d.Relay.Breaker.Timeout)
	v.SetDefault("relay.breaker.consecutive_failures", d.Relay.Breaker.ConsecutiveFailures)
}

// Load reads the config file at path (the default location when path is empty),
// applies TALLY_* environment overrides and validates the result.
// A missing file is not an error: defaults and environment still apply.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config and normalizes the values it can
func (c *Config) Validate() error {
	mode, err := models.ParseCostTrackingMode(string(c.CostTracking.Mode))
	if err != nil {
		return fmt.Errorf("%w: cost_tracking.mode: %v", ErrInvalidConfig, err)
	}
	c.CostTracking.Mode = mode

	currency, err := models.NormalizeCurrency(c.Defaults.Currency)
	if err != nil {
		return fmt.Errorf("%w: defaults.currency: %v", ErrInvalidConfig, err)
	}
	c.Defaults.Currency = currency

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
		c.Log.Level = strings.ToLower(c.Log.Level)
	default:
		return fmt.Errorf("%w: log.level %q (must be: debug, info, warn, error)", ErrInvalidConfig, c.Log.Level)
	}

	if c.Relay.PollInterval <= 0 || c.Relay.BatchSize <= 0 || c.Relay.MaxAttempts <= 0 {
		return fmt.Errorf("%w: relay poll_interval, batch_size and max_attempts must be positive", ErrInvalidConfig)
	}
	return nil
}

// Save writes the config as YAML to path (the default location when path is empty)
func (c *Config) Save(path string) error {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return err
		}
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// DefaultPath returns the path to the config file
func DefaultPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "tally", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "tally", "config.yaml"), nil
}
