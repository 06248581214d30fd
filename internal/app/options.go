package app

import (
	"log/slog"

	"github.com/thenoetrevino/tally/internal/lifecycle"
	"github.com/thenoetrevino/tally/internal/models"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	mode     models.CostTrackingMode
	currency string
	actorID  int
	clock    lifecycle.Clock
	logger   *slog.Logger
}

func defaultAppConfig() *appConfig {
	return &appConfig{
		mode:     models.DefaultCostTrackingMode,
		currency: "USD",
		actorID:  1,
	}
}

// WithCostTrackingMode sets what remaining budget is measured against
func WithCostTrackingMode(mode models.CostTrackingMode) Option {
	return func(cfg *appConfig) {
		cfg.mode = mode
	}
}

// WithDefaultCurrency sets the currency applied to budgets set without one
func WithDefaultCurrency(code string) Option {
	return func(cfg *appConfig) {
		if code != "" {
			cfg.currency = code
		}
	}
}

// WithActorID sets the user id recorded on writes
func WithActorID(id int) Option {
	return func(cfg *appConfig) {
		if id > 0 {
			cfg.actorID = id
		}
	}
}

// WithClock replaces time.Now for completion stamps and date checks
func WithClock(clock lifecycle.Clock) Option {
	return func(cfg *appConfig) {
		cfg.clock = clock
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}
