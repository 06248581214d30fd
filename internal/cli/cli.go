package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/thenoetrevino/tally/internal/app"
	"github.com/thenoetrevino/tally/internal/config"
	"github.com/thenoetrevino/tally/internal/logging"
)

// ConfigPath overrides the config file location. Set from the root --config flag;
// empty means the default location.
var ConfigPath string

type contextKey string

const appKey contextKey = "app"

// CLI represents the CLI application context
type CLI struct {
	App *app.App // Application container with services

	logs  io.Closer
	owned bool // App and logs were opened here and are closed by Close
}

// WithApp returns a context that makes GetCLIFromContext reuse a instead of opening
// the configured database
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey, a)
}

// GetCLIFromContext returns a CLI over the App carried by ctx, or opens a new one
// from the config file
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if a, ok := ctx.Value(appKey).(*app.App); ok && a != nil {
		return &CLI{App: a}, nil
	}
	return NewCLI(ctx)
}

// NewCLI loads the config, starts file logging and opens the database
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load(ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logs, err := logging.Init(logging.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	application, err := app.Open(ctx, cfg)
	if err != nil {
		_ = logs.Close()
		return nil, err
	}

	return &CLI{
		App:   application,
		logs:  logs,
		owned: true,
	}, nil
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if !c.owned {
		return nil
	}
	err := c.App.Close()
	if c.logs != nil {
		if cerr := c.logs.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
