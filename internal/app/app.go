package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/thenoetrevino/tally/internal/aggregate"
	"github.com/thenoetrevino/tally/internal/config"
	"github.com/thenoetrevino/tally/internal/database"
	"github.com/thenoetrevino/tally/internal/events"
	"github.com/thenoetrevino/tally/internal/lifecycle"
	"github.com/thenoetrevino/tally/internal/relay"
	commentservice "github.com/thenoetrevino/tally/internal/services/comment"
	expenditureservice "github.com/thenoetrevino/tally/internal/services/expenditure"
	projectservice "github.com/thenoetrevino/tally/internal/services/project"
	taskservice "github.com/thenoetrevino/tally/internal/services/task"
	timeentryservice "github.com/thenoetrevino/tally/internal/services/timeentry"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	// Repository layer (direct database access)
	repo database.DataStore
	db   *sqlx.DB // set when the App opened the database itself

	engine  *aggregate.Engine
	actorID int
	clock   lifecycle.Clock

	// Service layer (business logic)
	ProjectService     projectservice.Service
	TaskService        taskservice.Service
	ExpenditureService expenditureservice.Service
	TimeEntryService   timeentryservice.Service
	CommentService     commentservice.Service
}

// New creates a new App with all services initialized.
// This is the single entry point for creating the application container.
func New(repo database.DataStore, opts ...Option) *App {
	cfg := defaultAppConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	engine := aggregate.NewEngine(cfg.mode)
	if cfg.logger != nil {
		cfg.logger.Debug("application container created", "cost_tracking_mode", engine.Mode())
	}

	return &App{
		repo:               repo,
		engine:             engine,
		actorID:            cfg.actorID,
		clock:              cfg.clock,
		ProjectService:     projectservice.NewService(repo, engine, projectservice.Options{DefaultCurrency: cfg.currency}),
		TaskService:        taskservice.NewService(repo, engine, cfg.clock),
		ExpenditureService: expenditureservice.NewService(repo, engine),
		TimeEntryService:   timeentryservice.NewService(repo, engine, cfg.clock),
		CommentService:     commentservice.NewService(repo),
	}
}

// Open initializes the database named by cfg and builds an App over it.
// Close releases the database.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	db, err := database.InitDB(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	base := []Option{
		WithCostTrackingMode(cfg.CostTracking.Mode),
		WithDefaultCurrency(cfg.Defaults.Currency),
		WithActorID(cfg.Defaults.ActorID),
	}
	a := New(database.NewRepository(db), append(base, opts...)...)
	a.db = db
	return a, nil
}

// Repo returns the underlying repository for direct database access.
func (a *App) Repo() database.DataStore {
	return a.repo
}

// Engine returns the aggregation engine bound to the deployment's cost tracking mode
func (a *App) Engine() *aggregate.Engine {
	return a.engine
}

// ActorID is the user id recorded on writes made through this App
func (a *App) ActorID() int {
	return a.actorID
}

// Now reads the App's clock
func (a *App) Now() time.Time {
	if a.clock == nil {
		return time.Now()
	}
	return a.clock()
}

// NewRelay builds an outbox relay over the App's repository.
// A nil registerer leaves the relay without metrics.
func (a *App) NewRelay(cfg config.RelayConfig, sink events.Sink, reg prometheus.Registerer) *relay.Relay {
	var m *relay.Metrics
	if reg != nil {
		m = relay.NewMetrics(reg)
	}
	return relay.New(a.repo, sink, RelayConfig(cfg), m)
}

// RelayConfig converts the relay section of the config file into relay settings
func RelayConfig(c config.RelayConfig) relay.Config {
	rc := relay.DefaultConfig()
	rc.PollInterval = c.PollInterval
	rc.BatchSize = c.BatchSize
	rc.MaxAttempts = c.MaxAttempts
	rc.DeliveryAttempts = c.DeliveryAttempts
	rc.Retention = c.Retention
	rc.Breaker = relay.BreakerConfig{
		MaxRequests:         c.Breaker.MaxRequests,
		Interval:            c.Breaker.Interval,
		Timeout:             c.Breaker.Timeout,
		ConsecutiveFailures: c.Breaker.ConsecutiveFailures,
	}
	return rc
}

// Close performs cleanup of application resources.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
