// Package relay drains the event outbox into a sink.
//
// Writes only ever enqueue events; delivery happens here, on its own schedule, so a
// slow or failing sink can never fail or block a write. Each pending event is handed
// to the sink through a circuit breaker. Failures are recorded on the row and retried
// on later polls until max attempts, after which the event is parked as failed.
package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"

	"github.com/thenoetrevino/tally/internal/database"
	"github.com/thenoetrevino/tally/internal/events"
)

// BreakerConfig configures the circuit breaker in front of the sink
type BreakerConfig struct {
	MaxRequests         uint32        // requests allowed through while half-open
	Interval            time.Duration // closed-state count reset period, 0 never resets
	Timeout             time.Duration // how long the breaker stays open
	ConsecutiveFailures uint32        // failures in a row that trip the breaker
}

// Config configures a Relay
type Config struct {
	PollInterval     time.Duration
	BatchSize        int
	MaxAttempts      int           // recorded failures before an event is parked
	DeliveryAttempts int           // immediate retries inside one poll
	Retention        time.Duration // delivered rows older than this are purged, 0 keeps them
	PurgeInterval    time.Duration
	Breaker          BreakerConfig
}

// DefaultConfig returns the relay defaults
func DefaultConfig() Config {
	return Config{
		PollInterval:     2 * time.Second,
		BatchSize:        50,
		MaxAttempts:      5,
		DeliveryAttempts: 3,
		Retention:        7 * 24 * time.Hour,
		PurgeInterval:    time.Hour,
		Breaker: BreakerConfig{
			MaxRequests:         1,
			Timeout:             30 * time.Second,
			ConsecutiveFailures: 3,
		},
	}
}

// Stats summarizes one drain pass
type Stats struct {
	Delivered int
	Retrying  int
	Parked    int
	Skipped   int // left pending because the breaker was open
}

// Relay moves events from the outbox to a sink
type Relay struct {
	store   database.OutboxRepository
	sink    events.Sink
	breaker *gobreaker.CircuitBreaker
	metrics *Metrics
	cfg     Config
	now     func() time.Time
}

// New creates a relay. A nil metrics value registers nothing.
func New(store database.OutboxRepository, sink events.Sink, cfg Config, metrics *Metrics) *Relay {
	def := DefaultConfig()
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = def.PollInterval
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.DeliveryAttempts <= 0 {
		cfg.DeliveryAttempts = 1
	}
	if cfg.PurgeInterval <= 0 {
		cfg.PurgeInterval = def.PurgeInterval
	}
	if cfg.Breaker.ConsecutiveFailures == 0 {
		cfg.Breaker.ConsecutiveFailures = def.Breaker.ConsecutiveFailures
	}

	r := &Relay{
		store:   store,
		sink:    sink,
		metrics: metrics,
		cfg:     cfg,
		now:     time.Now,
	}
	r.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "outbox-sink",
		MaxRequests: cfg.Breaker.MaxRequests,
		Interval:    cfg.Breaker.Interval,
		Timeout:     cfg.Breaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.Breaker.ConsecutiveFailures
		},
		// A payload the sink rejects says nothing about the sink's health
		IsSuccessful: func(err error) bool {
			return err == nil || events.IsPermanent(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Info("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
			if r.metrics != nil {
				r.metrics.SetBreakerState(to)
			}
		},
	})
	return r
}

// BreakerState reports the sink circuit breaker's current state
func (r *Relay) BreakerState() gobreaker.State {
	return r.breaker.State()
}

// Run polls the outbox until ctx is cancelled, purging old delivered rows alongside
func (r *Relay) Run(ctx context.Context) error {
	slog.Info("relay starting",
		"poll_interval", r.cfg.PollInterval,
		"batch_size", r.cfg.BatchSize,
		"max_attempts", r.cfg.MaxAttempts)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return every(ctx, r.cfg.PollInterval, func() {
			if _, err := r.DrainOnce(ctx); err != nil && ctx.Err() == nil {
				slog.Error("outbox drain failed", "error", err)
			}
		})
	})

	if r.cfg.Retention > 0 {
		g.Go(func() error {
			return every(ctx, r.cfg.PurgeInterval, func() {
				if _, err := r.Purge(ctx); err != nil && ctx.Err() == nil {
					slog.Error("outbox purge failed", "error", err)
				}
			})
		})
	}

	err := g.Wait()
	slog.Info("relay stopped")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// every runs fn immediately and then on each tick until ctx is done
func every(ctx context.Context, interval time.Duration, fn func()) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		fn()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// DrainOnce delivers one batch of pending events
func (r *Relay) DrainOnce(ctx context.Context) (Stats, error) {
	var stats Stats

	entries, err := r.store.FetchPendingEvents(ctx, r.cfg.BatchSize)
	if err != nil {
		return stats, fmt.Errorf("failed to fetch pending events: %w", err)
	}

	for i, entry := range entries {
		_, err := r.breaker.Execute(func() (interface{}, error) {
			return nil, events.DeliverWithRetry(ctx, r.sink, entry.Event, r.cfg.DeliveryAttempts)
		})

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			stats.Skipped = len(entries) - i
			slog.Warn("sink circuit open, leaving events pending", "pending", stats.Skipped)
			break
		}
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}

		if err == nil {
			if err := r.store.MarkEventDelivered(ctx, entry.Event.ID, r.now()); err != nil {
				return stats, err
			}
			stats.Delivered++
			r.observe(func(m *Metrics) { m.Delivered.Inc() })
			continue
		}

		parked, recErr := r.store.RecordEventFailure(ctx, entry.Event.ID, err.Error(), r.cfg.MaxAttempts, events.IsPermanent(err))
		if recErr != nil {
			return stats, recErr
		}
		if parked {
			stats.Parked++
			slog.Error("event parked after failed delivery",
				"event_id", entry.Event.ID,
				"event_type", entry.Event.Type,
				"attempts", entry.Attempts+1,
				"error", err)
			r.observe(func(m *Metrics) { m.Failed.WithLabelValues("parked").Inc() })
		} else {
			stats.Retrying++
			r.observe(func(m *Metrics) { m.Failed.WithLabelValues("retry").Inc() })
		}
	}

	if err := r.refreshBacklog(ctx); err != nil {
		return stats, err
	}
	return stats, nil
}

// Purge removes delivered events older than the retention period
func (r *Relay) Purge(ctx context.Context) (int, error) {
	if r.cfg.Retention <= 0 {
		return 0, nil
	}
	n, err := r.store.PurgeDeliveredEvents(ctx, r.now().Add(-r.cfg.Retention))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		slog.Debug("purged delivered events", "count", n)
	}
	return n, nil
}

// Requeue moves every parked event back to pending with a fresh attempt count
func (r *Relay) Requeue(ctx context.Context) (int, error) {
	n, err := r.store.RequeueFailedEvents(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to requeue parked events: %w", err)
	}
	slog.Info("requeued parked events", "count", n)
	if err := r.refreshBacklog(ctx); err != nil {
		return n, err
	}
	return n, nil
}

func (r *Relay) refreshBacklog(ctx context.Context) error {
	if r.metrics == nil {
		return nil
	}
	stats, err := r.store.CountOutbox(ctx)
	if err != nil {
		return err
	}
	r.metrics.Pending.Set(float64(stats.Pending))
	r.metrics.Parked.Set(float64(stats.Failed))
	return nil
}

func (r *Relay) observe(fn func(*Metrics)) {
	if r.metrics != nil {
		fn(r.metrics)
	}
}
