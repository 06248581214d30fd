package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/tally/internal/converters"
	"github.com/thenoetrevino/tally/internal/database/records"
	"github.com/thenoetrevino/tally/internal/events"
)

// Outbox row states
const (
	OutboxPending   = "pending"
	OutboxDelivered = "delivered"
	OutboxFailed    = "failed"
)

// OutboxEntry is a queued event together with its delivery bookkeeping
type OutboxEntry struct {
	Event     events.Event
	Attempts  int
	LastError string
}

// OutboxStats counts outbox rows per state
type OutboxStats struct {
	Pending   int `db:"pending"`
	Delivered int `db:"delivered"`
	Failed    int `db:"failed"`
}

// OutboxRepo stores events written alongside entity changes until the relay delivers them.
type OutboxRepo struct {
	db sqlx.ExtContext
}

// EnqueueEvent queues ev as pending. Call it on a transaction-bound repository so the
// event commits or rolls back with the write it describes.
func (r *OutboxRepo) EnqueueEvent(ctx context.Context, ev events.Event) error {
	_, err := sqlx.NamedExecContext(ctx, r.db, `
		INSERT INTO outbox (id, type, project_id, entity_id, actor_id, payload, occurred_at, status)
		VALUES (:id, :type, :project_id, :entity_id, :actor_id, :payload, :occurred_at, :status)`,
		converters.EventToOutbox(ev))
	if err != nil {
		return fmt.Errorf("failed to enqueue %s event: %w", ev.Type, err)
	}
	return nil
}

// FetchPendingEvents returns up to limit pending events, oldest first
func (r *OutboxRepo) FetchPendingEvents(ctx context.Context, limit int) ([]OutboxEntry, error) {
	var recs []records.Outbox
	if err := sqlx.SelectContext(ctx, r.db, &recs, `
		SELECT id, type, project_id, entity_id, actor_id, payload, occurred_at, status,
			attempts, last_error, delivered_at
		FROM outbox WHERE status = ? ORDER BY occurred_at, rowid LIMIT ?`,
		OutboxPending, limit); err != nil {
		return nil, fmt.Errorf("failed to query pending events: %w", err)
	}

	entries := make([]OutboxEntry, 0, len(recs))
	for _, rec := range recs {
		entries = append(entries, OutboxEntry{
			Event:     converters.OutboxToEvent(rec),
			Attempts:  int(rec.Attempts),
			LastError: rec.LastError.String,
		})
	}
	return entries, nil
}

// MarkEventDelivered records a successful delivery
func (r *OutboxRepo) MarkEventDelivered(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE outbox SET status = ?, delivered_at = ?, attempts = attempts + 1, last_error = NULL
		WHERE id = ?`, OutboxDelivered, at.UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to mark event %s delivered: %w", id, err)
	}
	return requireAffected(res, "event", id)
}

// RecordEventFailure counts a failed attempt. Once attempts reach maxAttempts, or when
// park is set, the event leaves the pending queue as failed. Returns true if it was parked.
func (r *OutboxRepo) RecordEventFailure(ctx context.Context, id, cause string, maxAttempts int, park bool) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE outbox SET
			attempts = attempts + 1,
			last_error = ?,
			status = CASE WHEN ? OR attempts + 1 >= ? THEN ? ELSE status END
		WHERE id = ?`, cause, boolToInt(park), maxAttempts, OutboxFailed, id)
	if err != nil {
		return false, fmt.Errorf("failed to record failure of event %s: %w", id, err)
	}
	if err := requireAffected(res, "event", id); err != nil {
		return false, err
	}

	var status string
	if err := sqlx.GetContext(ctx, r.db, &status, `SELECT status FROM outbox WHERE id = ?`, id); err != nil {
		return false, fmt.Errorf("failed to read status of event %s: %w", id, err)
	}
	return status == OutboxFailed, nil
}

// RequeueFailedEvents moves parked events back to pending with a fresh attempt count
func (r *OutboxRepo) RequeueFailedEvents(ctx context.Context) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE outbox SET status = ?, attempts = 0 WHERE status = ?`, OutboxPending, OutboxFailed)
	if err != nil {
		return 0, fmt.Errorf("failed to requeue failed events: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read requeued rows: %w", err)
	}
	return int(n), nil
}

// PurgeDeliveredEvents deletes delivered events older than before
func (r *OutboxRepo) PurgeDeliveredEvents(ctx context.Context, before time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM outbox WHERE status = ? AND delivered_at < ?`, OutboxDelivered, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to purge delivered events: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read purged rows: %w", err)
	}
	return int(n), nil
}

// CountOutbox counts rows per state
func (r *OutboxRepo) CountOutbox(ctx context.Context) (OutboxStats, error) {
	var stats OutboxStats
	err := sqlx.GetContext(ctx, r.db, &stats, `
		SELECT
			COALESCE(SUM(status = 'pending'), 0) AS pending,
			COALESCE(SUM(status = 'delivered'), 0) AS delivered,
			COALESCE(SUM(status = 'failed'), 0) AS failed
		FROM outbox`)
	if err != nil {
		return OutboxStats{}, fmt.Errorf("failed to count outbox rows: %w", err)
	}
	return stats, nil
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
