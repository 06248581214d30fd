package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/tally/internal/converters"
	"github.com/thenoetrevino/tally/internal/database/records"
	"github.com/thenoetrevino/tally/internal/models"
)

const timeEntryColumns = `id, task_id, user_id, date_worked, duration, description, created_at`

// TimeEntryRepo handles minutes logged against tasks.
type TimeEntryRepo struct {
	db sqlx.ExtContext
}

func (r *TimeEntryRepo) CreateTimeEntry(ctx context.Context, e *models.TimeEntry) (*models.TimeEntry, error) {
	rec := converters.TimeEntryFromModel(e)
	rec.CreatedAt = time.Now().UTC()

	res, err := sqlx.NamedExecContext(ctx, r.db, `
		INSERT INTO time_entries (task_id, user_id, date_worked, duration, description, created_at)
		VALUES (:task_id, :user_id, :date_worked, :duration, :description, :created_at)`, rec)
	if err != nil {
		return nil, fmt.Errorf("failed to insert time entry for task %d: %w", e.TaskID, err)
	}

	id, err := insertID(res, "time entry")
	if err != nil {
		return nil, err
	}

	created := *e
	created.ID = id
	created.CreatedAt = rec.CreatedAt
	return &created, nil
}

func (r *TimeEntryRepo) GetTimeEntry(ctx context.Context, id int) (*models.TimeEntry, error) {
	var rec records.TimeEntry
	if err := sqlx.GetContext(ctx, r.db, &rec,
		`SELECT `+timeEntryColumns+` FROM time_entries WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to get time entry %d: %w", id, err)
	}
	return converters.TimeEntryToModel(rec)
}

// ListTimeEntries returns a task's time entries, latest date worked first
func (r *TimeEntryRepo) ListTimeEntries(ctx context.Context, taskID int) ([]*models.TimeEntry, error) {
	return listTimeEntries(ctx, r.db, taskID)
}

func listTimeEntries(ctx context.Context, q sqlx.QueryerContext, taskID int) ([]*models.TimeEntry, error) {
	var recs []records.TimeEntry
	if err := sqlx.SelectContext(ctx, q, &recs,
		`SELECT `+timeEntryColumns+` FROM time_entries WHERE task_id = ?
		ORDER BY date_worked DESC, id DESC`, taskID); err != nil {
		return nil, fmt.Errorf("failed to query time entries for task %d: %w", taskID, err)
	}
	return converters.TimeEntriesToModels(recs)
}

func (r *TimeEntryRepo) DeleteTimeEntry(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM time_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete time entry %d: %w", id, err)
	}
	return requireAffected(res, "time entry", id)
}
