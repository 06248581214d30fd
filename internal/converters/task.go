// Package converters provides type-safe conversion between database records and
// domain models.
//
// All conversions handle:
// - NULL database values (sql.Null* types)
// - Type coercions (int64 from database to int in domain)
// - Money stored as TEXT, parsed into exact decimals
// - Calendar dates stored as TEXT in models.DateLayout
//
// Conversion failures are explicit - a corrupt money or status column is an error,
// never a silent zero.
package converters

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/thenoetrevino/tally/internal/database/records"
	"github.com/thenoetrevino/tally/internal/models"
)

// TaskToModel converts a records.Task to models.Task.
//
// Handles NULL values for optional fields:
// - description, due_date, actual_cost (sql.NullString)
// - assigned_user_id (sql.NullInt64)
// - completed_at (sql.NullTime)
func TaskToModel(r records.Task) (*models.Task, error) {
	status, err := models.ParseTaskStatus(r.Status)
	if err != nil {
		return nil, fmt.Errorf("task %d: %w", r.ID, err)
	}
	priority, err := models.ParsePriority(r.Priority)
	if err != nil {
		return nil, fmt.Errorf("task %d: %w", r.ID, err)
	}
	cost, err := nullDecimal(r.ActualCost)
	if err != nil {
		return nil, fmt.Errorf("task %d actual_cost: %w", r.ID, err)
	}
	due, err := nullDate(r.DueDate)
	if err != nil {
		return nil, fmt.Errorf("task %d due_date: %w", r.ID, err)
	}

	task := &models.Task{
		ID:             int(r.ID),
		ProjectID:      int(r.ProjectID),
		Title:          r.Title,
		Description:    r.Description.String,
		Status:         status,
		Priority:       priority,
		AssignedUserID: nullInt64ToPtr(r.AssignedUserID),
		CreatedBy:      int(r.CreatedBy),
		DueDate:        due,
		ActualCost:     cost,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if r.CompletedAt.Valid {
		at := r.CompletedAt.Time
		task.CompletedAt = &at
	}

	return task, nil
}

// TasksToModels converts a slice of task records, failing on the first bad row
func TasksToModels(rs []records.Task) ([]*models.Task, error) {
	tasks := make([]*models.Task, 0, len(rs))
	for _, r := range rs {
		t, err := TaskToModel(r)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// TaskFromModel converts a models.Task to the record written by the task repository
func TaskFromModel(t *models.Task) records.Task {
	r := records.Task{
		ID:             int64(t.ID),
		ProjectID:      int64(t.ProjectID),
		Title:          t.Title,
		Description:    stringToNull(t.Description),
		Status:         t.Status.String(),
		Priority:       t.Priority.String(),
		AssignedUserID: intPtrToNull(t.AssignedUserID),
		CreatedBy:      int64(t.CreatedBy),
		DueDate:        dateToNull(t.DueDate),
		ActualCost:     decimalToNull(t.ActualCost),
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
	if t.CompletedAt != nil {
		r.CompletedAt = sql.NullTime{Time: t.CompletedAt.UTC(), Valid: true}
	}
	return r
}

// ============================================================================
// NULL HELPERS
// ============================================================================

// nullInt64ToPtr converts sql.NullInt64 to *int.
// Returns nil if the value is not valid.
func nullInt64ToPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func intPtrToNull(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

// stringToNull stores empty strings as NULL
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullDecimal(v sql.NullString) (decimal.NullDecimal, error) {
	if !v.Valid {
		return decimal.NullDecimal{}, nil
	}
	d, err := models.ParseAmount(v.String)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

func decimalToNull(d decimal.NullDecimal) sql.NullString {
	if !d.Valid {
		return sql.NullString{}
	}
	return sql.NullString{String: d.Decimal.String(), Valid: true}
}

// ParseDate parses a calendar date in models.DateLayout
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders the calendar date of t in models.DateLayout
func FormatDate(t time.Time) string {
	return t.Format(models.DateLayout)
}

func nullDate(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	t, err := ParseDate(v.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func dateToNull(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: FormatDate(*t), Valid: true}
}
