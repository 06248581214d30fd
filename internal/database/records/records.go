// Package records holds the row shapes read from and written to SQLite.
//
// Field types mirror the column declarations: nullable columns use sql.Null*,
// money columns are TEXT so they round-trip as exact decimal strings, and calendar
// dates are TEXT in models.DateLayout.
package records

import (
	"database/sql"
	"time"
)

type Project struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	StartDate   sql.NullString `db:"start_date"`
	EndDate     sql.NullString `db:"end_date"`
	Status      string         `db:"status"`
	Budget      sql.NullString `db:"budget"`
	Currency    sql.NullString `db:"currency"`
	CreatedBy   int64          `db:"created_by"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

type Task struct {
	ID             int64          `db:"id"`
	ProjectID      int64          `db:"project_id"`
	Title          string         `db:"title"`
	Description    sql.NullString `db:"description"`
	Status         string         `db:"status"`
	Priority       string         `db:"priority"`
	AssignedUserID sql.NullInt64  `db:"assigned_user_id"`
	CreatedBy      int64          `db:"created_by"`
	DueDate        sql.NullString `db:"due_date"`
	CompletedAt    sql.NullTime   `db:"completed_at"`
	ActualCost     sql.NullString `db:"actual_cost"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

type Expenditure struct {
	ID          int64          `db:"id"`
	ProjectID   int64          `db:"project_id"`
	Description sql.NullString `db:"description"`
	Amount      string         `db:"amount"`
	ExpenseDate string         `db:"expense_date"`
	RecordedBy  int64          `db:"recorded_by"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

type TimeEntry struct {
	ID          int64          `db:"id"`
	TaskID      int64          `db:"task_id"`
	UserID      int64          `db:"user_id"`
	DateWorked  string         `db:"date_worked"`
	Duration    int64          `db:"duration"`
	Description sql.NullString `db:"description"`
	CreatedAt   time.Time      `db:"created_at"`
}

type Comment struct {
	ID        int64     `db:"id"`
	TaskID    int64     `db:"task_id"`
	UserID    int64     `db:"user_id"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Outbox is one queued notification event
type Outbox struct {
	ID          string         `db:"id"`
	Type        string         `db:"type"`
	ProjectID   int64          `db:"project_id"`
	EntityID    int64          `db:"entity_id"`
	ActorID     int64          `db:"actor_id"`
	Payload     string         `db:"payload"`
	OccurredAt  time.Time      `db:"occurred_at"`
	Status      string         `db:"status"`
	Attempts    int64          `db:"attempts"`
	LastError   sql.NullString `db:"last_error"`
	DeliveredAt sql.NullTime   `db:"delivered_at"`
}
