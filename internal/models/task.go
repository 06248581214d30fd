package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Task is a unit of work inside a project.
// CompletedAt is set if and only if Status is TaskStatusCompleted.
type Task struct {
	ID             int                 `json:"id"`
	ProjectID      int                 `json:"project_id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Status         TaskStatus          `json:"status"`
	Priority       Priority            `json:"priority"`
	AssignedUserID *int                `json:"assigned_user_id"`
	CreatedBy      int                 `json:"created_by"`
	DueDate        *time.Time          `json:"due_date"`
	CompletedAt    *time.Time          `json:"completed_at"`
	ActualCost     decimal.NullDecimal `json:"actual_cost"` // Interpreted in the owning project's currency
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// IsCompleted reports whether the task is in the completed state
func (t *Task) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}

// Clone returns a copy that shares no pointers with t
func (t *Task) Clone() *Task {
	c := *t
	if t.AssignedUserID != nil {
		v := *t.AssignedUserID
		c.AssignedUserID = &v
	}
	if t.DueDate != nil {
		v := *t.DueDate
		c.DueDate = &v
	}
	if t.CompletedAt != nil {
		v := *t.CompletedAt
		c.CompletedAt = &v
	}
	return &c
}

// TaskMetrics holds the figures derived from a task's children
type TaskMetrics struct {
	TaskID         int `json:"task_id"`
	TotalTimeSpent int `json:"total_time_spent"` // minutes
	TimeEntryCount int `json:"time_entry_count"`
}

// TaskSnapshot is a task together with every time entry it owned at the moment it was read
type TaskSnapshot struct {
	Task        *Task
	TimeEntries []*TimeEntry
}
