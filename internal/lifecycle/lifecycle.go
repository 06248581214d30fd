// Package lifecycle owns the completion state machine of a task.
//
// Status and completed_at only ever change together through this package, so the
// invariant "completed_at is set iff status is completed" holds after every call.
// Functions never mutate their argument; they return a modified copy, and on error
// they return nil.
package lifecycle

import (
	"fmt"
	"time"

	"github.com/thenoetrevino/tally/internal/models"
)

// Clock returns the current time. Services inject it so tests can pin completed_at.
type Clock func() time.Time

// NewTask returns the starting state for a brand-new task: pending, not completed,
// default priority. Callers fill in the descriptive fields.
func NewTask(projectID int, title string) *models.Task {
	return &models.Task{
		ProjectID: projectID,
		Title:     title,
		Status:    models.TaskStatusPending,
		Priority:  models.DefaultPriority,
	}
}

// SetStatus applies a generic status change. Moving away from completed clears
// completed_at. Moving to completed never stamps completed_at: a task that is already
// completed is returned unchanged, any other task fails with ErrCompletionNotRecorded.
func SetStatus(task *models.Task, status models.TaskStatus) (*models.Task, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidStatus, status)
	}

	next := task.Clone()
	if status == models.TaskStatusCompleted {
		if task.IsCompleted() {
			return next, nil
		}
		return nil, ErrCompletionNotRecorded
	}

	next.Status = status
	next.CompletedAt = nil
	return next, nil
}

// MarkComplete moves a task to completed and stamps completed_at with now()
func MarkComplete(task *models.Task, now Clock) (*models.Task, error) {
	if task.IsCompleted() {
		return nil, ErrAlreadyCompleted
	}

	stamp := now()
	next := task.Clone()
	next.Status = models.TaskStatusCompleted
	next.CompletedAt = &stamp
	return next, nil
}

// UndoComplete reopens a completed task. It lands on in progress, not pending.
func UndoComplete(task *models.Task) (*models.Task, error) {
	if !task.IsCompleted() {
		return nil, ErrNotCompleted
	}

	next := task.Clone()
	next.Status = models.TaskStatusInProgress
	next.CompletedAt = nil
	return next, nil
}

// CheckInvariant reports ErrInconsistentState when status and completed_at disagree
func CheckInvariant(task *models.Task) error {
	if task.IsCompleted() != (task.CompletedAt != nil) {
		return fmt.Errorf("%w: task %d has status %q and completed_at set=%t",
			ErrInconsistentState, task.ID, task.Status, task.CompletedAt != nil)
	}
	return nil
}

// CheckSnapshot runs CheckInvariant over every task of a project snapshot
func CheckSnapshot(s *models.ProjectSnapshot) error {
	for _, t := range s.Tasks {
		if err := CheckInvariant(t); err != nil {
			return err
		}
	}
	return nil
}
