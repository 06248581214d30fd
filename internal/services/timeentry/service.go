package timeentry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/thenoetrevino/tally/internal/aggregate"
	"github.com/thenoetrevino/tally/internal/database"
	"github.com/thenoetrevino/tally/internal/lifecycle"
	"github.com/thenoetrevino/tally/internal/models"
	"github.com/thenoetrevino/tally/internal/services/metrics"
	"github.com/thenoetrevino/tally/internal/services/validation"
)

// Service defines time logging against tasks
type Service interface {
	GetTimeEntry(ctx context.Context, taskID, id int) (*models.TimeEntry, error)
	ListTimeEntries(ctx context.Context, taskID int) ([]*models.TimeEntry, error)
	LogTime(ctx context.Context, req LogTimeRequest) (*Result, error)
	DeleteTimeEntry(ctx context.Context, taskID, id int) (*models.TaskMetrics, error)
}

// Result is a time entry as stored, with its task's recomputed metrics
type Result struct {
	TimeEntry *models.TimeEntry   `json:"time_entry"`
	Task      *models.TaskMetrics `json:"task"`
}

// LogTimeRequest encapsulates data for logging time
type LogTimeRequest struct {
	TaskID      int
	Duration    int // minutes
	DateWorked  time.Time
	Description string `validate:"max=65535"`
	ActorID     int
}

type service struct {
	repo   database.DataStore
	engine *aggregate.Engine
	now    lifecycle.Clock
}

// NewService creates a new time entry service. now decides what "today" is when
// rejecting future dates; nil means time.Now.
func NewService(repo database.DataStore, engine *aggregate.Engine, now lifecycle.Clock) Service {
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, engine: engine, now: now}
}

func (s *service) GetTimeEntry(ctx context.Context, taskID, id int) (*models.TimeEntry, error) {
	if err := checkIDs(taskID, id); err != nil {
		return nil, err
	}
	return owned(ctx, s.repo, taskID, id)
}

// ListTimeEntries returns a task's entries, most recent date worked first
func (s *service) ListTimeEntries(ctx context.Context, taskID int) ([]*models.TimeEntry, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	if _, err := s.repo.GetTask(ctx, taskID); err != nil {
		return nil, taskError(err)
	}

	entries, err := s.repo.ListTimeEntries(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	return entries, nil
}

// LogTime records minutes worked on a task
func (s *service) LogTime(ctx context.Context, req LogTimeRequest) (*Result, error) {
	if req.TaskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	if err := models.ValidateDuration(req.Duration); err != nil {
		return nil, err
	}
	if req.DateWorked.IsZero() {
		return nil, ErrMissingDateWorked
	}
	if afterToday(req.DateWorked, s.now()) {
		return nil, ErrDateInFuture
	}
	if fe, err := validation.Struct(req); err != nil {
		return nil, fmt.Errorf("failed to validate request: %w", err)
	} else if fe != nil {
		return nil, ErrDescriptionTooLong
	}

	var created *models.TimeEntry
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		if _, err := tx.GetTask(ctx, req.TaskID); err != nil {
			return taskError(err)
		}

		var err error
		created, err = tx.CreateTimeEntry(ctx, &models.TimeEntry{
			TaskID:      req.TaskID,
			UserID:      req.ActorID,
			DateWorked:  req.DateWorked,
			Duration:    req.Duration,
			Description: strings.TrimSpace(req.Description),
		})
		if err != nil {
			return fmt.Errorf("failed to log time: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m, err := s.taskMetrics(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}
	return &Result{TimeEntry: created, Task: m}, nil
}

// DeleteTimeEntry removes an entry and returns the task's metrics after it
func (s *service) DeleteTimeEntry(ctx context.Context, taskID, id int) (*models.TaskMetrics, error) {
	if err := checkIDs(taskID, id); err != nil {
		return nil, err
	}

	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		if _, err := owned(ctx, tx, taskID, id); err != nil {
			return err
		}
		if err := tx.DeleteTimeEntry(ctx, id); err != nil {
			return fmt.Errorf("failed to delete time entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.taskMetrics(ctx, taskID)
}

func (s *service) taskMetrics(ctx context.Context, taskID int) (*models.TaskMetrics, error) {
	_, m, err := metrics.Task(ctx, s.repo, s.engine, taskID)
	if err != nil {
		return nil, taskError(err)
	}
	return m, nil
}

func owned(ctx context.Context, r database.DataStore, taskID, id int) (*models.TimeEntry, error) {
	e, err := r.GetTimeEntry(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrTimeEntryNotFound
		}
		return nil, fmt.Errorf("failed to get time entry: %w", err)
	}
	if e.TaskID != taskID {
		return nil, ErrTimeEntryNotInTask
	}
	return e, nil
}

// afterToday reports whether the calendar date of day falls after today. Today is
// always the UTC calendar date of now, whatever zone the clock reports in.
func afterToday(day, now time.Time) bool {
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	y, m, d = day.Date()
	worked := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return worked.After(today)
}

func taskError(err error) error {
	if database.IsNotFound(err) {
		return ErrTaskNotFound
	}
	return fmt.Errorf("failed to load task: %w", err)
}

func checkIDs(taskID, id int) error {
	if taskID <= 0 {
		return ErrInvalidTaskID
	}
	if id <= 0 {
		return ErrInvalidTimeEntryID
	}
	return nil
}
