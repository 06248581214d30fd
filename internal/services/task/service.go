package task

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/thenoetrevino/tally/internal/aggregate"
	"github.com/thenoetrevino/tally/internal/database"
	"github.com/thenoetrevino/tally/internal/events"
	"github.com/thenoetrevino/tally/internal/lifecycle"
	"github.com/thenoetrevino/tally/internal/models"
	"github.com/thenoetrevino/tally/internal/services/metrics"
	"github.com/thenoetrevino/tally/internal/services/validation"
)

// Service defines all task-related business operations
type Service interface {
	// Read operations
	GetTask(ctx context.Context, taskID int) (*TaskDetail, error)
	ListTasks(ctx context.Context, projectID int) ([]*models.Task, error)
	ListTasksByStatus(ctx context.Context, projectID int, status models.TaskStatus) ([]*models.Task, error)
	ListTasksForUser(ctx context.Context, userID int) ([]*models.Task, error)

	// Write operations
	CreateTask(ctx context.Context, req CreateTaskRequest) (*TaskResult, error)
	UpdateTask(ctx context.Context, req UpdateTaskRequest) (*TaskResult, error)
	DeleteTask(ctx context.Context, taskID, actorID int) (*models.ProjectMetrics, error)

	// Completion
	MarkComplete(ctx context.Context, taskID int) (*TaskResult, error)
	UndoComplete(ctx context.Context, taskID int) (*TaskResult, error)
}

// TaskResult is a task as stored after a write, with its project's recomputed metrics
type TaskResult struct {
	Task    *models.Task           `json:"task"`
	Project *models.ProjectMetrics `json:"project"`
}

// TaskDetail is a task with its derived figures
type TaskDetail struct {
	Task    *models.Task        `json:"task"`
	Metrics *models.TaskMetrics `json:"metrics"`
}

// CreateTaskRequest encapsulates all data needed to create a task
type CreateTaskRequest struct {
	ProjectID      int
	Title          string `validate:"notblank,max=255"`
	Description    string
	Priority       models.Priority // Optional: empty means default
	AssignedUserID *int
	DueDate        *time.Time
	ActualCost     *decimal.Decimal
	ActorID        int
}

// UpdateTaskRequest encapsulates all data needed to update a task
// Fields with pointers are optional - nil means don't update
type UpdateTaskRequest struct {
	TaskID          int
	Title           *string `validate:"omitnil,notblank,max=255"`
	Description     *string
	Priority        *models.Priority
	Status          *models.TaskStatus
	AssignedUserID  *int
	ClearAssignee   bool
	DueDate         *time.Time
	ClearDueDate    bool
	ActualCost      *decimal.Decimal
	ClearActualCost bool
}

// service implements Service interface
type service struct {
	repo   database.DataStore
	engine *aggregate.Engine
	now    lifecycle.Clock
}

// NewService creates a new task service. A nil clock means time.Now.
func NewService(repo database.DataStore, engine *aggregate.Engine, now lifecycle.Clock) Service {
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:   repo,
		engine: engine,
		now:    now,
	}
}

// CreateTask creates a task from the lifecycle's starting state and queues task.created
func (s *service) CreateTask(ctx context.Context, req CreateTaskRequest) (*TaskResult, error) {
	if req.ProjectID <= 0 {
		return nil, ErrInvalidProjectID
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	t := lifecycle.NewTask(req.ProjectID, strings.TrimSpace(req.Title))
	t.Description = req.Description
	t.AssignedUserID = req.AssignedUserID
	t.DueDate = req.DueDate
	t.CreatedBy = req.ActorID
	if req.Priority != "" {
		if !req.Priority.Valid() {
			return nil, fmt.Errorf("%w: %q", models.ErrInvalidPriority, req.Priority)
		}
		t.Priority = req.Priority
	}
	if req.ActualCost != nil {
		if err := models.ValidateNonNegative("actual cost", *req.ActualCost); err != nil {
			return nil, err
		}
		t.ActualCost = decimal.NewNullDecimal(*req.ActualCost)
	}

	var created *models.Task
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		if _, err := tx.GetProject(ctx, req.ProjectID); err != nil {
			if database.IsNotFound(err) {
				return ErrProjectNotFound
			}
			return fmt.Errorf("failed to get project: %w", err)
		}

		var err error
		created, err = tx.CreateTask(ctx, t)
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		return recordTaskEvent(ctx, tx, events.TaskCreated, created, req.ActorID)
	})
	if err != nil {
		return nil, err
	}

	return s.result(ctx, created)
}

// GetTask retrieves a task with its total time spent.
// A stored task that breaks the completion invariant is reported, not repaired.
func (s *service) GetTask(ctx context.Context, taskID int) (*TaskDetail, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}

	t, m, err := metrics.Task(ctx, s.repo, s.engine, taskID)
	if err != nil {
		return nil, s.mapError(err, "failed to get task")
	}
	return &TaskDetail{Task: t, Metrics: m}, nil
}

// ListTasks retrieves every task of a project
func (s *service) ListTasks(ctx context.Context, projectID int) ([]*models.Task, error) {
	if projectID <= 0 {
		return nil, ErrInvalidProjectID
	}
	if err := s.requireProject(ctx, projectID); err != nil {
		return nil, err
	}

	tasks, err := s.repo.ListTasksByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return checkAll(tasks)
}

// ListTasksByStatus retrieves a project's tasks in one status
func (s *service) ListTasksByStatus(ctx context.Context, projectID int, status models.TaskStatus) ([]*models.Task, error) {
	if projectID <= 0 {
		return nil, ErrInvalidProjectID
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidStatus, status)
	}
	if err := s.requireProject(ctx, projectID); err != nil {
		return nil, err
	}

	tasks, err := s.repo.ListTasksByStatus(ctx, projectID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return checkAll(tasks)
}

// ListTasksForUser retrieves the tasks a user is assigned to or created, across projects
func (s *service) ListTasksForUser(ctx context.Context, userID int) ([]*models.Task, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}

	tasks, err := s.repo.ListTasksForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return checkAll(tasks)
}

// UpdateTask applies the non-nil fields of req. Status changes go through
// lifecycle.SetStatus, so they can reopen a task but never complete one.
func (s *service) UpdateTask(ctx context.Context, req UpdateTaskRequest) (*TaskResult, error) {
	if req.TaskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.Priority != nil && !req.Priority.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidPriority, *req.Priority)
	}
	if req.ActualCost != nil {
		if err := models.ValidateNonNegative("actual cost", *req.ActualCost); err != nil {
			return nil, err
		}
	}

	var updated *models.Task
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		existing, err := tx.GetTask(ctx, req.TaskID)
		if err != nil {
			return s.mapError(err, "failed to get task")
		}
		if err := lifecycle.CheckInvariant(existing); err != nil {
			return err
		}

		next := existing
		if req.Status != nil {
			if next, err = lifecycle.SetStatus(existing, *req.Status); err != nil {
				return err
			}
		}

		if req.Title != nil {
			next.Title = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			next.Description = *req.Description
		}
		if req.Priority != nil {
			next.Priority = *req.Priority
		}
		switch {
		case req.ClearAssignee:
			next.AssignedUserID = nil
		case req.AssignedUserID != nil:
			next.AssignedUserID = req.AssignedUserID
		}
		switch {
		case req.ClearDueDate:
			next.DueDate = nil
		case req.DueDate != nil:
			next.DueDate = req.DueDate
		}
		switch {
		case req.ClearActualCost:
			next.ActualCost = decimal.NullDecimal{}
		case req.ActualCost != nil:
			next.ActualCost = decimal.NewNullDecimal(*req.ActualCost)
		}

		if err := tx.UpdateTask(ctx, next); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.result(ctx, updated)
}

// MarkComplete completes a task and stamps completed_at with the service clock.
// The write only applies to a task that is not completed yet, so of two concurrent
// calls exactly one succeeds and the other gets ErrAlreadyCompleted.
func (s *service) MarkComplete(ctx context.Context, taskID int) (*TaskResult, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}

	t, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, s.mapError(err, "failed to get task")
	}
	next, err := lifecycle.MarkComplete(t, s.now)
	if err != nil {
		return nil, err
	}

	ok, err := s.repo.CompleteTask(ctx, taskID, *next.CompletedAt)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.lostRace(ctx, taskID, ErrAlreadyCompleted)
	}

	return s.reload(ctx, taskID)
}

// UndoComplete reopens a completed task as in progress and clears completed_at
func (s *service) UndoComplete(ctx context.Context, taskID int) (*TaskResult, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}

	t, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, s.mapError(err, "failed to get task")
	}
	if _, err := lifecycle.UndoComplete(t); err != nil {
		return nil, err
	}

	ok, err := s.repo.UndoCompleteTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.lostRace(ctx, taskID, ErrNotCompleted)
	}

	return s.reload(ctx, taskID)
}

// DeleteTask queues task.deleted and deletes the task in one transaction.
// Comments and time entries cascade. Returns the project's metrics after the delete.
func (s *service) DeleteTask(ctx context.Context, taskID, actorID int) (*models.ProjectMetrics, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}

	var projectID int
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		t, err := tx.GetTask(ctx, taskID)
		if err != nil {
			return s.mapError(err, "failed to get task")
		}
		projectID = t.ProjectID

		if err := recordTaskEvent(ctx, tx, events.TaskDeleted, t, actorID); err != nil {
			return err
		}
		if err := tx.DeleteTask(ctx, taskID); err != nil {
			return s.mapError(err, "failed to delete task")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.projectMetrics(ctx, projectID)
}

// ============================================================================
// HELPERS
// ============================================================================

func (s *service) requireProject(ctx context.Context, projectID int) error {
	if _, err := s.repo.GetProject(ctx, projectID); err != nil {
		if database.IsNotFound(err) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to get project: %w", err)
	}
	return nil
}

// lostRace decides what a conditional update that touched no rows means:
// the task is gone, or another writer got there first
func (s *service) lostRace(ctx context.Context, taskID int, raceErr error) error {
	if _, err := s.repo.GetTask(ctx, taskID); err != nil {
		return s.mapError(err, "failed to get task")
	}
	return raceErr
}

func (s *service) reload(ctx context.Context, taskID int) (*TaskResult, error) {
	t, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, s.mapError(err, "failed to get task")
	}
	return s.result(ctx, t)
}

func (s *service) result(ctx context.Context, t *models.Task) (*TaskResult, error) {
	m, err := s.projectMetrics(ctx, t.ProjectID)
	if err != nil {
		return nil, err
	}
	return &TaskResult{Task: t, Project: m}, nil
}

func (s *service) projectMetrics(ctx context.Context, projectID int) (*models.ProjectMetrics, error) {
	_, m, err := metrics.Project(ctx, s.repo, s.engine, projectID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to compute project metrics: %w", err)
	}
	return m, nil
}

func (s *service) mapError(err error, msg string) error {
	if database.IsNotFound(err) {
		return ErrTaskNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// checkAll fails the listing if any task breaks the completion invariant
func checkAll(tasks []*models.Task) ([]*models.Task, error) {
	for _, t := range tasks {
		if err := lifecycle.CheckInvariant(t); err != nil {
			return nil, err
		}
	}
	return tasks, nil
}

// validateRequest maps the first failing field of a request to a task error
func validateRequest(req any) error {
	fe, err := validation.Struct(req)
	if err != nil {
		return fmt.Errorf("failed to validate request: %w", err)
	}
	if fe == nil {
		return nil
	}
	if fe.Field == "Title" {
		if fe.Tag == "max" {
			return ErrTitleTooLong
		}
		return ErrEmptyTitle
	}
	return fmt.Errorf("invalid %s (%s)", fe.Field, fe.Tag)
}

// recordTaskEvent queues a task event on the same transaction as the write
func recordTaskEvent(ctx context.Context, tx database.DataStore, typ events.Type, t *models.Task, actorID int) error {
	ev, err := events.New(typ, t.ProjectID, t.ID, actorID, t)
	if err != nil {
		return err
	}
	if err := tx.EnqueueEvent(ctx, ev); err != nil {
		return fmt.Errorf("failed to record %s event: %w", typ, err)
	}
	return nil
}
