package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/tally/internal/converters"
	"github.com/thenoetrevino/tally/internal/database/records"
	"github.com/thenoetrevino/tally/internal/models"
)

const taskColumns = `id, project_id, title, description, status, priority, assigned_user_id,
	created_by, due_date, completed_at, actual_cost, created_at, updated_at`

// TaskRepo handles all task-related database operations.
type TaskRepo struct {
	db sqlx.ExtContext
}

// CreateTask inserts t and returns it with its id and timestamps set
func (r *TaskRepo) CreateTask(ctx context.Context, t *models.Task) (*models.Task, error) {
	now := time.Now().UTC()
	rec := converters.TaskFromModel(t)
	rec.CreatedAt, rec.UpdatedAt = now, now

	res, err := sqlx.NamedExecContext(ctx, r.db, `
		INSERT INTO tasks (project_id, title, description, status, priority, assigned_user_id,
			created_by, due_date, completed_at, actual_cost, created_at, updated_at)
		VALUES (:project_id, :title, :description, :status, :priority, :assigned_user_id,
			:created_by, :due_date, :completed_at, :actual_cost, :created_at, :updated_at)`, rec)
	if err != nil {
		return nil, fmt.Errorf("failed to insert task '%s': %w", t.Title, err)
	}

	id, err := insertID(res, "task")
	if err != nil {
		return nil, err
	}

	created := t.Clone()
	created.ID = id
	created.CreatedAt, created.UpdatedAt = now, now
	return created, nil
}

// GetTask retrieves a task by its ID
func (r *TaskRepo) GetTask(ctx context.Context, id int) (*models.Task, error) {
	return getTask(ctx, r.db, id)
}

func getTask(ctx context.Context, q sqlx.QueryerContext, id int) (*models.Task, error) {
	var rec records.Task
	if err := sqlx.GetContext(ctx, q, &rec,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to get task %d: %w", id, err)
	}
	return converters.TaskToModel(rec)
}

// ListTasksByProject retrieves a project's tasks ordered by ID
func (r *TaskRepo) ListTasksByProject(ctx context.Context, projectID int) ([]*models.Task, error) {
	return listTasks(ctx, r.db, projectID)
}

func listTasks(ctx context.Context, q sqlx.QueryerContext, projectID int) ([]*models.Task, error) {
	var recs []records.Task
	if err := sqlx.SelectContext(ctx, q, &recs,
		`SELECT `+taskColumns+` FROM tasks WHERE project_id = ? ORDER BY id`, projectID); err != nil {
		return nil, fmt.Errorf("failed to query tasks for project %d: %w", projectID, err)
	}
	return converters.TasksToModels(recs)
}

// ListTasksForUser retrieves every task assigned to or created by userID, across
// projects, ordered by project and then ID
func (r *TaskRepo) ListTasksForUser(ctx context.Context, userID int) ([]*models.Task, error) {
	var recs []records.Task
	if err := sqlx.SelectContext(ctx, r.db, &recs,
		`SELECT `+taskColumns+` FROM tasks WHERE assigned_user_id = ? OR created_by = ? ORDER BY project_id, id`,
		userID, userID); err != nil {
		return nil, fmt.Errorf("failed to query tasks for user %d: %w", userID, err)
	}
	return converters.TasksToModels(recs)
}

// ListTasksByStatus retrieves a project's tasks in the given status
func (r *TaskRepo) ListTasksByStatus(ctx context.Context, projectID int, status models.TaskStatus) ([]*models.Task, error) {
	var recs []records.Task
	if err := sqlx.SelectContext(ctx, r.db, &recs,
		`SELECT `+taskColumns+` FROM tasks WHERE project_id = ? AND status = ? ORDER BY id`,
		projectID, status.String()); err != nil {
		return nil, fmt.Errorf("failed to query %s tasks for project %d: %w", status, projectID, err)
	}
	return converters.TasksToModels(recs)
}

// UpdateTask writes every mutable column of t, including status and completed_at
// together, and bumps updated_at
func (r *TaskRepo) UpdateTask(ctx context.Context, t *models.Task) error {
	rec := converters.TaskFromModel(t)
	rec.UpdatedAt = time.Now().UTC()

	res, err := sqlx.NamedExecContext(ctx, r.db, `
		UPDATE tasks SET
			title = :title, description = :description, status = :status, priority = :priority,
			assigned_user_id = :assigned_user_id, due_date = :due_date,
			completed_at = :completed_at, actual_cost = :actual_cost, updated_at = :updated_at
		WHERE id = :id`, rec)
	if err != nil {
		return fmt.Errorf("failed to update task %d: %w", t.ID, err)
	}
	if err := requireAffected(res, "task", t.ID); err != nil {
		return err
	}

	t.UpdatedAt = rec.UpdatedAt
	return nil
}

// CompleteTask marks a task completed only if it is not completed yet.
// Returns false when the row was already completed (or does not exist).
func (r *TaskRepo) CompleteTask(ctx context.Context, id int, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks SET status = 'completed', completed_at = ?, updated_at = ?
		WHERE id = ? AND status <> 'completed'`,
		at.UTC(), time.Now().UTC(), id)
	if err != nil {
		return false, fmt.Errorf("failed to complete task %d: %w", id, err)
	}
	return applied(res, id)
}

// UndoCompleteTask reopens a task as in progress only if it is currently completed.
// Returns false when the row was not completed (or does not exist).
func (r *TaskRepo) UndoCompleteTask(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks SET status = 'in progress', completed_at = NULL, updated_at = ?
		WHERE id = ? AND status = 'completed'`,
		time.Now().UTC(), id)
	if err != nil {
		return false, fmt.Errorf("failed to undo completion of task %d: %w", id, err)
	}
	return applied(res, id)
}

// DeleteTask deletes a task; comments and time entries cascade
func (r *TaskRepo) DeleteTask(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	return requireAffected(res, "task", id)
}

func applied(res sql.Result, id int) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows for task %d: %w", id, err)
	}
	return n > 0, nil
}
