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

// CommentRepo handles task comments.
type CommentRepo struct {
	db sqlx.ExtContext
}

func (r *CommentRepo) CreateComment(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (task_id, user_id, body, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		c.TaskID, c.UserID, c.Body, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert comment for task %d: %w", c.TaskID, err)
	}

	id, err := insertID(res, "comment")
	if err != nil {
		return nil, err
	}

	created := *c
	created.ID = id
	created.CreatedAt, created.UpdatedAt = now, now
	return &created, nil
}

func (r *CommentRepo) GetComment(ctx context.Context, id int) (*models.Comment, error) {
	var rec records.Comment
	if err := sqlx.GetContext(ctx, r.db, &rec,
		`SELECT id, task_id, user_id, body, created_at, updated_at FROM comments WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to get comment %d: %w", id, err)
	}
	return converters.CommentToModel(rec), nil
}

// ListComments returns a task's comments oldest first
func (r *CommentRepo) ListComments(ctx context.Context, taskID int) ([]*models.Comment, error) {
	var recs []records.Comment
	if err := sqlx.SelectContext(ctx, r.db, &recs, `
		SELECT id, task_id, user_id, body, created_at, updated_at FROM comments
		WHERE task_id = ? ORDER BY created_at ASC, id ASC`, taskID); err != nil {
		return nil, fmt.Errorf("failed to query comments for task %d: %w", taskID, err)
	}
	return converters.CommentsToModels(recs), nil
}

func (r *CommentRepo) DeleteComment(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment %d: %w", id, err)
	}
	return requireAffected(res, "comment", id)
}
