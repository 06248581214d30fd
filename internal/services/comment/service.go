package comment

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/thenoetrevino/tally/internal/database"
	"github.com/thenoetrevino/tally/internal/events"
	"github.com/thenoetrevino/tally/internal/models"
	"github.com/thenoetrevino/tally/internal/services/validation"
)

// MaxBodyLength is the longest comment body accepted, in characters
const MaxBodyLength = 5000

// Service defines comment operations on tasks
type Service interface {
	ListComments(ctx context.Context, taskID int) ([]*models.Comment, error)
	AddComment(ctx context.Context, req AddCommentRequest) (*models.Comment, error)
	DeleteComment(ctx context.Context, taskID, id int) error
}

// AddCommentRequest encapsulates data for commenting on a task
type AddCommentRequest struct {
	TaskID  int
	Body    string `validate:"notblank"`
	ActorID int
}

type service struct {
	repo database.DataStore
}

// NewService creates a new comment service
func NewService(repo database.DataStore) Service {
	return &service{repo: repo}
}

// ListComments returns a task's comments, oldest first
func (s *service) ListComments(ctx context.Context, taskID int) ([]*models.Comment, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	if _, err := s.repo.GetTask(ctx, taskID); err != nil {
		return nil, taskError(err)
	}

	comments, err := s.repo.ListComments(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// AddComment stores a comment and queues comment.added in the same transaction
func (s *service) AddComment(ctx context.Context, req AddCommentRequest) (*models.Comment, error) {
	if req.TaskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	body := strings.TrimSpace(req.Body)
	if fe, err := validation.Struct(req); err != nil {
		return nil, fmt.Errorf("failed to validate request: %w", err)
	} else if fe != nil {
		return nil, ErrEmptyBody
	}
	if utf8.RuneCountInString(body) > MaxBodyLength {
		return nil, ErrBodyTooLong
	}

	var created *models.Comment
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		t, err := tx.GetTask(ctx, req.TaskID)
		if err != nil {
			return taskError(err)
		}

		created, err = tx.CreateComment(ctx, &models.Comment{
			TaskID: req.TaskID,
			UserID: req.ActorID,
			Body:   body,
		})
		if err != nil {
			return fmt.Errorf("failed to add comment: %w", err)
		}

		ev, err := events.New(events.CommentAdded, t.ProjectID, created.ID, req.ActorID, created)
		if err != nil {
			return err
		}
		if err := tx.EnqueueEvent(ctx, ev); err != nil {
			return fmt.Errorf("failed to record %s event: %w", events.CommentAdded, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// DeleteComment removes one comment of a task
func (s *service) DeleteComment(ctx context.Context, taskID, id int) error {
	if taskID <= 0 {
		return ErrInvalidTaskID
	}
	if id <= 0 {
		return ErrInvalidCommentID
	}

	return s.repo.WithTx(ctx, func(tx database.DataStore) error {
		c, err := tx.GetComment(ctx, id)
		if err != nil {
			if database.IsNotFound(err) {
				return ErrCommentNotFound
			}
			return fmt.Errorf("failed to get comment: %w", err)
		}
		if c.TaskID != taskID {
			return ErrCommentNotInTask
		}
		if err := tx.DeleteComment(ctx, id); err != nil {
			return fmt.Errorf("failed to delete comment: %w", err)
		}
		return nil
	})
}

func taskError(err error) error {
	if database.IsNotFound(err) {
		return ErrTaskNotFound
	}
	return fmt.Errorf("failed to load task: %w", err)
}
