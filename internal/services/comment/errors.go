package comment

import "errors"

// Comment errors
var (
	ErrEmptyBody        = errors.New("comment body cannot be empty")
	ErrBodyTooLong      = errors.New("comment body cannot exceed 5000 characters")
	ErrInvalidCommentID = errors.New("invalid comment ID")
	ErrInvalidTaskID    = errors.New("invalid task ID")

	ErrCommentNotFound  = errors.New("comment not found")
	ErrCommentNotInTask = errors.New("comment does not belong to this task")
	ErrTaskNotFound     = errors.New("task not found")
)
