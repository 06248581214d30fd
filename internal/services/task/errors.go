package task

import (
	"errors"

	"github.com/thenoetrevino/tally/internal/lifecycle"
)

// Task-related errors
var (
	// Validation errors
	ErrEmptyTitle       = errors.New("task title cannot be empty")
	ErrTitleTooLong     = errors.New("task title cannot exceed 255 characters")
	ErrInvalidTaskID    = errors.New("invalid task ID")
	ErrInvalidProjectID = errors.New("invalid project ID")
	ErrInvalidUserID    = errors.New("invalid user ID")

	// Business logic errors
	ErrTaskNotFound    = errors.New("task not found")
	ErrProjectNotFound = errors.New("project not found")
)

// Lifecycle errors, re-exported so callers of this package need not import lifecycle
var (
	ErrAlreadyCompleted      = lifecycle.ErrAlreadyCompleted
	ErrNotCompleted          = lifecycle.ErrNotCompleted
	ErrCompletionNotRecorded = lifecycle.ErrCompletionNotRecorded
	ErrInconsistentState     = lifecycle.ErrInconsistentState
)
