package lifecycle

import "errors"

// Lifecycle errors. None of these are transient: retrying the same call fails the same way.
var (
	// ErrAlreadyCompleted is returned when completing a task that is already completed
	ErrAlreadyCompleted = errors.New("task is already completed")

	// ErrNotCompleted is returned when undoing completion of a task that is not completed
	ErrNotCompleted = errors.New("task is not completed")

	// ErrCompletionNotRecorded is returned when a generic status edit tries to move a task to
	// completed. Only MarkComplete records a completion.
	ErrCompletionNotRecorded = errors.New("status completed can only be set by marking the task complete")

	// ErrInconsistentState is returned when a stored task has completed_at set without being
	// completed, or is completed without completed_at
	ErrInconsistentState = errors.New("task has inconsistent completion state")
)
