package timeentry

import "errors"

// Time entry errors
var (
	ErrInvalidTimeEntryID = errors.New("invalid time entry ID")
	ErrInvalidTaskID      = errors.New("invalid task ID")
	ErrMissingDateWorked  = errors.New("date worked is required")
	ErrDateInFuture       = errors.New("cannot log time for a future date")
	ErrDescriptionTooLong = errors.New("time entry description is too long")

	ErrTimeEntryNotFound  = errors.New("time entry not found")
	ErrTimeEntryNotInTask = errors.New("time entry does not belong to this task")
	ErrTaskNotFound       = errors.New("task not found")
)
