package expenditure

import "errors"

// Expenditure-related errors
var (
	// Validation errors
	ErrEmptyDescription     = errors.New("expenditure description cannot be empty")
	ErrDescriptionTooLong   = errors.New("expenditure description is too long")
	ErrMissingExpenseDate   = errors.New("expense date is required")
	ErrInvalidExpenditureID = errors.New("invalid expenditure ID")
	ErrInvalidProjectID     = errors.New("invalid project ID")

	// Business logic errors
	ErrExpenditureNotFound     = errors.New("expenditure not found")
	ErrExpenditureNotInProject = errors.New("expenditure does not belong to this project")
	ErrProjectNotFound         = errors.New("project not found")
)
