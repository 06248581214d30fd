package project

import "errors"

// Domain errors for project service
var (
	// Validation errors
	ErrEmptyName        = errors.New("project name cannot be empty")
	ErrNameTooLong      = errors.New("project name cannot exceed 255 characters")
	ErrInvalidProjectID = errors.New("invalid project ID")
	ErrInvalidCurrency  = errors.New("currency must be a 3-letter code")
	ErrInvalidDateRange = errors.New("end date cannot be before start date")

	// Business logic errors
	ErrProjectNotFound = errors.New("project not found")
)
