package models

import "errors"

// Validation errors shared by every entity
var (
	// ErrInvalidAmount indicates a negative, non-finite or malformed value for a budget,
	// cost, amount or duration
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidCurrency indicates a currency code that is not three letters
	ErrInvalidCurrency = errors.New("invalid currency code: must be 3 letters")

	// ErrInvalidStatus indicates an unknown task or project status
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidPriority indicates an unknown task priority
	ErrInvalidPriority = errors.New("invalid priority")
)
