package cli

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags or unparseable arguments.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Project, task, expenditure, time entry or comment not found,
	// including a child that exists but belongs to a different parent.
	ExitNotFound = 3

	// ExitDataErr indicates stored data that cannot be processed.
	// Use for: A task whose status and completion time disagree.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Invalid amounts, currencies, statuses, priorities,
	// or any case where input fails validation rules.
	ExitValidation = 5

	// ExitConflict indicates the request is valid but the record is in the wrong state.
	// Use for: Completing a completed task, undoing an open one.
	ExitConflict = 6
)
