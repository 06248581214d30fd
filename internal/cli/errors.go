package cli

import (
	"errors"

	"github.com/thenoetrevino/tally/internal/lifecycle"
	"github.com/thenoetrevino/tally/internal/models"
	commentservice "github.com/thenoetrevino/tally/internal/services/comment"
	expenditureservice "github.com/thenoetrevino/tally/internal/services/expenditure"
	projectservice "github.com/thenoetrevino/tally/internal/services/project"
	taskservice "github.com/thenoetrevino/tally/internal/services/task"
	timeentryservice "github.com/thenoetrevino/tally/internal/services/timeentry"
)

// CommandError is a failure that has already been reported to the user.
// main exits with Code without printing it again.
type CommandError struct {
	Code int
	Err  error
}

func (e *CommandError) Error() string { return e.Err.Error() }

func (e *CommandError) Unwrap() error { return e.Err }

type errorClass struct {
	code string
	exit int
	errs []error
}

// Checked in order; the first class containing a matching error wins
var errorClasses = []errorClass{
	{"PROJECT_NOT_FOUND", ExitNotFound, []error{
		projectservice.ErrProjectNotFound,
		taskservice.ErrProjectNotFound,
		expenditureservice.ErrProjectNotFound,
	}},
	{"TASK_NOT_FOUND", ExitNotFound, []error{
		taskservice.ErrTaskNotFound,
		timeentryservice.ErrTaskNotFound,
		commentservice.ErrTaskNotFound,
	}},
	{"EXPENDITURE_NOT_FOUND", ExitNotFound, []error{
		expenditureservice.ErrExpenditureNotFound,
		expenditureservice.ErrExpenditureNotInProject,
	}},
	{"TIME_ENTRY_NOT_FOUND", ExitNotFound, []error{
		timeentryservice.ErrTimeEntryNotFound,
		timeentryservice.ErrTimeEntryNotInTask,
	}},
	{"COMMENT_NOT_FOUND", ExitNotFound, []error{
		commentservice.ErrCommentNotFound,
		commentservice.ErrCommentNotInTask,
	}},
	{"ALREADY_COMPLETED", ExitConflict, []error{lifecycle.ErrAlreadyCompleted}},
	{"NOT_COMPLETED", ExitConflict, []error{lifecycle.ErrNotCompleted}},
	{"INCONSISTENT_STATE", ExitDataErr, []error{lifecycle.ErrInconsistentState}},
	{"INVALID_AMOUNT", ExitValidation, []error{models.ErrInvalidAmount}},
	{"VALIDATION_ERROR", ExitValidation, []error{
		models.ErrInvalidCurrency,
		models.ErrInvalidStatus,
		models.ErrInvalidPriority,
		lifecycle.ErrCompletionNotRecorded,
		projectservice.ErrEmptyName,
		projectservice.ErrNameTooLong,
		projectservice.ErrInvalidProjectID,
		projectservice.ErrInvalidCurrency,
		projectservice.ErrInvalidDateRange,
		taskservice.ErrEmptyTitle,
		taskservice.ErrTitleTooLong,
		taskservice.ErrInvalidTaskID,
		taskservice.ErrInvalidProjectID,
		taskservice.ErrInvalidUserID,
		expenditureservice.ErrEmptyDescription,
		expenditureservice.ErrDescriptionTooLong,
		expenditureservice.ErrMissingExpenseDate,
		expenditureservice.ErrInvalidExpenditureID,
		expenditureservice.ErrInvalidProjectID,
		timeentryservice.ErrInvalidTimeEntryID,
		timeentryservice.ErrInvalidTaskID,
		timeentryservice.ErrMissingDateWorked,
		timeentryservice.ErrDateInFuture,
		timeentryservice.ErrDescriptionTooLong,
		commentservice.ErrEmptyBody,
		commentservice.ErrBodyTooLong,
		commentservice.ErrInvalidCommentID,
		commentservice.ErrInvalidTaskID,
	}},
}

func classify(err error) (string, int) {
	for _, class := range errorClasses {
		for _, target := range class.errs {
			if errors.Is(err, target) {
				return class.code, class.exit
			}
		}
	}
	return "ERROR", ExitError
}

// ErrorCode returns the machine-readable code reported for err in JSON output
func ErrorCode(err error) string {
	code, _ := classify(err)
	return code
}

// ExitCode returns the process exit code for err
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *CommandError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	_, code := classify(err)
	return code
}
