package converters

import (
	"fmt"

	"github.com/thenoetrevino/tally/internal/database/records"
	"github.com/thenoetrevino/tally/internal/models"
)

// ExpenditureToModel converts a records.Expenditure to models.Expenditure
func ExpenditureToModel(r records.Expenditure) (*models.Expenditure, error) {
	amount, err := models.ParseAmount(r.Amount)
	if err != nil {
		return nil, fmt.Errorf("expenditure %d amount: %w", r.ID, err)
	}
	date, err := ParseDate(r.ExpenseDate)
	if err != nil {
		return nil, fmt.Errorf("expenditure %d expense_date: %w", r.ID, err)
	}

	return &models.Expenditure{
		ID:          int(r.ID),
		ProjectID:   int(r.ProjectID),
		Description: r.Description.String,
		Amount:      amount,
		ExpenseDate: date,
		RecordedBy:  int(r.RecordedBy),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}

// ExpendituresToModels converts a slice of expenditure records, failing on the first bad row
func ExpendituresToModels(rs []records.Expenditure) ([]*models.Expenditure, error) {
	out := make([]*models.Expenditure, 0, len(rs))
	for _, r := range rs {
		e, err := ExpenditureToModel(r)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// ExpenditureFromModel converts a models.Expenditure to its record
func ExpenditureFromModel(e *models.Expenditure) records.Expenditure {
	return records.Expenditure{
		ID:          int64(e.ID),
		ProjectID:   int64(e.ProjectID),
		Description: stringToNull(e.Description),
		Amount:      e.Amount.String(),
		ExpenseDate: FormatDate(e.ExpenseDate),
		RecordedBy:  int64(e.RecordedBy),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// TimeEntryToModel converts a records.TimeEntry to models.TimeEntry
func TimeEntryToModel(r records.TimeEntry) (*models.TimeEntry, error) {
	date, err := ParseDate(r.DateWorked)
	if err != nil {
		return nil, fmt.Errorf("time entry %d date_worked: %w", r.ID, err)
	}

	return &models.TimeEntry{
		ID:          int(r.ID),
		TaskID:      int(r.TaskID),
		UserID:      int(r.UserID),
		DateWorked:  date,
		Duration:    int(r.Duration),
		Description: r.Description.String,
		CreatedAt:   r.CreatedAt,
	}, nil
}

// TimeEntriesToModels converts a slice of time entry records, failing on the first bad row
func TimeEntriesToModels(rs []records.TimeEntry) ([]*models.TimeEntry, error) {
	out := make([]*models.TimeEntry, 0, len(rs))
	for _, r := range rs {
		e, err := TimeEntryToModel(r)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// TimeEntryFromModel converts a models.TimeEntry to its record
func TimeEntryFromModel(e *models.TimeEntry) records.TimeEntry {
	return records.TimeEntry{
		ID:          int64(e.ID),
		TaskID:      int64(e.TaskID),
		UserID:      int64(e.UserID),
		DateWorked:  FormatDate(e.DateWorked),
		Duration:    int64(e.Duration),
		Description: stringToNull(e.Description),
		CreatedAt:   e.CreatedAt,
	}
}

// CommentToModel converts a records.Comment to models.Comment
func CommentToModel(r records.Comment) *models.Comment {
	return &models.Comment{
		ID:        int(r.ID),
		TaskID:    int(r.TaskID),
		UserID:    int(r.UserID),
		Body:      r.Body,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// CommentsToModels converts a slice of comment records
func CommentsToModels(rs []records.Comment) []*models.Comment {
	out := make([]*models.Comment, 0, len(rs))
	for _, r := range rs {
		out = append(out, CommentToModel(r))
	}
	return out
}
