package converters

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/thenoetrevino/tally/internal/database/records"
	"github.com/thenoetrevino/tally/internal/events"
	"github.com/thenoetrevino/tally/internal/models"
)

// ============================================================================
// TEST CASES - TaskToModel
// ============================================================================

func TestTaskToModel(t *testing.T) {
	now := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   records.Task
		check   func(t *testing.T, task *models.Task)
		wantErr error
	}{
		{
			name: "completed task with all fields",
			input: records.Task{
				ID:             12,
				ProjectID:      3,
				Title:          "Install windows",
				Description:    sql.NullString{String: "Second floor", Valid: true},
				Status:         "completed",
				Priority:       "high",
				AssignedUserID: sql.NullInt64{Int64: 8, Valid: true},
				CreatedBy:      1,
				DueDate:        sql.NullString{String: "2025-02-10", Valid: true},
				CompletedAt:    sql.NullTime{Time: now, Valid: true},
				ActualCost:     sql.NullString{String: "1200.50", Valid: true},
				CreatedAt:      now,
				UpdatedAt:      now,
			},
			check: func(t *testing.T, task *models.Task) {
				if task.ID != 12 || task.ProjectID != 3 {
					t.Errorf("Unexpected ids: %d/%d", task.ID, task.ProjectID)
				}
				if task.Status != models.TaskStatusCompleted || task.Priority != models.PriorityHigh {
					t.Errorf("Unexpected status/priority: %q/%q", task.Status, task.Priority)
				}
				if task.AssignedUserID == nil || *task.AssignedUserID != 8 {
					t.Errorf("Expected assignee 8, got %v", task.AssignedUserID)
				}
				if task.DueDate == nil || task.DueDate.Format(models.DateLayout) != "2025-02-10" {
					t.Errorf("Unexpected due date %v", task.DueDate)
				}
				if task.CompletedAt == nil || !task.CompletedAt.Equal(now) {
					t.Errorf("Unexpected completed_at %v", task.CompletedAt)
				}
				if !task.ActualCost.Valid || task.ActualCost.Decimal.String() != "1200.5" {
					t.Errorf("Unexpected actual cost %v", task.ActualCost)
				}
				if task.Description != "Second floor" {
					t.Errorf("Unexpected description %q", task.Description)
				}
			},
		},
		{
			name: "pending task with nulls",
			input: records.Task{
				ID: 1, ProjectID: 1, Title: "Survey", Status: "pending", Priority: "medium",
			},
			check: func(t *testing.T, task *models.Task) {
				if task.AssignedUserID != nil || task.DueDate != nil || task.CompletedAt != nil {
					t.Errorf("Expected nil optionals, got %+v", task)
				}
				if task.ActualCost.Valid {
					t.Error("Expected unset actual cost")
				}
				if task.Description != "" {
					t.Errorf("Expected empty description, got %q", task.Description)
				}
			},
		},
		{
			name:    "corrupt status",
			input:   records.Task{ID: 2, Status: "blocked", Priority: "low"},
			wantErr: models.ErrInvalidStatus,
		},
		{
			name: "corrupt money",
			input: records.Task{
				ID: 3, Status: "pending", Priority: "low",
				ActualCost: sql.NullString{String: "12,50", Valid: true},
			},
			wantErr: models.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := TaskToModel(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			tt.check(t, task)
		})
	}
}

func TestTaskFromModel_RoundTrip(t *testing.T) {
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	assignee := 4
	in := &models.Task{
		ID:             5,
		ProjectID:      2,
		Title:          "Wire lighting",
		Status:         models.TaskStatusInProgress,
		Priority:       models.PriorityLow,
		AssignedUserID: &assignee,
		DueDate:        &due,
		ActualCost:     decimal.NewNullDecimal(decimal.RequireFromString("99.99")),
	}

	r := TaskFromModel(in)
	if r.Description.Valid {
		t.Error("Expected empty description to be stored as NULL")
	}
	if r.ActualCost.String != "99.99" {
		t.Errorf("Expected cost text 99.99, got %q", r.ActualCost.String)
	}

	out, err := TaskToModel(r)
	if err != nil {
		t.Fatalf("TaskToModel failed: %v", err)
	}
	if out.Status != in.Status || *out.AssignedUserID != assignee || !out.DueDate.Equal(due) {
		t.Errorf("Round trip mismatch: %+v", out)
	}
	if !out.ActualCost.Decimal.Equal(in.ActualCost.Decimal) {
		t.Errorf("Round trip cost mismatch: %s", out.ActualCost.Decimal)
	}
}

// ============================================================================
// TEST CASES - ProjectToModel
// ============================================================================

func TestProjectToModel_Budget(t *testing.T) {
	withBudget := records.Project{
		ID: 1, Name: "Clinic", Status: "In Progress",
		Budget:   sql.NullString{String: "1000.00", Valid: true},
		Currency: sql.NullString{String: "PHP", Valid: true},
	}
	p, err := ProjectToModel(withBudget)
	if err != nil {
		t.Fatalf("ProjectToModel failed: %v", err)
	}
	if !p.HasBudget() || !p.Budget.Decimal.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Unexpected budget %v", p.Budget)
	}
	if p.Status != models.ProjectStatusInProgress || p.Currency != "PHP" {
		t.Errorf("Unexpected project %+v", p)
	}

	noBudget := records.Project{ID: 2, Name: "Shed", Status: "Not Started"}
	p, err = ProjectToModel(noBudget)
	if err != nil {
		t.Fatalf("ProjectToModel failed: %v", err)
	}
	if p.HasBudget() {
		t.Error("Expected no budget")
	}

	back := ProjectFromModel(p)
	if back.Budget.Valid || back.Currency.Valid {
		t.Errorf("Expected NULL budget and currency, got %+v", back)
	}
}

func TestProjectToModel_BadDate(t *testing.T) {
	r := records.Project{ID: 3, Status: "On Hold", StartDate: sql.NullString{String: "03/01/2025", Valid: true}}
	if _, err := ProjectToModel(r); err == nil {
		t.Error("Expected error for malformed start date")
	}
}

// ============================================================================
// TEST CASES - Ledger records
// ============================================================================

func TestExpenditureToModel(t *testing.T) {
	e, err := ExpenditureToModel(records.Expenditure{
		ID: 1, ProjectID: 2, Amount: "250.50", ExpenseDate: "2025-01-15", RecordedBy: 7,
	})
	if err != nil {
		t.Fatalf("ExpenditureToModel failed: %v", err)
	}
	if !e.Amount.Equal(decimal.RequireFromString("250.50")) {
		t.Errorf("Unexpected amount %s", e.Amount)
	}
	if FormatDate(e.ExpenseDate) != "2025-01-15" {
		t.Errorf("Unexpected date %v", e.ExpenseDate)
	}

	if r := ExpenditureFromModel(e); r.Amount != "250.5" || r.ExpenseDate != "2025-01-15" {
		t.Errorf("Unexpected record %+v", r)
	}

	if _, err := ExpenditureToModel(records.Expenditure{Amount: "abc", ExpenseDate: "2025-01-15"}); !errors.Is(err, models.ErrInvalidAmount) {
		t.Errorf("Expected ErrInvalidAmount, got %v", err)
	}
}

func TestTimeEntryToModel(t *testing.T) {
	e, err := TimeEntryToModel(records.TimeEntry{ID: 1, TaskID: 4, UserID: 2, DateWorked: "2025-03-01", Duration: 45})
	if err != nil {
		t.Fatalf("TimeEntryToModel failed: %v", err)
	}
	if e.Duration != 45 || e.TaskID != 4 {
		t.Errorf("Unexpected entry %+v", e)
	}
	if TimeEntryFromModel(e).DateWorked != "2025-03-01" {
		t.Error("Date did not round trip")
	}
}

func TestCommentsToModels(t *testing.T) {
	out := CommentsToModels([]records.Comment{{ID: 1, Body: "a"}, {ID: 2, Body: "b"}})
	if len(out) != 2 || out[1].Body != "b" {
		t.Errorf("Unexpected comments %+v", out)
	}
}

// ============================================================================
// TEST CASES - Outbox
// ============================================================================

func TestEventOutboxRoundTrip(t *testing.T) {
	ev, err := events.New(events.TaskCreated, 1, 2, 3, map[string]int{"id": 2})
	if err != nil {
		t.Fatalf("events.New failed: %v", err)
	}

	r := EventToOutbox(ev)
	if r.Status != "pending" {
		t.Errorf("Expected pending status, got %q", r.Status)
	}

	back := OutboxToEvent(r)
	if back.ID != ev.ID || back.Type != ev.Type || string(back.Payload) != string(ev.Payload) {
		t.Errorf("Round trip mismatch: %+v vs %+v", back, ev)
	}
}
