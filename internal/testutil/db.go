package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/thenoetrevino/tally/internal/database"
	"github.com/thenoetrevino/tally/internal/models"
)

// SetupTestDB creates an in-memory database with full schema and a repository over it
func SetupTestDB(t *testing.T) (*sqlx.DB, *database.Repository) {
	t.Helper()
	db, err := database.InitDB(context.Background(), database.MemoryPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, database.NewRepository(db)
}

// FixedClock returns a clock that always reports at
func FixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// CreateTestProject inserts a project directly and returns its ID.
// An empty budget leaves the project without one.
func CreateTestProject(t *testing.T, repo database.DataStore, name, budget string) int {
	t.Helper()
	p := &models.Project{Name: name, Status: models.ProjectStatusNotStarted, CreatedBy: 1}
	if budget != "" {
		p.Budget = decimal.NewNullDecimal(decimal.RequireFromString(budget))
		p.Currency = "USD"
	}
	created, err := repo.CreateProject(context.Background(), p)
	if err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
	return created.ID
}

// CreateTestTask inserts a pending task directly and returns its ID
func CreateTestTask(t *testing.T, repo database.DataStore, projectID int, title string) int {
	t.Helper()
	created, err := repo.CreateTask(context.Background(), &models.Task{
		ProjectID: projectID,
		Title:     title,
		Status:    models.TaskStatusPending,
		Priority:  models.PriorityMedium,
		CreatedBy: 1,
	})
	if err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}
	return created.ID
}

// CreateTestExpenditure inserts an expenditure directly and returns its ID
func CreateTestExpenditure(t *testing.T, repo database.DataStore, projectID int, amount string) int {
	t.Helper()
	created, err := repo.CreateExpenditure(context.Background(), &models.Expenditure{
		ProjectID:   projectID,
		Amount:      decimal.RequireFromString(amount),
		ExpenseDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		RecordedBy:  1,
	})
	if err != nil {
		t.Fatalf("Failed to create test expenditure: %v", err)
	}
	return created.ID
}

// ForceTaskState writes status and completed_at without any checks, to simulate rows
// written by something other than this program
func ForceTaskState(t *testing.T, db *sqlx.DB, taskID int, status string, completedAt *time.Time) {
	t.Helper()
	var at any
	if completedAt != nil {
		at = completedAt.UTC()
	}
	if _, err := db.Exec(`UPDATE tasks SET status = ?, completed_at = ? WHERE id = ?`, status, at, taskID); err != nil {
		t.Fatalf("Failed to force task state: %v", err)
	}
}

// PendingEvents returns the types of every pending outbox event, oldest first
func PendingEvents(t *testing.T, repo database.DataStore) []string {
	t.Helper()
	entries, err := repo.FetchPendingEvents(context.Background(), 1000)
	if err != nil {
		t.Fatalf("Failed to fetch pending events: %v", err)
	}
	types := make([]string, 0, len(entries))
	for _, e := range entries {
		types = append(types, string(e.Event.Type))
	}
	return types
}
