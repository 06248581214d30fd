package database

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/thenoetrevino/tally/internal/models"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB creates an in-memory database with every migration applied
func setupTestDB(t *testing.T) (*sqlx.DB, *Repository) {
	t.Helper()
	db, err := InitDB(context.Background(), MemoryPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, NewRepository(db)
}

// ============================================================================
// ENTITY HELPERS
// ============================================================================

func createTestProject(t *testing.T, repo *Repository, budget string) *models.Project {
	t.Helper()
	p := &models.Project{Name: "Test Project", Status: models.ProjectStatusNotStarted, CreatedBy: 1}
	if budget != "" {
		p.Budget = decimal.NewNullDecimal(decimal.RequireFromString(budget))
		p.Currency = "USD"
	}
	created, err := repo.CreateProject(context.Background(), p)
	if err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}
	return created
}

func createTestTask(t *testing.T, repo *Repository, projectID int, title string) *models.Task {
	t.Helper()
	task, err := repo.CreateTask(context.Background(), &models.Task{
		ProjectID: projectID,
		Title:     title,
		Status:    models.TaskStatusPending,
		Priority:  models.PriorityMedium,
	})
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}
	return task
}

func createTestExpenditure(t *testing.T, repo *Repository, projectID int, amount string) *models.Expenditure {
	t.Helper()
	e, err := repo.CreateExpenditure(context.Background(), &models.Expenditure{
		ProjectID:   projectID,
		Amount:      decimal.RequireFromString(amount),
		ExpenseDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Failed to create expenditure: %v", err)
	}
	return e
}
