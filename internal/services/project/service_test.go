package project

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/tally/internal/aggregate"
	"github.com/thenoetrevino/tally/internal/database"
	"github.com/thenoetrevino/tally/internal/lifecycle"
	"github.com/thenoetrevino/tally/internal/models"
	"github.com/thenoetrevino/tally/internal/testutil"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func newTestService(t *testing.T, mode models.CostTrackingMode) (Service, *database.Repository) {
	t.Helper()
	_, repo := testutil.SetupTestDB(t)
	return NewService(repo, aggregate.NewEngine(mode), Options{DefaultCurrency: "PHP"}), repo
}

func ptr[T any](v T) *T { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ============================================================================
// CREATE
// ============================================================================

func TestCreateProject(t *testing.T) {
	svc, repo := newTestService(t, models.CostTrackingExpenditures)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, CreateProjectRequest{
		Name:    "  Community Hall  ",
		Budget:  ptr(dec("1000")),
		ActorID: 4,
	})
	require.NoError(t, err)

	assert.Equal(t, "Community Hall", p.Name)
	assert.Equal(t, models.ProjectStatusNotStarted, p.Status)
	assert.Equal(t, "PHP", p.Currency, "default currency applies when a budget is set")
	assert.True(t, p.Budget.Valid)
	assert.Equal(t, 4, p.CreatedBy)

	assert.Equal(t, []string{"project.created"}, testutil.PendingEvents(t, repo))
}

func TestCreateProject_NoBudgetDropsCurrency(t *testing.T) {
	svc, _ := newTestService(t, models.CostTrackingExpenditures)

	p, err := svc.CreateProject(context.Background(), CreateProjectRequest{Name: "Shed", Currency: "eur"})
	require.NoError(t, err)
	assert.False(t, p.HasBudget())
	assert.Empty(t, p.Currency)
}

func TestCreateProject_Validation(t *testing.T) {
	svc, repo := newTestService(t, models.CostTrackingExpenditures)
	ctx := context.Background()
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		req     CreateProjectRequest
		wantErr error
	}{
		{"empty name", CreateProjectRequest{Name: ""}, ErrEmptyName},
		{"blank name", CreateProjectRequest{Name: "   "}, ErrEmptyName},
		{"long name", CreateProjectRequest{Name: strings.Repeat("x", 256)}, ErrNameTooLong},
		{"negative budget", CreateProjectRequest{Name: "A", Budget: ptr(dec("-0.01"))}, models.ErrInvalidAmount},
		{"bad currency", CreateProjectRequest{Name: "A", Budget: ptr(dec("1")), Currency: "EURO"}, ErrInvalidCurrency},
		{"end before start", CreateProjectRequest{Name: "A", StartDate: &start, EndDate: ptr(start.AddDate(0, 0, -1))}, ErrInvalidDateRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProject(ctx, tt.req)
			assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
		})
	}

	assert.Empty(t, testutil.PendingEvents(t, repo), "rejected creates must not emit events")
}

// ============================================================================
// UPDATE
// ============================================================================

func TestUpdateProject(t *testing.T) {
	svc, repo := newTestService(t, models.CostTrackingExpenditures)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, CreateProjectRequest{Name: "Clinic", Budget: ptr(dec("500")), Currency: "usd"})
	require.NoError(t, err)
	assert.Equal(t, "USD", p.Currency)

	status := models.ProjectStatusOnHold
	updated, err := svc.UpdateProject(ctx, UpdateProjectRequest{
		ID:     p.ID,
		Name:   ptr("Clinic Phase 2"),
		Status: &status,
		Budget: ptr(dec("750.25")),
	})
	require.NoError(t, err)
	assert.Equal(t, "Clinic Phase 2", updated.Name)
	assert.Equal(t, models.ProjectStatusOnHold, updated.Status)
	assert.True(t, updated.Budget.Decimal.Equal(dec("750.25")))
	assert.Equal(t, "USD", updated.Currency, "currency kept when only the budget changes")

	cleared, err := svc.UpdateProject(ctx, UpdateProjectRequest{ID: p.ID, ClearBudget: true})
	require.NoError(t, err)
	assert.False(t, cleared.HasBudget())

	got, err := svc.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.HasBudget())

	assert.Equal(t, []string{"project.created", "project.updated", "project.updated"}, testutil.PendingEvents(t, repo))
}

func TestUpdateProject_Errors(t *testing.T) {
	svc, repo := newTestService(t, models.CostTrackingExpenditures)
	ctx := context.Background()

	_, err := svc.UpdateProject(ctx, UpdateProjectRequest{ID: 0})
	assert.ErrorIs(t, err, ErrInvalidProjectID)

	_, err = svc.UpdateProject(ctx, UpdateProjectRequest{ID: 42, Name: ptr("x")})
	assert.ErrorIs(t, err, ErrProjectNotFound)

	p, err := svc.CreateProject(ctx, CreateProjectRequest{Name: "A"})
	require.NoError(t, err)

	_, err = svc.UpdateProject(ctx, UpdateProjectRequest{ID: p.ID, Name: ptr(" ")})
	assert.ErrorIs(t, err, ErrEmptyName)

	bad := models.ProjectStatus("Archived")
	_, err = svc.UpdateProject(ctx, UpdateProjectRequest{ID: p.ID, Status: &bad})
	assert.ErrorIs(t, err, models.ErrInvalidStatus)

	start, end := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.UpdateProject(ctx, UpdateProjectRequest{ID: p.ID, StartDate: &start, EndDate: &end})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	got, err := svc.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)
	assert.Equal(t, []string{"project.created"}, testutil.PendingEvents(t, repo), "rejected updates enqueue nothing")
}

// ============================================================================
// METRICS
// ============================================================================

func TestGetProjectDetail_ExpenditureMode(t *testing.T) {
	svc, repo := newTestService(t, models.CostTrackingExpenditures)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, CreateProjectRequest{Name: "Hall", Budget: ptr(dec("1000"))})
	require.NoError(t, err)
	testutil.CreateTestExpenditure(t, repo, p.ID, "250.50")

	for i := 0; i < 4; i++ {
		testutil.CreateTestTask(t, repo, p.ID, "task")
	}
	tasks, err := repo.ListTasksByProject(ctx, p.ID)
	require.NoError(t, err)
	ok, err := repo.CompleteTask(ctx, tasks[0].ID, time.Now())
	require.NoError(t, err)
	require.True(t, ok)

	detail, err := svc.GetProjectDetail(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hall", detail.Project.Name)
	m := detail.Metrics

	assert.True(t, m.TotalExpenditure.Equal(dec("250.50")))
	require.NotNil(t, m.RemainingBudget)
	assert.True(t, m.RemainingBudget.Equal(dec("749.50")), "got %s", m.RemainingBudget)
	assert.Equal(t, 25, m.ProgressPercentage)
	assert.Equal(t, 4, m.TaskCount)
}

func TestGetProjectDetail_TaskCostMode(t *testing.T) {
	svc, repo := newTestService(t, models.CostTrackingTaskCosts)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, CreateProjectRequest{Name: "Hall", Budget: ptr(dec("100"))})
	require.NoError(t, err)
	testutil.CreateTestExpenditure(t, repo, p.ID, "80")

	taskID := testutil.CreateTestTask(t, repo, p.ID, "Costly")
	task, err := repo.GetTask(ctx, taskID)
	require.NoError(t, err)
	task.ActualCost = decimal.NewNullDecimal(dec("130"))
	require.NoError(t, repo.UpdateTask(ctx, task))

	detail, err := svc.GetProjectDetail(ctx, p.ID)
	require.NoError(t, err)
	m := detail.Metrics
	require.NotNil(t, m.RemainingBudget)
	assert.True(t, m.RemainingBudget.Equal(dec("-30")), "overrun is negative, got %s", m.RemainingBudget)
	assert.Equal(t, models.CostTrackingTaskCosts, m.CostTrackingMode)
}

func TestGetProjectDetail_NoBudget(t *testing.T) {
	svc, _ := newTestService(t, models.CostTrackingExpenditures)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, CreateProjectRequest{Name: "Free"})
	require.NoError(t, err)

	detail, err := svc.GetProjectDetail(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.Metrics.RemainingBudget)
	assert.Equal(t, 0, detail.Metrics.ProgressPercentage)
}

func TestListProjects_CarriesMetrics(t *testing.T) {
	svc, repo := newTestService(t, models.CostTrackingExpenditures)
	ctx := context.Background()

	hall, err := svc.CreateProject(ctx, CreateProjectRequest{Name: "Hall", Budget: ptr(dec("500"))})
	require.NoError(t, err)
	testutil.CreateTestExpenditure(t, repo, hall.ID, "120")
	_, err = svc.CreateProject(ctx, CreateProjectRequest{Name: "Free"})
	require.NoError(t, err)

	details, err := svc.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, details, 2)

	byName := map[string]*models.ProjectDetail{}
	for _, d := range details {
		assert.Equal(t, d.Project.ID, d.Metrics.ProjectID)
		byName[d.Project.Name] = d
	}
	require.Contains(t, byName, "Hall")
	require.Contains(t, byName, "Free")

	require.NotNil(t, byName["Hall"].Metrics.RemainingBudget)
	assert.True(t, byName["Hall"].Metrics.RemainingBudget.Equal(dec("380")))
	assert.True(t, byName["Hall"].Metrics.TotalExpenditure.Equal(dec("120")))
	assert.Nil(t, byName["Free"].Metrics.RemainingBudget)
}

func TestListProjects_InconsistentTaskIsFatal(t *testing.T) {
	svc, repo := newTestService(t, models.CostTrackingExpenditures)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, CreateProjectRequest{Name: "Broken"})
	require.NoError(t, err)
	task, err := repo.GetTask(ctx, testutil.CreateTestTask(t, repo, p.ID, "Odd"))
	require.NoError(t, err)
	task.Status = models.TaskStatusCompleted
	require.NoError(t, repo.UpdateTask(ctx, task))

	_, err = svc.ListProjects(ctx)
	assert.ErrorIs(t, err, lifecycle.ErrInconsistentState)
}

func TestGetProjectDetail_InconsistentTaskIsFatal(t *testing.T) {
	svc, repo := newTestService(t, models.CostTrackingExpenditures)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, CreateProjectRequest{Name: "Broken"})
	require.NoError(t, err)
	taskID := testutil.CreateTestTask(t, repo, p.ID, "Odd")

	task, err := repo.GetTask(ctx, taskID)
	require.NoError(t, err)
	task.Status = models.TaskStatusCompleted // completed without completed_at
	require.NoError(t, repo.UpdateTask(ctx, task))

	_, err = svc.GetProjectDetail(ctx, p.ID)
	assert.ErrorIs(t, err, lifecycle.ErrInconsistentState)
}

func TestGetProjectDetail_NotFound(t *testing.T) {
	svc, _ := newTestService(t, models.CostTrackingExpenditures)
	_, err := svc.GetProjectDetail(context.Background(), 77)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

// ============================================================================
// DELETE
// ============================================================================

func TestDeleteProject(t *testing.T) {
	svc, repo := newTestService(t, models.CostTrackingExpenditures)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, CreateProjectRequest{Name: "Gone"})
	require.NoError(t, err)
	testutil.CreateTestTask(t, repo, p.ID, "child")

	require.NoError(t, svc.DeleteProject(ctx, p.ID))

	_, err = svc.GetProject(ctx, p.ID)
	assert.ErrorIs(t, err, ErrProjectNotFound)
	assert.ErrorIs(t, svc.DeleteProject(ctx, p.ID), ErrProjectNotFound)
}
