package cli

import (
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/thenoetrevino/tally/internal/app"
	"github.com/thenoetrevino/tally/internal/testutil"
)

// SetupCLITest creates an in-memory DB and returns both the DB and App instance.
// This function is only for CLI tests and is isolated in a separate package
// to avoid import cycles when service tests import testutil.
func SetupCLITest(t *testing.T, opts ...app.Option) (*sqlx.DB, *app.App) {
	t.Helper()
	db, repo := testutil.SetupTestDB(t)
	return db, app.New(repo, opts...)
}

// CreateTestProject wraps testutil.CreateTestProject for CLI tests.
// An empty budget leaves the project without one.
func CreateTestProject(t *testing.T, a *app.App, name, budget string) int {
	t.Helper()
	return testutil.CreateTestProject(t, a.Repo(), name, budget)
}

// CreateTestTask wraps testutil.CreateTestTask for CLI tests
func CreateTestTask(t *testing.T, a *app.App, projectID int, title string) int {
	t.Helper()
	return testutil.CreateTestTask(t, a.Repo(), projectID, title)
}

// CreateTestExpenditure wraps testutil.CreateTestExpenditure for CLI tests
func CreateTestExpenditure(t *testing.T, a *app.App, projectID int, amount string) int {
	t.Helper()
	return testutil.CreateTestExpenditure(t, a.Repo(), projectID, amount)
}
