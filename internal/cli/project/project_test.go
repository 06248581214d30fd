package project

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clipkg "github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/testutil/cli"
)

func decimalField(t *testing.T, v interface{}) decimal.Decimal {
	t.Helper()
	s, ok := v.(string)
	require.True(t, ok, "expected decimal encoded as string, got %T", v)
	return decimal.RequireFromString(s)
}

func TestCreateProject_Positive(t *testing.T) {
	db, app := cli.SetupCLITest(t)

	t.Run("Create project with name only", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, CreateCmd(), []string{
			"--name", "New Project",
			"--quiet",
		})
		require.NoError(t, err)

		projectID := cli.ParseQuietID(t, output)

		// Verify project exists in DB
		var name, status string
		err = db.QueryRowContext(context.Background(),
			"SELECT name, status FROM projects WHERE id = ?", projectID).Scan(&name, &status)
		require.NoError(t, err)
		assert.Equal(t, "New Project", name)
		assert.Equal(t, "Not Started", status)
	})

	t.Run("Create project with budget uses default currency", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, CreateCmd(), []string{
			"--name", "Budgeted",
			"--budget", "1500.00",
			"--json",
		})
		require.NoError(t, err)

		result := cli.ParseJSON(t, output)
		assert.Equal(t, true, result["success"])
		project := result["project"].(map[string]interface{})
		assert.Equal(t, "Budgeted", project["name"])
		assert.Equal(t, "USD", project["currency"])
		assert.True(t, decimalField(t, project["budget"]).Equal(decimal.NewFromInt(1500)))
	})

	t.Run("Human output", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, CreateCmd(), []string{
			"--name", "Readable",
			"--budget", "1234.5",
			"--currency", "php",
		})
		require.NoError(t, err)
		assert.Contains(t, output, "✓ Project 'Readable' created successfully")
		assert.Contains(t, output, "1,234.50 PHP")
	})
}

func TestCreateProject_Negative(t *testing.T) {
	_, app := cli.SetupCLITest(t)

	tests := []struct {
		name     string
		args     []string
		wantExit int
		wantCode string
	}{
		{"blank name", []string{"--name", "   ", "--json"}, clipkg.ExitValidation, "VALIDATION_ERROR"},
		{"negative budget", []string{"--name", "P", "--budget=-1", "--json"}, clipkg.ExitValidation, "INVALID_AMOUNT"},
		{"non numeric budget", []string{"--name", "P", "--budget", "lots", "--json"}, clipkg.ExitValidation, "INVALID_AMOUNT"},
		{"bad currency", []string{"--name", "P", "--budget", "5", "--currency", "DOLLARS", "--json"}, clipkg.ExitValidation, "VALIDATION_ERROR"},
		{"bad date", []string{"--name", "P", "--start", "March", "--json"}, clipkg.ExitUsage, "USAGE_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := cli.ExecuteCLICommand(t, app, CreateCmd(), tt.args)
			require.Error(t, err)
			assert.Equal(t, tt.wantExit, cli.ExitCode(t, err))

			result := cli.ParseJSON(t, output)
			assert.Equal(t, false, result["success"])
			assert.Equal(t, tt.wantCode, result["error"].(map[string]interface{})["code"])
		})
	}

	t.Run("missing name flag", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, CreateCmd(), []string{"--quiet"})
		assert.Error(t, err)
	})
}

func TestListProjects(t *testing.T) {
	_, app := cli.SetupCLITest(t)

	output, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{})
	require.NoError(t, err)
	assert.Contains(t, output, "No projects found")

	first := cli.CreateTestProject(t, app, "Alpha", "")
	second := cli.CreateTestProject(t, app, "Beta", "100")

	cli.CreateTestExpenditure(t, app, second, "30")

	output, err = cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--json"})
	require.NoError(t, err)
	projects := cli.ParseJSON(t, output)["projects"].([]interface{})
	require.Len(t, projects, 2)
	for _, entry := range projects {
		e := entry.(map[string]interface{})
		p := e["project"].(map[string]interface{})
		m := e["metrics"].(map[string]interface{})
		assert.Equal(t, p["id"], m["project_id"])
		if p["name"] == "Beta" {
			assert.True(t, decimalField(t, m["remaining_budget"]).Equal(decimal.RequireFromString("70")))
		} else {
			assert.Nil(t, m["remaining_budget"])
		}
	}

	output, err = cli.ExecuteCLICommand(t, app, ListCmd(), []string{})
	require.NoError(t, err)
	assert.Contains(t, output, "70.00 USD")
	assert.Contains(t, output, "remaining: n/a")

	output, err = cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--quiet"})
	require.NoError(t, err)
	assert.Contains(t, output, "1\n")
	assert.Contains(t, output, "2\n")
	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestShowProject_Metrics(t *testing.T) {
	_, app := cli.SetupCLITest(t)

	projectID := cli.CreateTestProject(t, app, "Renovation", "1000")
	cli.CreateTestExpenditure(t, app, projectID, "250.50")
	cli.CreateTestTask(t, app, projectID, "Paint")

	output, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{"1", "--json"})
	require.NoError(t, err)

	result := cli.ParseJSON(t, output)
	metrics := result["metrics"].(map[string]interface{})
	assert.True(t, decimalField(t, metrics["total_expenditure"]).Equal(decimal.RequireFromString("250.50")))
	assert.True(t, decimalField(t, metrics["remaining_budget"]).Equal(decimal.RequireFromString("749.50")))
	assert.Equal(t, float64(0), metrics["progress_percentage"])
	assert.Equal(t, float64(1), metrics["task_count"])
	assert.Equal(t, "expenditures", metrics["cost_tracking_mode"])

	output, err = cli.ExecuteCLICommand(t, app, ShowCmd(), []string{"1"})
	require.NoError(t, err)
	assert.Contains(t, output, "Renovation")
	assert.Contains(t, output, "749.50 USD")
}

func TestShowProject_NotFound(t *testing.T) {
	_, app := cli.SetupCLITest(t)

	output, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{"99", "--json"})
	require.Error(t, err)
	assert.Equal(t, clipkg.ExitNotFound, cli.ExitCode(t, err))
	assert.Equal(t, "PROJECT_NOT_FOUND", cli.ParseJSON(t, output)["error"].(map[string]interface{})["code"])

	_, err = cli.ExecuteCLICommand(t, app, ShowCmd(), []string{"abc", "--json"})
	require.Error(t, err)
	assert.Equal(t, clipkg.ExitUsage, cli.ExitCode(t, err))
}

func TestUpdateProject(t *testing.T) {
	_, app := cli.SetupCLITest(t)
	projectID := cli.CreateTestProject(t, app, "Renovation", "1000")

	output, err := cli.ExecuteCLICommand(t, app, UpdateCmd(), []string{
		"1", "--status", "in progress", "--name", "Renovation 2", "--json",
	})
	require.NoError(t, err)
	project := cli.ParseJSON(t, output)["project"].(map[string]interface{})
	assert.Equal(t, "In Progress", project["status"])
	assert.Equal(t, "Renovation 2", project["name"])

	_, err = cli.ExecuteCLICommand(t, app, UpdateCmd(), []string{"1", "--clear-budget", "--quiet"})
	require.NoError(t, err)

	got, err := app.ProjectService.GetProject(context.Background(), projectID)
	require.NoError(t, err)
	assert.False(t, got.HasBudget())

	_, err = cli.ExecuteCLICommand(t, app, UpdateCmd(), []string{"1", "--status", "archived", "--json"})
	require.Error(t, err)
	assert.Equal(t, clipkg.ExitValidation, cli.ExitCode(t, err))
}

func TestDeleteProject(t *testing.T) {
	db, app := cli.SetupCLITest(t)
	projectID := cli.CreateTestProject(t, app, "Doomed", "")
	cli.CreateTestTask(t, app, projectID, "Child")

	output, err := cli.ExecuteCLICommand(t, app, DeleteCmd(), []string{"1", "--json"})
	require.NoError(t, err)
	assert.Equal(t, float64(projectID), cli.ParseJSON(t, output)["project_id"])

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM tasks"))
	assert.Zero(t, count)

	_, err = cli.ExecuteCLICommand(t, app, DeleteCmd(), []string{"1", "--force"})
	require.Error(t, err)
	assert.Equal(t, clipkg.ExitNotFound, cli.ExitCode(t, err))
}
