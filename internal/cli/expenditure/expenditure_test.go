package expenditure

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tallyapp "github.com/thenoetrevino/tally/internal/app"
	clipkg "github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/testutil"
	"github.com/thenoetrevino/tally/internal/testutil/cli"
)

func amountOf(t *testing.T, m map[string]interface{}, key string) decimal.Decimal {
	t.Helper()
	s, ok := m[key].(string)
	require.True(t, ok, "%s: expected decimal string, got %T", key, m[key])
	return decimal.RequireFromString(s)
}

func TestAddExpenditure(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	_, app := cli.SetupCLITest(t, tallyapp.WithClock(testutil.FixedClock(now)))
	cli.CreateTestProject(t, app, "Renovation", "1000")

	output, err := cli.ExecuteCLICommand(t, app, AddCmd(), []string{
		"--project", "1", "--amount", "250.50", "--description", "Paint", "--json",
	})
	require.NoError(t, err)

	result := cli.ParseJSON(t, output)
	e := result["expenditure"].(map[string]interface{})
	assert.Equal(t, "Paint", e["description"])
	assert.True(t, amountOf(t, e, "amount").Equal(decimal.RequireFromString("250.5")))
	date, err := time.Parse(time.RFC3339, e["expense_date"].(string))
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14", date.Format("2006-01-02"))

	project := result["project"].(map[string]interface{})
	assert.True(t, amountOf(t, project, "remaining_budget").Equal(decimal.RequireFromString("749.5")))

	output, err = cli.ExecuteCLICommand(t, app, AddCmd(), []string{
		"--project", "1", "--amount", "1000", "--description", "Flooring", "--date", "2025-03-01",
	})
	require.NoError(t, err)
	assert.Contains(t, output, "✓ Expenditure recorded")
	assert.Contains(t, output, "remaining budget -250.50 USD")
}

func TestAddExpenditure_Negative(t *testing.T) {
	_, app := cli.SetupCLITest(t)
	cli.CreateTestProject(t, app, "Renovation", "1000")

	tests := []struct {
		name     string
		args     []string
		wantExit int
		wantCode string
	}{
		{"zero amount", []string{"--project", "1", "--amount", "0", "--description", "X"}, clipkg.ExitValidation, "INVALID_AMOUNT"},
		{"negative amount", []string{"--project", "1", "--amount=-3", "--description", "X"}, clipkg.ExitValidation, "INVALID_AMOUNT"},
		{"not a number", []string{"--project", "1", "--amount", "Inf", "--description", "X"}, clipkg.ExitValidation, "INVALID_AMOUNT"},
		{"blank description", []string{"--project", "1", "--amount", "5", "--description", " "}, clipkg.ExitValidation, "VALIDATION_ERROR"},
		{"unknown project", []string{"--project", "7", "--amount", "5", "--description", "X"}, clipkg.ExitNotFound, "PROJECT_NOT_FOUND"},
		{"bad date", []string{"--project", "1", "--amount", "5", "--description", "X", "--date", "yesterday"}, clipkg.ExitUsage, "USAGE_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := cli.ExecuteCLICommand(t, app, AddCmd(), append(tt.args, "--json"))
			require.Error(t, err)
			assert.Equal(t, tt.wantExit, cli.ExitCode(t, err))
			assert.Equal(t, tt.wantCode, cli.ParseJSON(t, output)["error"].(map[string]interface{})["code"])
		})
	}
}

func TestListUpdateDeleteExpenditure(t *testing.T) {
	_, app := cli.SetupCLITest(t)
	projectID := cli.CreateTestProject(t, app, "Renovation", "1000")
	otherID := cli.CreateTestProject(t, app, "Other", "")
	cli.CreateTestExpenditure(t, app, projectID, "100")
	cli.CreateTestExpenditure(t, app, projectID, "50")

	output, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--project", "1", "--json"})
	require.NoError(t, err)
	assert.Len(t, cli.ParseJSON(t, output)["expenditures"].([]interface{}), 2)

	output, err = cli.ExecuteCLICommand(t, app, UpdateCmd(), []string{"1", "--project", "1", "--amount", "120", "--json"})
	require.NoError(t, err)
	project := cli.ParseJSON(t, output)["project"].(map[string]interface{})
	assert.True(t, amountOf(t, project, "total_expenditure").Equal(decimal.NewFromInt(170)))

	t.Run("expenditure of another project is not found", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, UpdateCmd(), []string{"1", "--project", "2", "--amount", "1", "--json"})
		require.Error(t, err)
		assert.Equal(t, clipkg.ExitNotFound, cli.ExitCode(t, err))
		assert.Equal(t, 2, otherID)
	})

	output, err = cli.ExecuteCLICommand(t, app, DeleteCmd(), []string{"2", "--project", "1", "--json"})
	require.NoError(t, err)
	project = cli.ParseJSON(t, output)["project"].(map[string]interface{})
	assert.True(t, amountOf(t, project, "total_expenditure").Equal(decimal.NewFromInt(120)))

	output, err = cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--project", "1", "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, "1\n", output)
}
