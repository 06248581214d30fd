// Package task holds all cli commands related to tasks
//
// e.g., tally task ...
package task

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/models"
)

// TaskCmd returns the task parent command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(CompleteCmd())
	cmd.AddCommand(UndoCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

// printProjectSummary prints the owning project's progress and remaining budget
// after a task write. The currency comes from the project itself.
func printProjectSummary(ctx context.Context, c *cli.CLI, m *models.ProjectMetrics) {
	if m == nil {
		return
	}
	remaining := "no budget"
	if m.RemainingBudget != nil {
		currency := ""
		if p, err := c.App.ProjectService.GetProject(ctx, m.ProjectID); err == nil {
			currency = p.Currency
		}
		remaining = cli.FormatMoney(*m.RemainingBudget, currency)
	}
	fmt.Printf("  Project %d: %d%% complete (%d/%d tasks), remaining budget %s\n",
		m.ProjectID, m.ProgressPercentage, m.CompletedTaskCount, m.TaskCount, remaining)
}

func costText(t *models.Task, currency string) string {
	if !t.ActualCost.Valid {
		return "-"
	}
	return cli.FormatMoney(t.ActualCost.Decimal, currency)
}

func assigneeText(t *models.Task) string {
	if t.AssignedUserID == nil {
		return "unassigned"
	}
	return fmt.Sprintf("user %d", *t.AssignedUserID)
}
