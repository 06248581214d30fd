// Package project holds all cli commands related to projects
//
// e.g., tally project ...
package project

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/styles"
	"github.com/thenoetrevino/tally/internal/models"
)

// ProjectCmd returns the project parent command
func ProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

// renderMetrics formats a project's derived figures for the terminal
func renderMetrics(p *models.Project, m *models.ProjectMetrics) string {
	lines := []string{
		styles.Field("Total expenditure", cli.FormatMoney(m.TotalExpenditure, p.Currency)),
		styles.Field("Total task cost", cli.FormatMoney(m.TotalTaskCost, p.Currency)),
	}

	remaining := "no budget"
	if m.RemainingBudget != nil {
		remaining = styles.Remaining(cli.FormatMoney(*m.RemainingBudget, p.Currency), m.RemainingBudget.IsNegative())
	}
	lines = append(lines,
		styles.Field("Remaining", fmt.Sprintf("%s (against %s)", remaining, m.CostTrackingMode)),
		styles.Field("Progress", fmt.Sprintf("%s  %d/%d tasks", styles.ProgressBar(m.ProgressPercentage, 20), m.CompletedTaskCount, m.TaskCount)),
	)
	return strings.Join(lines, "\n")
}

func budgetText(p *models.Project) string {
	if !p.HasBudget() {
		return "none"
	}
	return cli.FormatMoney(p.Budget.Decimal, p.Currency)
}
