// Package expenditure holds all cli commands related to project expenditures
//
// e.g., tally expenditure ...
package expenditure

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/models"
)

// ExpenditureCmd returns the expenditure parent command
func ExpenditureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "expenditure",
		Aliases: []string{"exp"},
		Short:   "Record spending against a project",
	}

	cmd.AddCommand(AddCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

func requireProjectFlag(cmd *cobra.Command) {
	cmd.Flags().Int("project", 0, "Project ID (required)")
	if err := cmd.MarkFlagRequired("project"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
}

// printBudget prints the project's spend and remaining budget after a write
func printBudget(ctx context.Context, c *cli.CLI, m *models.ProjectMetrics) {
	if m == nil {
		return
	}
	currency := ""
	if p, err := c.App.ProjectService.GetProject(ctx, m.ProjectID); err == nil {
		currency = p.Currency
	}
	fmt.Printf("  Project %d: spent %s, remaining budget %s\n", m.ProjectID,
		cli.FormatMoney(m.TotalExpenditure, currency), cli.FormatOptionalMoney(m.RemainingBudget, currency))
}
