package expenditure

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	expenditureservice "github.com/thenoetrevino/tally/internal/services/expenditure"
)

// UpdateCmd returns the expenditure update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <expenditure_id>",
		Short: "Update an expenditure",
		Long: `Update an expenditure's amount, description or date. Only the flags you
pass are changed.

Examples:
  tally expenditure update 5 --project=1 --amount=260
`,
		Args: cobra.ExactArgs(1),
		RunE: runUpdate,
	}

	requireProjectFlag(cmd)
	cmd.Flags().String("amount", "", "New amount as an exact decimal")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("date", "", "New expense date (YYYY-MM-DD)")

	cli.AddOutputFlags(cmd, "Minimal output (ID only)")

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Start(cmd)
	if err != nil {
		return err
	}
	defer cliInstance.Release()
	ctx := cmd.Context()
	flags := cmd.Flags()

	id, err := cli.ParseID(args[0], "expenditure")
	if err != nil {
		return formatter.Usage(err.Error(), "Usage: tally expenditure update <expenditure_id> --project=<id> [flags]")
	}
	projectID, _ := flags.GetInt("project")

	req := expenditureservice.UpdateExpenditureRequest{
		ProjectID:   projectID,
		ID:          id,
		Description: cli.OptionalString(flags, "description"),
	}
	if req.Amount, err = cli.OptionalAmount(flags, "amount"); err != nil {
		return formatter.Fail(err)
	}
	if req.ExpenseDate, err = cli.OptionalDate(flags, "date"); err != nil {
		return formatter.Usage(err.Error(), "Dates use the form 2025-03-14")
	}

	result, err := cliInstance.App.ExpenditureService.UpdateExpenditure(ctx, req)
	if err != nil {
		return formatter.Fail(err)
	}

	e := result.Expenditure
	return formatter.Emit(e.ID, map[string]interface{}{
		"expenditure": e,
		"project":     result.Project,
	}, func() {
		fmt.Printf("✓ Expenditure %d updated\n", e.ID)
		printBudget(ctx, cliInstance, result.Project)
	})
}
