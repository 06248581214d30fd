package expenditure

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
)

// DeleteCmd returns the expenditure delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <expenditure_id>",
		Short: "Delete an expenditure",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}

	requireProjectFlag(cmd)
	cli.AddOutputFlags(cmd, "Minimal output")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Start(cmd)
	if err != nil {
		return err
	}
	defer cliInstance.Release()
	ctx := cmd.Context()

	id, err := cli.ParseID(args[0], "expenditure")
	if err != nil {
		return formatter.Usage(err.Error(), "Usage: tally expenditure delete <expenditure_id> --project=<id>")
	}
	projectID, _ := cmd.Flags().GetInt("project")

	metrics, err := cliInstance.App.ExpenditureService.DeleteExpenditure(ctx, projectID, id)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Emit(0, map[string]interface{}{
		"expenditure_id": id,
		"project":        metrics,
	}, func() {
		fmt.Printf("✓ Expenditure %d deleted successfully\n", id)
		printBudget(ctx, cliInstance, metrics)
	})
}
