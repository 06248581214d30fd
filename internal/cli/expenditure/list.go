package expenditure

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/models"
)

// ListCmd returns the expenditure list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's expenditures",
		RunE:  runList,
	}

	requireProjectFlag(cmd)
	cli.AddOutputFlags(cmd, "Minimal output (IDs only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Start(cmd)
	if err != nil {
		return err
	}
	defer cliInstance.Release()
	ctx := cmd.Context()

	projectID, _ := cmd.Flags().GetInt("project")

	list, err := cliInstance.App.ExpenditureService.ListExpenditures(ctx, projectID)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		for _, e := range list {
			fmt.Printf("%d\n", e.ID)
		}
		return nil
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success":      true,
			"expenditures": list,
		})
	}

	if len(list) == 0 {
		fmt.Println("No expenditures found")
		return nil
	}

	currency := ""
	if p, err := cliInstance.App.ProjectService.GetProject(ctx, projectID); err == nil {
		currency = p.Currency
	}

	fmt.Printf("Found %d expenditures:\n\n", len(list))
	for _, e := range list {
		fmt.Printf("  [%d] %s  %s  %s\n", e.ID, e.ExpenseDate.Format(models.DateLayout),
			cli.FormatMoney(e.Amount, currency), e.Description)
	}

	return nil
}
