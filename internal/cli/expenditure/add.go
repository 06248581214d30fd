package expenditure

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/models"
	expenditureservice "github.com/thenoetrevino/tally/internal/services/expenditure"
)

// AddCmd returns the expenditure add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expenditure",
		Long: `Record money spent on a project. The amount must be greater than zero and
is interpreted in the project's currency.

Examples:
  tally expenditure add --project=1 --amount=250.50 --description="Paint"
  tally expenditure add --project=1 --amount=99 --description="Brushes" --date=2025-03-01 --json
`,
		RunE: runAdd,
	}

	requireProjectFlag(cmd)
	cmd.Flags().String("amount", "", "Amount as an exact decimal (required)")
	cmd.Flags().String("description", "", "What the money was spent on (required)")
	for _, name := range []string{"amount", "description"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			log.Printf("Error marking flag as required: %v", err)
		}
	}
	cmd.Flags().String("date", "", "Expense date (YYYY-MM-DD, default today)")

	cli.AddOutputFlags(cmd, "Minimal output (ID only)")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Start(cmd)
	if err != nil {
		return err
	}
	defer cliInstance.Release()
	ctx := cmd.Context()
	flags := cmd.Flags()

	projectID, _ := flags.GetInt("project")
	description, _ := flags.GetString("description")
	rawAmount, _ := flags.GetString("amount")

	amount, err := models.ParseAmount(rawAmount)
	if err != nil {
		return formatter.Fail(err)
	}
	date, err := cli.DateOrToday(flags, "date", cliInstance.App.Now())
	if err != nil {
		return formatter.Usage(err.Error(), "Dates use the form 2025-03-14")
	}

	result, err := cliInstance.App.ExpenditureService.CreateExpenditure(ctx, expenditureservice.CreateExpenditureRequest{
		ProjectID:   projectID,
		Description: description,
		Amount:      amount,
		ExpenseDate: date,
		ActorID:     cliInstance.App.ActorID(),
	})
	if err != nil {
		return formatter.Fail(err)
	}

	e := result.Expenditure
	return formatter.Emit(e.ID, map[string]interface{}{
		"expenditure": e,
		"project":     result.Project,
	}, func() {
		fmt.Printf("✓ Expenditure recorded (ID: %d): %s on %s\n", e.ID, e.Amount.StringFixed(2), e.ExpenseDate.Format(models.DateLayout))
		printBudget(ctx, cliInstance, result.Project)
	})
}
