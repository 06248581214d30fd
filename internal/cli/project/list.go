package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/styles"
)

// ListCmd returns the project list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		Long: `List all projects with their status, budget and derived figures.
Each entry carries the same metrics as "tally project show".`,
		RunE:  runList,
	}

	cli.AddOutputFlags(cmd, "Minimal output (IDs only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Start(cmd)
	if err != nil {
		return err
	}
	defer cliInstance.Release()

	details, err := cliInstance.App.ProjectService.ListProjects(cmd.Context())
	if err != nil {
		return formatter.Fail(err)
	}

	// Output in appropriate format
	if formatter.Quiet {
		// Just print IDs (one per line)
		for _, d := range details {
			fmt.Printf("%d\n", d.Project.ID)
		}
		return nil
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success":  true,
			"projects": details,
		})
	}

	// Human-readable output
	if len(details) == 0 {
		fmt.Println("No projects found")
		return nil
	}

	fmt.Printf("Found %d projects:\n\n", len(details))
	for _, d := range details {
		p, m := d.Project, d.Metrics
		remaining := "n/a"
		if m.RemainingBudget != nil {
			remaining = styles.Remaining(cli.FormatMoney(*m.RemainingBudget, p.Currency), m.RemainingBudget.IsNegative())
		}
		fmt.Printf("  [%d] %s  %s  budget: %s  remaining: %s  progress: %d%%\n",
			p.ID, p.Name, styles.ProjectStatus(p.Status), budgetText(p), remaining, m.ProgressPercentage)
	}

	return nil
}
