package project

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/models"
	projectservice "github.com/thenoetrevino/tally/internal/services/project"
)

// UpdateCmd returns the project update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <project_id>",
		Short: "Update a project",
		Long: `Update a project's name, description, status, dates or budget.
Only the flags you pass are changed.

Examples:
  tally project update 3 --status="In Progress"
  tally project update 3 --budget=30000 --currency=EUR
  tally project update 3 --clear-budget
`,
		Args: cobra.ExactArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().String("name", "", "New project name")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("status", "", "Not Started, In Progress, On Hold or Completed")
	cmd.Flags().String("budget", "", "New budget as an exact decimal")
	cmd.Flags().Bool("clear-budget", false, "Remove the budget")
	cmd.Flags().String("currency", "", "3-letter currency code")
	cmd.Flags().String("start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "End date (YYYY-MM-DD)")
	cmd.MarkFlagsMutuallyExclusive("budget", "clear-budget")

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

	projectID, err := cli.ParseID(args[0], "project")
	if err != nil {
		return formatter.Usage(err.Error(), "Usage: tally project update <project_id> [flags]")
	}

	req := projectservice.UpdateProjectRequest{
		ID:          projectID,
		Name:        cli.OptionalString(flags, "name"),
		Description: cli.OptionalString(flags, "description"),
		Currency:    cli.OptionalString(flags, "currency"),
		ActorID:     cliInstance.App.ActorID(),
	}
	req.ClearBudget, _ = flags.GetBool("clear-budget")

	if raw := cli.OptionalString(flags, "status"); raw != nil {
		status, err := models.ParseProjectStatus(*raw)
		if err != nil {
			return formatter.Fail(err)
		}
		req.Status = &status
	}
	if req.Budget, err = cli.OptionalAmount(flags, "budget"); err != nil {
		return formatter.Fail(err)
	}
	if req.StartDate, err = cli.OptionalDate(flags, "start"); err != nil {
		return formatter.Usage(err.Error(), "Dates use the form 2025-03-14")
	}
	if req.EndDate, err = cli.OptionalDate(flags, "end"); err != nil {
		return formatter.Usage(err.Error(), "Dates use the form 2025-03-14")
	}

	project, err := cliInstance.App.ProjectService.UpdateProject(ctx, req)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Emit(project.ID, map[string]interface{}{"project": project}, func() {
		fmt.Printf("✓ Project %d updated\n", project.ID)
		fmt.Printf("  Name: %s\n", project.Name)
		fmt.Printf("  Status: %s\n", project.Status)
		fmt.Printf("  Budget: %s\n", budgetText(project))
	})
}
