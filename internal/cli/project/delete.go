package project

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
)

// DeleteCmd returns the project delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <project_id>",
		Short: "Delete a project",
		Long: `Delete a project together with its tasks, expenditures, time entries and
comments. Requires confirmation unless --force, --json or --quiet is given.`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}

	cmd.Flags().Bool("force", false, "Skip confirmation")
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

	projectID, err := cli.ParseID(args[0], "project")
	if err != nil {
		return formatter.Usage(err.Error(), "Usage: tally project delete <project_id>")
	}
	force, _ := cmd.Flags().GetBool("force")

	// Get project details for confirmation
	project, err := cliInstance.App.ProjectService.GetProject(ctx, projectID)
	if err != nil {
		return formatter.Fail(err)
	}

	// Ask for confirmation unless force, json or quiet mode
	if !force && !formatter.Quiet && !formatter.JSON {
		if !cli.Confirm(fmt.Sprintf("Delete project #%d: '%s' and everything in it?", projectID, project.Name)) {
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := cliInstance.App.ProjectService.DeleteProject(ctx, projectID); err != nil {
		return formatter.Fail(err)
	}

	return formatter.Emit(0, map[string]interface{}{"project_id": projectID}, func() {
		fmt.Printf("✓ Project %d deleted successfully\n", projectID)
	})
}
