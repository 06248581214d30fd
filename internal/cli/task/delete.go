package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
)

// DeleteCmd returns the task delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <task_id>",
		Short: "Delete a task",
		Long: `Delete a task with its comments and time entries.
Requires confirmation unless --force, --json or --quiet is given.`,
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

	taskID, err := cli.ParseID(args[0], "task")
	if err != nil {
		return formatter.Usage(err.Error(), "Usage: tally task delete <task_id>")
	}
	force, _ := cmd.Flags().GetBool("force")

	if !force && !formatter.Quiet && !formatter.JSON {
		detail, err := cliInstance.App.TaskService.GetTask(ctx, taskID)
		if err != nil {
			return formatter.Fail(err)
		}
		if !cli.Confirm(fmt.Sprintf("Delete task #%d: '%s'?", taskID, detail.Task.Title)) {
			fmt.Println("Cancelled")
			return nil
		}
	}

	metrics, err := cliInstance.App.TaskService.DeleteTask(ctx, taskID, cliInstance.App.ActorID())
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Emit(0, map[string]interface{}{
		"task_id": taskID,
		"project": metrics,
	}, func() {
		fmt.Printf("✓ Task %d deleted successfully\n", taskID)
		printProjectSummary(ctx, cliInstance, metrics)
	})
}
