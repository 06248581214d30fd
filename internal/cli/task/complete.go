package task

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	taskservice "github.com/thenoetrevino/tally/internal/services/task"
)

// CompleteCmd returns the task complete subcommand
func CompleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete <task_id>",
		Short: "Mark a task as completed",
		Long: `Mark a task as completed and record when it was completed.

Completing a task that is already completed fails and leaves the recorded
completion time unchanged (exit code 6).

Examples:
  tally task complete 42
  tally task complete 42 --json
`,
		Args: cobra.ExactArgs(1),
		RunE: runComplete,
	}

	cli.AddOutputFlags(cmd, "Minimal output (ID only)")

	return cmd
}

// UndoCmd returns the task undo subcommand
func UndoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo <task_id>",
		Short: "Reopen a completed task",
		Long: `Undo completion of a task: it returns to "in progress" and its completion
time is cleared. Fails with exit code 6 when the task is not completed.`,
		Args: cobra.ExactArgs(1),
		RunE: runUndo,
	}

	cli.AddOutputFlags(cmd, "Minimal output (ID only)")

	return cmd
}

func runComplete(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Start(cmd)
	if err != nil {
		return err
	}
	defer cliInstance.Release()
	ctx := cmd.Context()

	taskID, err := cli.ParseID(args[0], "task")
	if err != nil {
		return formatter.Usage(err.Error(), "Usage: tally task complete <task_id>")
	}

	result, err := cliInstance.App.TaskService.MarkComplete(ctx, taskID)
	if err != nil {
		if errors.Is(err, taskservice.ErrAlreadyCompleted) && !formatter.JSON {
			// Write to stderr so quiet captures stay clean
			fmt.Fprintf(os.Stderr, "Task %d is already completed\n", taskID)
			return &cli.CommandError{Code: cli.ExitConflict, Err: err}
		}
		return formatter.Fail(err)
	}

	task := result.Task
	return formatter.Emit(task.ID, map[string]interface{}{
		"task":    task,
		"project": result.Project,
	}, func() {
		fmt.Printf("✓ Task %d completed at %s\n", task.ID, task.CompletedAt.Format(time.RFC3339))
		printProjectSummary(ctx, cliInstance, result.Project)
	})
}

func runUndo(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Start(cmd)
	if err != nil {
		return err
	}
	defer cliInstance.Release()
	ctx := cmd.Context()

	taskID, err := cli.ParseID(args[0], "task")
	if err != nil {
		return formatter.Usage(err.Error(), "Usage: tally task undo <task_id>")
	}

	result, err := cliInstance.App.TaskService.UndoComplete(ctx, taskID)
	if err != nil {
		return formatter.Fail(err)
	}

	task := result.Task
	return formatter.Emit(task.ID, map[string]interface{}{
		"task":    task,
		"project": result.Project,
	}, func() {
		fmt.Printf("✓ Task %d reopened (%s)\n", task.ID, task.Status)
		printProjectSummary(ctx, cliInstance, result.Project)
	})
}
