package task

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/models"
	taskservice "github.com/thenoetrevino/tally/internal/services/task"
)

// UpdateCmd returns the task update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <task_id>",
		Short: "Update a task",
		Long: `Update a task's fields. Only the flags you pass are changed.

--status moves a task between pending and in progress. Use 'tally task complete'
to complete a task so that its completion time is recorded.

Examples:
  tally task update 7 --status="in progress" --assignee=4
  tally task update 7 --cost=450.25
  tally task update 7 --clear-due --clear-cost
`,
		Args: cobra.ExactArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("priority", "", "low, medium or high")
	cmd.Flags().String("status", "", "pending or in progress")
	cmd.Flags().Int("assignee", 0, "Assigned user ID")
	cmd.Flags().Bool("clear-assignee", false, "Unassign the task")
	cmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().Bool("clear-due", false, "Remove the due date")
	cmd.Flags().String("cost", "", "Actual cost as an exact decimal")
	cmd.Flags().Bool("clear-cost", false, "Remove the actual cost")
	cmd.MarkFlagsMutuallyExclusive("assignee", "clear-assignee")
	cmd.MarkFlagsMutuallyExclusive("due", "clear-due")
	cmd.MarkFlagsMutuallyExclusive("cost", "clear-cost")

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

	taskID, err := cli.ParseID(args[0], "task")
	if err != nil {
		return formatter.Usage(err.Error(), "Usage: tally task update <task_id> [flags]")
	}

	req := taskservice.UpdateTaskRequest{
		TaskID:      taskID,
		Title:       cli.OptionalString(flags, "title"),
		Description: cli.OptionalString(flags, "description"),
	}
	req.ClearAssignee, _ = flags.GetBool("clear-assignee")
	req.ClearDueDate, _ = flags.GetBool("clear-due")
	req.ClearActualCost, _ = flags.GetBool("clear-cost")

	if raw := cli.OptionalString(flags, "priority"); raw != nil {
		priority, err := models.ParsePriority(*raw)
		if err != nil {
			return formatter.Fail(err)
		}
		req.Priority = &priority
	}
	if raw := cli.OptionalString(flags, "status"); raw != nil {
		status, err := models.ParseTaskStatus(*raw)
		if err != nil {
			return formatter.Fail(err)
		}
		req.Status = &status
	}
	if flags.Changed("assignee") {
		assignee, _ := flags.GetInt("assignee")
		req.AssignedUserID = &assignee
	}
	if req.DueDate, err = cli.OptionalDate(flags, "due"); err != nil {
		return formatter.Usage(err.Error(), "Dates use the form 2025-03-14")
	}
	if req.ActualCost, err = cli.OptionalAmount(flags, "cost"); err != nil {
		return formatter.Fail(err)
	}

	result, err := cliInstance.App.TaskService.UpdateTask(ctx, req)
	if err != nil {
		if errors.Is(err, taskservice.ErrCompletionNotRecorded) {
			if fmtErr := formatter.ErrorWithSuggestion("VALIDATION_ERROR", err.Error(),
				fmt.Sprintf("Use 'tally task complete %d'", taskID)); fmtErr != nil {
				log.Printf("Error formatting error message: %v", fmtErr)
			}
			return &cli.CommandError{Code: cli.ExitValidation, Err: err}
		}
		return formatter.Fail(err)
	}

	task := result.Task
	return formatter.Emit(task.ID, map[string]interface{}{
		"task":    task,
		"project": result.Project,
	}, func() {
		fmt.Printf("✓ Task %d updated\n", task.ID)
		fmt.Printf("  Title: %s\n", task.Title)
		fmt.Printf("  Status: %s  Priority: %s  Assignee: %s\n", task.Status, task.Priority, assigneeText(task))
		printProjectSummary(ctx, cliInstance, result.Project)
	})
}
