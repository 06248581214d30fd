package task

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/models"
	taskservice "github.com/thenoetrevino/tally/internal/services/task"
)

// CreateCmd returns the task create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		Long: `Create a new task in a project. New tasks start as pending.

Examples:
  # Simple task
  tally task create --project=1 --title="Order paint"

  # With priority, assignee, due date and cost
  tally task create --project=1 --title="Order paint" \
    --priority=high --assignee=4 --due=2025-04-01 --cost=120.00

  # Quiet mode for bash capture
  TASK_ID=$(tally task create --project=1 --title="Order paint" --quiet)
`,
		RunE: runCreate,
	}

	// Required flags
	cmd.Flags().Int("project", 0, "Project ID (required)")
	cmd.Flags().String("title", "", "Task title (required)")
	for _, name := range []string{"project", "title"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			log.Printf("Error marking flag as required: %v", err)
		}
	}

	// Optional flags
	cmd.Flags().String("description", "", "Task description")
	cmd.Flags().String("priority", "", "low, medium or high (default medium)")
	cmd.Flags().Int("assignee", 0, "Assigned user ID")
	cmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().String("cost", "", "Actual cost as an exact decimal")

	cli.AddOutputFlags(cmd, "Minimal output (ID only)")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Start(cmd)
	if err != nil {
		return err
	}
	defer cliInstance.Release()
	ctx := cmd.Context()
	flags := cmd.Flags()

	projectID, _ := flags.GetInt("project")
	title, _ := flags.GetString("title")
	description, _ := flags.GetString("description")

	req := taskservice.CreateTaskRequest{
		ProjectID:   projectID,
		Title:       title,
		Description: description,
		ActorID:     cliInstance.App.ActorID(),
	}

	if raw := cli.OptionalString(flags, "priority"); raw != nil {
		if req.Priority, err = models.ParsePriority(*raw); err != nil {
			return formatter.Fail(err)
		}
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

	result, err := cliInstance.App.TaskService.CreateTask(ctx, req)
	if err != nil {
		return formatter.Fail(err)
	}

	task := result.Task
	return formatter.Emit(task.ID, map[string]interface{}{
		"task":    task,
		"project": result.Project,
	}, func() {
		fmt.Printf("✓ Task '%s' created successfully (ID: %d)\n", task.Title, task.ID)
		fmt.Printf("  Priority: %s\n", task.Priority)
		printProjectSummary(ctx, cliInstance, result.Project)
	})
}
