package task

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/styles"
	"github.com/thenoetrevino/tally/internal/models"
)

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in a project, or your own tasks",
		Long: `List the tasks of a project, optionally only those with a given status.
With --mine, list the tasks assigned to or created by the acting user
(defaults.actor_id in the config) across every project.

Examples:
  tally task list --project=1
  tally task list --project=1 --status="in progress" --json
  tally task list --mine
`,
		RunE: runList,
	}

	cmd.Flags().Int("project", 0, "Project ID")
	cmd.Flags().Bool("mine", false, "Tasks assigned to or created by you, across projects")
	cmd.Flags().String("status", "", "Only tasks with this status: pending, in progress, completed")
	cmd.MarkFlagsOneRequired("project", "mine")
	cmd.MarkFlagsMutuallyExclusive("project", "mine")
	cmd.MarkFlagsMutuallyExclusive("mine", "status")

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
	mine, _ := cmd.Flags().GetBool("mine")

	var tasks []*models.Task
	if mine {
		tasks, err = cliInstance.App.TaskService.ListTasksForUser(ctx, cliInstance.App.ActorID())
		if err != nil {
			return formatter.Fail(err)
		}
	} else if raw := cli.OptionalString(cmd.Flags(), "status"); raw != nil {
		status, err := models.ParseTaskStatus(*raw)
		if err != nil {
			return formatter.Fail(err)
		}
		tasks, err = cliInstance.App.TaskService.ListTasksByStatus(ctx, projectID, status)
		if err != nil {
			return formatter.Fail(err)
		}
	} else {
		tasks, err = cliInstance.App.TaskService.ListTasks(ctx, projectID)
		if err != nil {
			return formatter.Fail(err)
		}
	}

	if formatter.Quiet {
		for _, t := range tasks {
			fmt.Printf("%d\n", t.ID)
		}
		return nil
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"tasks":   tasks,
		})
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	fmt.Printf("Found %d tasks:\n\n", len(tasks))
	for _, t := range tasks {
		if mine {
			fmt.Printf("  [%d] %s  %s  %s  project %d\n", t.ID, t.Title, styles.TaskStatus(t.Status), styles.Priority(t.Priority), t.ProjectID)
			continue
		}
		fmt.Printf("  [%d] %s  %s  %s\n", t.ID, t.Title, styles.TaskStatus(t.Status), styles.Priority(t.Priority))
	}

	return nil
}
