package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/styles"
)

// ShowCmd returns the task show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <task_id>",
		Short: "Show task details",
		Long:  "Display all details of a task including cost, completion time and total time spent.",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}

	cli.AddOutputFlags(cmd, "Minimal output (ID only)")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Start(cmd)
	if err != nil {
		return err
	}
	defer cliInstance.Release()
	ctx := cmd.Context()

	taskID, err := cli.ParseID(args[0], "task")
	if err != nil {
		return formatter.Usage(err.Error(), "Usage: tally task show <task_id>")
	}

	detail, err := cliInstance.App.TaskService.GetTask(ctx, taskID)
	if err != nil {
		return formatter.Fail(err)
	}
	task := detail.Task

	return formatter.Emit(task.ID, map[string]interface{}{
		"task":    task,
		"metrics": detail.Metrics,
	}, func() {
		currency := ""
		if p, err := cliInstance.App.ProjectService.GetProject(ctx, task.ProjectID); err == nil {
			currency = p.Currency
		}

		var b strings.Builder
		b.WriteString(styles.TitleStyle.Render(fmt.Sprintf("#%d %s", task.ID, task.Title)) + "\n")
		b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("project %d", task.ProjectID)) + "\n")
		b.WriteString(styles.Field("Status", styles.TaskStatus(task.Status)) + "\n")
		b.WriteString(styles.Field("Priority", styles.Priority(task.Priority)) + "\n")
		b.WriteString(styles.Field("Assignee", assigneeText(task)) + "\n")
		b.WriteString(styles.Field("Due", cli.FormatDate(task.DueDate)) + "\n")
		if task.CompletedAt != nil {
			b.WriteString(styles.Field("Completed", task.CompletedAt.Format(time.RFC3339)) + "\n")
		}
		b.WriteString(styles.Field("Actual cost", costText(task, currency)) + "\n")
		b.WriteString(styles.Field("Time spent", fmt.Sprintf("%s over %d entries",
			cli.FormatMinutes(detail.Metrics.TotalTimeSpent), detail.Metrics.TimeEntryCount)))
		if task.Description != "" {
			b.WriteString("\n" + styles.SectionStyle.Render("Description") + "\n")
			b.WriteString(task.Description)
		}
		fmt.Println(styles.RenderCard(b.String()))
	})
}
