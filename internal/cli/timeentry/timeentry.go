// Package timeentry holds all cli commands related to time logged on tasks
//
// e.g., tally time ...
package timeentry

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/models"
	timeentryservice "github.com/thenoetrevino/tally/internal/services/timeentry"
)

// TimeCmd returns the time parent command
func TimeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "time",
		Short: "Log time worked on tasks",
	}

	cmd.AddCommand(LogCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

func requireTaskFlag(cmd *cobra.Command) {
	cmd.Flags().Int("task", 0, "Task ID (required)")
	if err := cmd.MarkFlagRequired("task"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
}

// LogCmd returns the time log subcommand
func LogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log time worked on a task",
		Long: `Log time worked on a task. Give the duration either in minutes or as a Go
duration such as 1h30m. The date worked cannot be in the future.

Examples:
  tally time log --task=7 --minutes=45
  tally time log --task=7 --duration=1h30m --date=2025-03-10 --description="Priming"
`,
		RunE: runLog,
	}

	requireTaskFlag(cmd)
	cmd.Flags().Int("minutes", 0, "Minutes worked")
	cmd.Flags().Duration("duration", 0, "Time worked, e.g. 1h30m")
	cmd.MarkFlagsOneRequired("minutes", "duration")
	cmd.MarkFlagsMutuallyExclusive("minutes", "duration")
	cmd.Flags().String("date", "", "Date worked (YYYY-MM-DD, default today)")
	cmd.Flags().String("description", "", "What was done")

	cli.AddOutputFlags(cmd, "Minimal output (ID only)")

	return cmd
}

func runLog(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Start(cmd)
	if err != nil {
		return err
	}
	defer cliInstance.Release()
	ctx := cmd.Context()
	flags := cmd.Flags()

	taskID, _ := flags.GetInt("task")
	description, _ := flags.GetString("description")
	minutes, _ := flags.GetInt("minutes")
	if flags.Changed("duration") {
		d, _ := flags.GetDuration("duration")
		minutes = int(d / time.Minute)
	}

	date, err := cli.DateOrToday(flags, "date", cliInstance.App.Now())
	if err != nil {
		return formatter.Usage(err.Error(), "Dates use the form 2025-03-14")
	}

	result, err := cliInstance.App.TimeEntryService.LogTime(ctx, timeentryservice.LogTimeRequest{
		TaskID:      taskID,
		Duration:    minutes,
		DateWorked:  date,
		Description: description,
		ActorID:     cliInstance.App.ActorID(),
	})
	if err != nil {
		return formatter.Fail(err)
	}

	entry := result.TimeEntry
	return formatter.Emit(entry.ID, map[string]interface{}{
		"time_entry": entry,
		"task":       result.Task,
	}, func() {
		fmt.Printf("✓ Logged %s on task %d for %s (ID: %d)\n",
			cli.FormatMinutes(entry.Duration), entry.TaskID, entry.DateWorked.Format(models.DateLayout), entry.ID)
		fmt.Printf("  Total time spent: %s\n", cli.FormatMinutes(result.Task.TotalTimeSpent))
	})
}

// ListCmd returns the time list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List time logged on a task, most recent first",
		RunE:  runList,
	}

	requireTaskFlag(cmd)
	cli.AddOutputFlags(cmd, "Minimal output (IDs only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Start(cmd)
	if err != nil {
		return err
	}
	defer cliInstance.Release()

	taskID, _ := cmd.Flags().GetInt("task")

	entries, err := cliInstance.App.TimeEntryService.ListTimeEntries(cmd.Context(), taskID)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		for _, e := range entries {
			fmt.Printf("%d\n", e.ID)
		}
		return nil
	}

	total := 0
	for _, e := range entries {
		total += e.Duration
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success":          true,
			"time_entries":     entries,
			"total_time_spent": total,
		})
	}

	if len(entries) == 0 {
		fmt.Println("No time logged")
		return nil
	}

	fmt.Printf("Found %d entries (%s total):\n\n", len(entries), cli.FormatMinutes(total))
	for _, e := range entries {
		fmt.Printf("  [%d] %s  %s  user %d  %s\n", e.ID, e.DateWorked.Format(models.DateLayout),
			cli.FormatMinutes(e.Duration), e.UserID, e.Description)
	}

	return nil
}

// DeleteCmd returns the time delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <time_entry_id>",
		Short: "Delete a time entry",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}

	requireTaskFlag(cmd)
	cli.AddOutputFlags(cmd, "Minimal output")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Start(cmd)
	if err != nil {
		return err
	}
	defer cliInstance.Release()

	id, err := cli.ParseID(args[0], "time entry")
	if err != nil {
		return formatter.Usage(err.Error(), "Usage: tally time delete <time_entry_id> --task=<id>")
	}
	taskID, _ := cmd.Flags().GetInt("task")

	metrics, err := cliInstance.App.TimeEntryService.DeleteTimeEntry(cmd.Context(), taskID, id)
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Emit(0, map[string]interface{}{
		"time_entry_id": id,
		"task":          metrics,
	}, func() {
		fmt.Printf("✓ Time entry %d deleted\n", id)
		fmt.Printf("  Total time spent: %s\n", cli.FormatMinutes(metrics.TotalTimeSpent))
	})
}
