package cmd

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/comment"
	"github.com/thenoetrevino/tally/internal/cli/expenditure"
	"github.com/thenoetrevino/tally/internal/cli/project"
	"github.com/thenoetrevino/tally/internal/cli/setup"
	"github.com/thenoetrevino/tally/internal/cli/task"
	"github.com/thenoetrevino/tally/internal/cli/tutorial"
	"github.com/thenoetrevino/tally/internal/cli/timeentry"
)

var rootCmd = &cobra.Command{
	Use:   "tally",
	Short: "Tally - project budgets, task costs and time tracking",
	Long: `Tally tracks projects with budgets, their tasks, expenditures, time logged
and comments, and reports how much budget remains.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cli.ConfigPath, "config", "", "Config file (default ~/.config/tally/config.yaml)")

	rootCmd.AddCommand(project.ProjectCmd())
	rootCmd.AddCommand(task.TaskCmd())
	rootCmd.AddCommand(expenditure.ExpenditureCmd())
	rootCmd.AddCommand(timeentry.TimeCmd())
	rootCmd.AddCommand(comment.CommentCmd())
	rootCmd.AddCommand(setup.SetupCmd())
	rootCmd.AddCommand(tutorial.TutorialCmd())
}

// Execute runs the command line. Failures already reported to the user come
// back as *cli.CommandError.
func Execute() error {
	return rootCmd.Execute()
}
