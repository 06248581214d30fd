package project

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	projectservice "github.com/thenoetrevino/tally/internal/services/project"
)

// CreateCmd returns the project create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		Long: `Create a new project. New projects always start as "Not Started".

Examples:
  # Simple project (human-readable output)
  tally project create --name="Office Renovation"

  # With a budget (currency defaults to defaults.currency from the config)
  tally project create --name="Office Renovation" --budget=25000 --currency=PHP

  # JSON output for agents
  tally project create --name="Office Renovation" --json

  # Quiet mode for bash capture
  PROJECT_ID=$(tally project create --name="Office Renovation" --quiet)
`,
		RunE: runCreate,
	}

	// Required flags
	cmd.Flags().String("name", "", "Project name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}

	// Optional flags
	cmd.Flags().String("description", "", "Project description")
	cmd.Flags().String("budget", "", "Budget as an exact decimal, e.g. 1500.00")
	cmd.Flags().String("currency", "", "3-letter currency code for the budget")
	cmd.Flags().String("start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "End date (YYYY-MM-DD)")

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

	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")
	currency, _ := cmd.Flags().GetString("currency")

	budget, err := cli.OptionalAmount(cmd.Flags(), "budget")
	if err != nil {
		return formatter.Fail(err)
	}
	start, err := cli.OptionalDate(cmd.Flags(), "start")
	if err != nil {
		return formatter.Usage(err.Error(), "Dates use the form 2025-03-14")
	}
	end, err := cli.OptionalDate(cmd.Flags(), "end")
	if err != nil {
		return formatter.Usage(err.Error(), "Dates use the form 2025-03-14")
	}

	project, err := cliInstance.App.ProjectService.CreateProject(ctx, projectservice.CreateProjectRequest{
		Name:        name,
		Description: description,
		StartDate:   start,
		EndDate:     end,
		Budget:      budget,
		Currency:    currency,
		ActorID:     cliInstance.App.ActorID(),
	})
	if err != nil {
		return formatter.Fail(err)
	}

	return formatter.Emit(project.ID, map[string]interface{}{"project": project}, func() {
		fmt.Printf("✓ Project '%s' created successfully (ID: %d)\n", project.Name, project.ID)
		if project.HasBudget() {
			fmt.Printf("  Budget: %s\n", budgetText(project))
		}
		if project.Description != "" {
			fmt.Printf("  Description: %s\n", project.Description)
		}
	})
}
