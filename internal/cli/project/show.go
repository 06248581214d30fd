package project

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/styles"
)

// ShowCmd returns the project show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <project_id>",
		Short: "Show project details and budget figures",
		Long: `Display a project with its derived figures: total expenditure, total task
cost, remaining budget and progress. Remaining budget is measured against
expenditures or task costs depending on cost_tracking.mode in the config.`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
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

	projectID, err := cli.ParseID(args[0], "project")
	if err != nil {
		return formatter.Usage(err.Error(), "Usage: tally project show <project_id>")
	}

	detail, err := cliInstance.App.ProjectService.GetProjectDetail(ctx, projectID)
	if err != nil {
		return formatter.Fail(err)
	}
	project, metrics := detail.Project, detail.Metrics

	return formatter.Emit(project.ID, map[string]interface{}{
		"project": project,
		"metrics": metrics,
	}, func() {
		var b strings.Builder
		b.WriteString(styles.TitleStyle.Render(fmt.Sprintf("#%d %s", project.ID, project.Name)))
		b.WriteString("\n")
		b.WriteString(styles.Field("Status", styles.ProjectStatus(project.Status)) + "\n")
		b.WriteString(styles.Field("Budget", budgetText(project)) + "\n")
		if project.StartDate != nil || project.EndDate != nil {
			b.WriteString(styles.Field("Dates", cli.FormatDate(project.StartDate)+" to "+cli.FormatDate(project.EndDate)) + "\n")
		}
		b.WriteString(renderMetrics(project, metrics))
		if project.Description != "" {
			b.WriteString("\n" + styles.SectionStyle.Render("Description") + "\n")
			b.WriteString(project.Description)
		}
		fmt.Println(styles.RenderCard(b.String()))
	})
}
