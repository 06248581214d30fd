package tutorial

import (
	_ "embed"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli/styles"
)

//go:embed tutorial.md
var tutorialContent string

// TutorialCmd returns the tutorial command
func TutorialCmd() *cobra.Command {
	var rawFlag bool

	cmd := &cobra.Command{
		Use:   "tutorial",
		Short: "Show a walkthrough of the tally workflow",
		Long: `Print a walkthrough of tally: creating a budgeted project, adding tasks and
expenditures, logging time and reading the remaining budget.

Use --raw for plain markdown, suitable for piping into a pager or an agent.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if rawFlag {
				fmt.Fprint(cmd.OutOrStdout(), tutorialContent)
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), Render(tutorialContent, styles.CardWidth))
		},
	}

	cmd.Flags().BoolVar(&rawFlag, "raw", false, "Print the markdown source")

	return cmd
}

// Render formats markdown for the terminal, wrapped at width.
// The source is returned as is when it cannot be rendered.
func Render(markdown string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		slog.Warn("markdown renderer unavailable", "error", err)
		return markdown
	}

	out, err := renderer.Render(markdown)
	if err != nil {
		slog.Warn("failed to render markdown", "error", err)
		return markdown
	}
	return strings.TrimSpace(out)
}
