package cli

import (
	"bufio"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/user"
)

// AddOutputFlags registers the agent-friendly --json and --quiet flags
func AddOutputFlags(cmd *cobra.Command, quietHelp string) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, quietHelp)
}

// Start builds the formatter for cmd and opens the CLI, reporting an
// initialization failure through the formatter
func Start(cmd *cobra.Command) (*CLI, *OutputFormatter, error) {
	formatter := NewFormatter(cmd.Flags())

	cliInstance, err := GetCLIFromContext(cmd.Context())
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			log.Printf("Error formatting error message: %v", fmtErr)
		}
		return nil, formatter, &CommandError{Code: ExitError, Err: err}
	}

	slog.Debug("command started",
		"command", cmd.CommandPath(),
		"actor_id", cliInstance.App.ActorID(),
		"os_user", user.LoginName())
	return cliInstance, formatter, nil
}

// Release closes c, logging instead of returning a failure
func (c *CLI) Release() {
	if err := c.Close(); err != nil {
		log.Printf("Error closing CLI: %v", err)
	}
}

// Confirm asks a yes/no question on stdin. Anything but y or yes is a no.
func Confirm(prompt string) bool {
	fmt.Printf("%s (y/N): ", prompt)
	response, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && response == "" {
		log.Printf("Error reading user input: %v", err)
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
