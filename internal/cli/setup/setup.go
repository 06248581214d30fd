package setup

import (
	"github.com/spf13/cobra"
)

// SetupCmd returns the setup command
func SetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Set up tally on this machine",
		Long:  `Write and check the files tally reads at startup.`,
	}

	cmd.AddCommand(ConfigCmd())

	return cmd
}
