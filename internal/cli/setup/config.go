package setup

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/config"
)

// ErrConfigExists is returned when installing over an existing config without --force
var ErrConfigExists = errors.New("config file already exists")

// ConfigCmd returns the setup config subcommand
func ConfigCmd() *cobra.Command {
	var checkFlag bool
	var forceFlag bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write the default config file",
		Long: `Write a config file holding the built-in defaults, ready for editing.

The file goes to --config when given, otherwise $XDG_CONFIG_HOME/tally/config.yaml
or ~/.config/tally/config.yaml.

Examples:
  # Write the default config
  tally setup config

  # Check the current config loads
  tally setup config --check

  # Replace an existing config with the defaults
  tally setup config --force
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}
			if checkFlag {
				return CheckConfig(cmd.OutOrStdout(), path)
			}
			return InstallConfig(cmd.OutOrStdout(), path, forceFlag)
		},
	}

	cmd.Flags().BoolVar(&checkFlag, "check", false, "Check the config file loads and validates")
	cmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite an existing config file")
	cmd.MarkFlagsMutuallyExclusive("check", "force")

	return cmd
}

func configPath() (string, error) {
	if cli.ConfigPath != "" {
		return cli.ConfigPath, nil
	}
	return config.DefaultPath()
}

// InstallConfig writes the default config to path. An existing file is kept
// unless force is set.
func InstallConfig(w io.Writer, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		fmt.Fprintf(w, "✗ Config already exists: %s\n", path)
		fmt.Fprintln(w, "  Run: tally setup config --force")
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	if err := config.Default().Save(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(w, "✓ Config written: %s\n", path)
	return nil
}

// CheckConfig loads the config at path and reports the settings that matter most
func CheckConfig(w io.Writer, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(w, "✗ No config file at %s, built-in defaults apply\n", path)
		fmt.Fprintln(w, "  Run: tally setup config")
		return nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(w, "✗ Config does not load: %v\n", err)
		return err
	}

	fmt.Fprintf(w, "✓ Config loads: %s\n", path)
	fmt.Fprintf(w, "  Cost tracking: %s\n", cfg.CostTracking.Mode)
	fmt.Fprintf(w, "  Currency:      %s\n", cfg.Defaults.Currency)
	return nil
}
