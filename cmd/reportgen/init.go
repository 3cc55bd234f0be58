package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BelalFares97/MultiTool/pkg/config"
	rerrors "github.com/BelalFares97/MultiTool/pkg/errors"
)

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the defaults",
		Long: `Init writes the default configuration: page geometry and branding for
both report types, the speaker palette, output and log settings.

Examples:
  # Write to the per-user config directory
  reportgen init

  # Write to a specific path, replacing any existing file
  reportgen init -o config.yaml -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", "", "Output file path (default: user config dir)")
	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing configuration file")
	return cmd
}

func runInitCmd(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("output")
	force, _ := cmd.Flags().GetBool("force")
	if path == "" {
		path = config.DefaultConfigPath()
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return rerrors.Configf(rerrors.ErrConfigWriteFailed, "configuration file already exists: %s", path).
				WithContext("path", path).
				WithSuggestion("Use -f to overwrite it")
		}
	}
	if err := config.InitConfig(path, force); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", path)
	return nil
}
