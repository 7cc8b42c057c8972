package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/dashboard-builder/internal/config"
)

var (
	// overwrite allows replacing an existing settings file.
	overwrite bool

	errConfigExists = errors.New("settings file already exists, use --force to overwrite it")

	// initConfigCmd writes the default settings so they can be edited.
	initConfigCmd = &cobra.Command{
		Use:   "init-config",
		Short: "Write the default settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(configPath); err == nil && !overwrite {
				return fmt.Errorf("%s: %w", configPath, errConfigExists)
			}

			if err := config.Save(configPath, config.Default()); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Default settings written to %s\n", configPath)

			return nil
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	initConfigCmd.Flags().BoolVarP(&overwrite, "force", "f", false, "overwrite an existing settings file")
}
