package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/oshokin/dashboard-builder/internal/config"
	"github.com/oshokin/dashboard-builder/internal/logger"
	"github.com/oshokin/dashboard-builder/internal/service/builder"
	"github.com/oshokin/dashboard-builder/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// logLevel overrides the level from the settings file.
	logLevel string
	// noColor disables colours in the report.
	noColor bool

	// rootCmd builds the dashboard and assembles the Linux package.
	rootCmd = &cobra.Command{
		Use:           "dashboard-builder",
		Short:         "Build the AI Scraper Dashboard and assemble its Linux package",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			if noColor {
				color.Enable = false
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			if logLevel != "" {
				cfg.LogLevel = logLevel
			}

			level, ok := logger.ParseLogLevel(cfg.LogLevel)
			if !ok {
				return fmt.Errorf("unknown log level %q", cfg.LogLevel)
			}

			logger.SetLevel(level)

			options := &builder.Options{
				Config: cfg,
				Output: cmd.OutOrStdout(),
			}

			return builder.Run(ctx, options)
		},
	}
)

// Execute runs the dashboard-builder CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)
	rootCmd.AddCommand(initConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.ErrorKV(context.Background(), "dashboard-builder failed", "error", err)
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colours in the report")
}
