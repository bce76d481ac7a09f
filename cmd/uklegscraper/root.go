package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/coolbeans/ukleg-register/internal/logging"
)

var version = "0.1.0"

// global flags shared by every subcommand.
var (
	logFormat string
	logLevel  string
)

// NewRootCmd creates the root command for the uklegscraper CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "uklegscraper",
		Short:   "Fetches, parses, and persists UK legislation.gov.uk records",
		Version: version,
		PersistentPreRun: func(*cobra.Command, []string) {
			logging.SetDefault("uklegscraper", version, logFormat)
		},
	}

	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "json", "log output format: json or text")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (informational only; handler always emits debug and above)")

	cmd.AddCommand(NewScrapeCmd())
	cmd.AddCommand(NewParseCmd())
	cmd.AddCommand(NewCascadeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewServeObservabilityCmd())

	return cmd
}

func logger() *slog.Logger {
	return slog.Default()
}
