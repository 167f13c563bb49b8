// Package main provides the CLI entry point for missingplot.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ukaji3/missingplot-go/internal/config"
	"github.com/ukaji3/missingplot-go/internal/infrastructure"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var g globalFlags

	rootCmd := &cobra.Command{
		Use:   "missingplot",
		Short: "Estimate missing observations of two-way designs",
		Long: `missingplot estimates one or two missing cells of a two-way design
without replication (rows x columns, one observation per cell) with the
missing plot technique, and writes the estimates back as JSON, SPSS syntax,
CSV or into the source workbook.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(newEstimateCmd(&g), newServeCmd(&g), newVersionCmd())
	return rootCmd
}

// setup loads configuration and builds the logger for a command.
func setup(cmd *cobra.Command, g *globalFlags) (*config.Config, *slog.Logger, io.Closer, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if g.logLevel != "" {
		cfg.Logging.Level = g.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, nil, nil, fmt.Errorf("invalid --log-level %q: %w", g.logLevel, err)
		}
	}

	if cfg.Logging.Output == "stderr" {
		return cfg, infrastructure.NewLoggerWithWriter(cfg.Logging, cmd.ErrOrStderr()), nopCloser{}, nil
	}
	logger, closer, err := infrastructure.NewLogger(cfg.Logging)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logger, closer, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "missingplot", version)
		},
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
