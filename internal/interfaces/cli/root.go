// Package cli implements the command-line surface named in SPEC_FULL.md
// §6: a single compile command with the exact flag set the compiler's
// core parameters are bound to, plus a watch subcommand for re-running
// the pipeline on file change.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turtacn/sbgnqual/internal/config"
	"github.com/turtacn/sbgnqual/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/sbgnqual/internal/infrastructure/monitoring/prometheus"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// RootOptions holds global CLI flags shared by every subcommand.
type RootOptions struct {
	ConfigPath string
	Debug      bool
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Config  *config.Config
	Logger  logging.Logger
	Metrics *prometheus.StageMetrics
}

// NewRootCommand builds the root cobra command and attaches the compile
// and watch subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "sbgnqual",
		Short:   "compile CellDesigner/SBGN-PD reaction maps into Boolean logical models",
		Long:    "sbgnqual reduces a CellDesigner/SBGN-PD reaction map to a confluent species hypergraph,\nderives a signed influence graph, synthesizes Boolean rules, and emits SBML-Qual\n(and optionally BMA-JSON, SIF, CSV, BNet) output.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.ConfigPath, "config", "", "config file path (defaults are used if omitted)")
	pf.BoolVarP(&opts.Debug, "debug", "D", false, "enable debug logging")

	cmd.AddCommand(newCompileCmd(opts), newWatchCmd(opts))
	return cmd
}

// Execute is the CLI entry point.
func Execute() error {
	return NewRootCommand().Execute()
}

func buildContext(opts *RootOptions) (*CLIContext, error) {
	var cfg *config.Config
	var err error
	if opts.ConfigPath != "" {
		cfg, err = config.Load(opts.ConfigPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, fmt.Errorf("config initialization failed: %w", err)
	}

	level := cfg.Log.Level
	if opts.Debug {
		level = "debug"
	}
	logger, err := logging.NewLogger(logging.LogConfig{Level: level, Format: cfg.Log.Format})
	if err != nil {
		return nil, fmt.Errorf("logger initialization failed: %w", err)
	}

	return &CLIContext{
		Config:  cfg,
		Logger:  logger,
		Metrics: prometheus.NewStageMetrics(nil),
	}, nil
}
