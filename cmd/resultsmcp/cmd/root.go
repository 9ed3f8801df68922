// Package cmd provides the CLI commands for resultsmcp.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scio-ly/resultsmcp/internal/config"
	"github.com/scio-ly/resultsmcp/internal/logging"
	"github.com/scio-ly/resultsmcp/pkg/version"
)

var (
	configPath string
	dataRoot   string
	debugMode  bool

	loggingCleanup func()
)

// NewRootCmd creates the root command for the resultsmcp CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resultsmcp",
		Short: "MCP server for Science Olympiad tournament results",
		Long: `resultsmcp answers structured questions about historical Science
Olympiad tournament results: who placed where, how a team scored
overall, and which tournaments or teams match a free-text query.

Raw placements are interpreted under the official scoring rules
(ties, dropped events, disqualification, exhibition status) before
any answer is produced.

Running with no subcommand starts the MCP server on stdio.`,
		Version:      version.Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cmd.Help()
			}
			return runServe(cmd.Context())
		},
	}

	cmd.SetVersionTemplate("resultsmcp version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: <data root>/.resultsmcp.yaml)")
	cmd.PersistentFlags().StringVar(&dataRoot, "data", "", "Data root containing data/results/<id>.yaml records")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.resultsmcp/logs/")

	cmd.PersistentPreRunE = setupLogging
	cmd.PersistentPostRun = teardownLogging

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newInfoCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig resolves configuration honoring the global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dataRoot != "" {
		cfg.Data.Root = dataRoot
	}
	if debugMode {
		cfg.Server.LogLevel = "debug"
	}
	return cfg, nil
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	logCfg := logging.DefaultConfig()
	if debugMode {
		logCfg = logging.DebugConfig()
	}
	cleanup, err := logging.SetupDefault(logCfg)
	if err != nil {
		// Logging must never block serving; fall back to stderr only.
		fmt.Fprintf(os.Stderr, "warning: file logging unavailable: %v\n", err)
		logCfg.FilePath = ""
		cleanup, err = logging.SetupDefault(logCfg)
		if err != nil {
			return err
		}
	}
	loggingCleanup = cleanup
	return nil
}

func teardownLogging(_ *cobra.Command, _ []string) {
	if loggingCleanup != nil {
		loggingCleanup()
	}
}
