package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/scio-ly/resultsmcp/internal/cache"
	rerrors "github.com/scio-ly/resultsmcp/internal/errors"
	"github.com/scio-ly/resultsmcp/internal/mcp"
	"github.com/scio-ly/resultsmcp/internal/query"
	"github.com/scio-ly/resultsmcp/internal/record"
)

// newInfoCmd creates the info command: tournament summary and rankings
// straight to the terminal.
func newInfoCmd() *cobra.Command {
	var rankings bool
	var limit int

	cmd := &cobra.Command{
		Use:   "info <tournament-id>",
		Short: "Show a tournament's summary and rankings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store := record.NewStore(cfg.ResultsDir())
			interpreter := cache.New(store, cfg.Cache.Size, slog.Default())

			result, err := interpreter.Get(args[0])
			if err != nil {
				if rerrors.IsTournamentNotFound(err) {
					fmt.Fprintf(cmd.OutOrStdout(), "Tournament %q not found.\n", args[0])
					return nil
				}
				return err
			}

			eng := query.New(result)
			fmt.Fprintln(cmd.OutOrStdout(), mcp.FormatInfo(eng.Info()))
			if rankings {
				info := eng.Info()
				fmt.Fprintln(cmd.OutOrStdout(), mcp.FormatRankings(info.Title, eng.Rankings(limit)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&rankings, "rankings", false, "Also print the overall rankings")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of ranked teams to print")

	return cmd
}
