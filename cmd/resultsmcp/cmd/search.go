package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/scio-ly/resultsmcp/internal/cache"
	"github.com/scio-ly/resultsmcp/internal/mcp"
	"github.com/scio-ly/resultsmcp/internal/record"
	"github.com/scio-ly/resultsmcp/internal/search"
)

var (
	searchNameStyle = lipgloss.NewStyle().Bold(true)
	searchDimStyle  = lipgloss.NewStyle().Faint(true)
)

// newSearchCmd creates the search command: a one-shot fuzzy search
// over the configured corpus, for trying queries without an MCP client.
func newSearchCmd() *cobra.Command {
	var kind string
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy-search tournaments, teams, and schools",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			var k search.Kind
			switch kind {
			case "", "all":
			case string(search.KindTournament), string(search.KindTeam), string(search.KindSchool):
				k = search.Kind(kind)
			default:
				return fmt.Errorf("invalid --type %q (tournament, team, or school)", kind)
			}

			logger := slog.Default()
			store := record.NewStore(cfg.ResultsDir())
			interpreter := cache.New(store, cfg.Cache.Size, logger)
			source := newSource(cfg, store, interpreter, logger)

			index, err := search.Build(cmd.Context(), source, search.Options{
				MinScore:   cfg.Search.MinScore,
				MaxResults: cfg.Search.MaxResults,
			})
			if err != nil {
				return err
			}

			results := index.Search(query, k, limit)

			// Piped output gets the markdown rendering; a terminal
			// gets the styled listing.
			if !isatty.IsTerminal(os.Stdout.Fd()) {
				fmt.Fprint(cmd.OutOrStdout(), mcp.FormatSearchResults(query, results))
				return nil
			}
			if len(results) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No results found for %q\n", query)
				return nil
			}

			for i, r := range results {
				name := searchNameStyle.Render(r.Entry.Name)
				meta := fmt.Sprintf("%s  %s", r.Entry.Kind, r.Entry.ID)
				if r.Entry.Location != "" {
					meta += "  " + r.Entry.Location
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s\n    %s\n", i+1, name, searchDimStyle.Render(meta))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "type", "", "Restrict results: tournament, team, or school")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of results")

	return cmd
}
