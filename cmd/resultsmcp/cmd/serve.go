package cmd

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/scio-ly/resultsmcp/internal/cache"
	"github.com/scio-ly/resultsmcp/internal/config"
	"github.com/scio-ly/resultsmcp/internal/mcp"
	"github.com/scio-ly/resultsmcp/internal/record"
	"github.com/scio-ly/resultsmcp/internal/search"
	"github.com/scio-ly/resultsmcp/internal/watcher"
)

// newServeCmd creates the serve command.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		Long: `Start the MCP server. Tools and resources are exposed over the
Model Context Protocol on stdio; logs go to the log file and stderr,
never stdout.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := slog.Default()
	store := record.NewStore(cfg.ResultsDir())
	interpreter := cache.New(store, cfg.Cache.Size, logger)
	source := newSource(cfg, store, interpreter, logger)

	server, err := mcp.NewServer(cfg, store, interpreter, source, logger)
	if err != nil {
		return err
	}

	// Record changes evict the cache and resync resource registration
	// through the server. The (id, mtime) cache key keeps answers
	// correct even without it, so a watcher failure only logs a warning.
	w := watcher.New(cfg.ResultsDir(), server, logger)
	go func() {
		if err := w.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Warn("record watcher stopped", slog.String("error", err.Error()))
		}
	}()

	return server.Serve(ctx)
}

// newSource selects the search corpus per configuration: the local
// record store, or the external read-only catalog.
func newSource(cfg *config.Config, store *record.Store, interpreter *cache.Interpreter, logger *slog.Logger) search.Source {
	if cfg.Search.Mode == config.SearchModeCatalog {
		return search.NewCatalogSource(cfg.Catalog.TournamentsURL, cfg.Catalog.SchoolsURL, cfg.Catalog.FetchTimeout)
	}
	return search.NewCorpusSource(store, interpreter, cfg.Search.Workers, logger)
}
