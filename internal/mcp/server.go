package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/scio-ly/resultsmcp/internal/cache"
	"github.com/scio-ly/resultsmcp/internal/config"
	"github.com/scio-ly/resultsmcp/internal/query"
	"github.com/scio-ly/resultsmcp/internal/record"
	"github.com/scio-ly/resultsmcp/internal/search"
	"github.com/scio-ly/resultsmcp/pkg/version"
)

// ResultsURIScheme addresses raw tournament records as MCP resources:
// soresults://results/{id}.
const ResultsURIScheme = "soresults"

// CanonicalURL is the public results site a tournament id maps to.
const CanonicalURL = "https://www.duosmium.org/results/%s/"

// Server is the MCP server for resultsmcp. It bridges AI clients with
// the tournament interpretation engine and the fuzzy search index.
type Server struct {
	mcp    *mcp.Server
	store  *record.Store
	interp *cache.Interpreter
	source search.Source
	cfg    *config.Config
	logger *slog.Logger
}

// NewServer creates an MCP server over the given record store.
// The search source decides whether search scans the local corpus or
// the external catalog; everything else always reads local records.
func NewServer(cfg *config.Config, store *record.Store, interp *cache.Interpreter, source search.Source, logger *slog.Logger) (*Server, error) {
	if store == nil {
		return nil, errors.New("record store is required")
	}
	if interp == nil {
		return nil, errors.New("interpreter cache is required")
	}
	if source == nil {
		return nil, errors.New("search source is required")
	}
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		store:  store,
		interp: interp,
		source: source,
		cfg:    cfg,
		logger: logger,
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    "resultsmcp",
			Version: version.Version,
		},
		nil,
	)

	s.registerTools()
	s.registerResources()

	return s, nil
}

// MCPServer returns the underlying MCP server instance.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// engine loads, interprets, and wraps one tournament for querying.
// Every query goes through the (id, mtime)-keyed cache, so repeated
// questions about the same tournament skip the recompute.
func (s *Server) engine(id string) (*query.Engine, error) {
	result, err := s.interp.Get(id)
	if err != nil {
		return nil, err
	}
	return query.New(result), nil
}

// buildIndex materializes the search corpus for one search call.
// Corpus mode reuses cached interpretations; catalog mode fetches the
// external documents fresh.
func (s *Server) buildIndex(ctx context.Context) (*search.Index, error) {
	return search.Build(ctx, s.source, search.Options{
		MinScore:   s.cfg.Search.MinScore,
		MaxResults: s.cfg.Search.MaxResults,
	})
}

// Serve runs the server on the configured transport until the context
// is canceled.
func (s *Server) Serve(ctx context.Context) error {
	transport := s.cfg.Server.Transport
	s.logger.Info("starting MCP server",
		slog.String("transport", transport),
		slog.String("results_dir", s.store.Dir()))

	switch transport {
	case "stdio":
		err := s.mcp.Run(ctx, &mcp.StdioTransport{})
		if err != nil && err != context.Canceled {
			s.logger.Error("MCP server stopped with error", slog.String("error", err.Error()))
			return err
		}
		s.logger.Info("MCP server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport: %s (supported: stdio)", transport)
	}
}
