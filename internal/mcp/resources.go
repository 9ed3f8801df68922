package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	rerrors "github.com/scio-ly/resultsmcp/internal/errors"
	"github.com/scio-ly/resultsmcp/pkg/version"
)

// healthURI addresses the liveness probe resource.
const healthURI = ResultsURIScheme + "://health"

// registerResources registers the raw record resources and the health
// probe. Each stored tournament is addressable as
// soresults://results/{id} and returns the record content verbatim.
func (s *Server) registerResources() {
	ids, err := s.store.List()
	if err != nil {
		s.logger.Warn("could not list records for resource registration", "error", err.Error())
	}
	for _, id := range ids {
		s.registerRecordResource(id)
	}

	s.mcp.AddResource(
		&mcp.Resource{
			Name:        "health",
			URI:         healthURI,
			Description: "Service liveness probe with static status data.",
			MIMEType:    "application/json",
		},
		s.handleHealthResource,
	)

	s.logger.Info("MCP resources registered", "records", len(ids))
}

// recordURI returns the resource URI for a tournament id.
func recordURI(id string) string {
	return fmt.Sprintf("%s://results/%s", ResultsURIScheme, id)
}

// registerRecordResource registers a single tournament record.
func (s *Server) registerRecordResource(id string) {
	uri := recordURI(id)
	s.mcp.AddResource(
		&mcp.Resource{
			Name:        id,
			URI:         uri,
			Description: fmt.Sprintf("Raw result record for tournament %s.", id),
			MIMEType:    "application/yaml",
		},
		s.makeRecordHandler(id, uri),
	)
}

// Evict drops a tournament's cached derivation and keeps the resource
// list in step with the store: a record created while serving becomes
// addressable, a deleted one stops being listed. Called by the record
// watcher.
func (s *Server) Evict(id string) {
	s.interp.Evict(id)
	if _, err := s.store.ModTime(id); err != nil {
		s.mcp.RemoveResources(recordURI(id))
		return
	}
	s.registerRecordResource(id)
}

// makeRecordHandler creates a read handler for one tournament record.
// The raw YAML is returned verbatim: resources expose source data,
// derived state is the tools' job.
func (s *Server) makeRecordHandler(id, uri string) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		data, err := s.store.Read(id)
		if err != nil {
			if rerrors.IsTournamentNotFound(err) {
				return nil, NewResourceNotFoundError(uri)
			}
			return nil, MapError(err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/yaml",
					Text:     string(data),
				},
			},
		}, nil
	}
}

// handleHealthResource serves static service-status data.
func (s *Server) handleHealthResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	status := map[string]any{
		"status":  "ok",
		"service": "resultsmcp",
		"version": version.Version,
	}
	body, err := json.Marshal(status)
	if err != nil {
		return nil, MapError(err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      healthURI,
				MIMEType: "application/json",
				Text:     string(body),
			},
		},
	}, nil
}
