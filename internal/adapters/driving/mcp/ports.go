package mcp

import (
	"github.com/echolens-labs/echolens-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Resolver resolves citation IDs against the source stores.
	Resolver driving.CitationResolver

	// Report loads the generated report artifact.
	Report driving.ReportService

	// Dataset answers counts and semantic-search queries.
	Dataset driving.DatasetService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Resolver == nil {
		return ErrMissingResolver
	}
	// Report and Dataset are optional; their tools degrade gracefully.
	return nil
}
