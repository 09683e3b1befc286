package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for EchoLens resources.
	uriScheme = "echolens://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the generated report.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "report",
		Name:        "report",
		Description: "The generated citation-backed insight report",
		MIMEType:    "application/json",
	}, s.handleReportResource)

	// Template for individual citations.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "citations/{citationId}",
		Name:        "citation",
		Description: "A single feedback record resolved by citation ID",
		MIMEType:    "application/json",
	}, s.handleCitationResource)
}

// handleReportResource returns the generated report as JSON.
func (s *Server) handleReportResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Report == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	insights, err := s.ports.Report.Load()
	if err != nil {
		return nil, fmt.Errorf("loading report: %w", err)
	}

	data, err := json.MarshalIndent(insights, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling report: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleCitationResource resolves a single citation ID.
func (s *Server) handleCitationResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract citationId from URI: echolens://citations/{citationId}
	citationID := extractCitationID(req.Params.URI)
	if citationID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	citation := s.ports.Resolver.Resolve(ctx, citationID)

	data, err := json.MarshalIndent(citation, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling citation: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractCitationID extracts the citation ID from a URI like
// echolens://citations/{citationId}.
func extractCitationID(uri string) string {
	const prefix = uriScheme + "citations/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
