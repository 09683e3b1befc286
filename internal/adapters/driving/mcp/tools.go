package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ResolveInput is the input schema for the resolve_citation tool.
type ResolveInput struct {
	CitationID string `json:"citation_id" jsonschema:"the citation ID to resolve, e.g. R_1abc:c1 or AS_12345"`
}

// CitationOutput is a resolved citation record.
type CitationOutput struct {
	ID       string `json:"id"`
	Text     string `json:"comment_text"`
	URL      string `json:"comment_url"`
	Platform string `json:"source_platform"`
	Date     string `json:"date"`
}

// SearchInput is the input schema for the search_feedback tool.
type SearchInput struct {
	Prompt string `json:"prompt" jsonschema:"a natural-language description of the feedback to find"`
}

// SearchOutput is the output schema for the search_feedback tool.
type SearchOutput struct {
	Results []CitationOutput `json:"results"`
	Count   int              `json:"count"`
}

// CountsOutput is the output schema for the source_counts tool.
type CountsOutput struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

var errDatasetUnavailable = errors.New("dataset service is not configured")

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "resolve_citation",
		Description: "Resolve a feedback citation ID into its verified source record",
	}, s.handleResolve)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_feedback",
		Description: "Search the collected user feedback with a natural-language prompt",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "source_counts",
		Description: "Count the collected feedback records per platform",
	}, s.handleCounts)
}

// handleResolve handles the resolve_citation tool invocation. Resolution
// never errors: unknown IDs come back as placeholder records.
func (s *Server) handleResolve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ResolveInput,
) (*mcp.CallToolResult, CitationOutput, error) {
	c := s.ports.Resolver.Resolve(ctx, input.CitationID)
	return nil, CitationOutput{
		ID:       c.ID,
		Text:     c.Text,
		URL:      c.URL,
		Platform: c.Platform,
		Date:     c.Date,
	}, nil
}

// handleSearch handles the search_feedback tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	if s.ports.Dataset == nil {
		return nil, SearchOutput{}, errDatasetUnavailable
	}

	results, err := s.ports.Dataset.SemanticSearch(ctx, input.Prompt)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]CitationOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = CitationOutput{
			ID:       results[i].ID,
			Text:     results[i].Text,
			URL:      results[i].URL,
			Platform: results[i].Platform,
			Date:     results[i].Date,
		}
	}

	return nil, output, nil
}

// handleCounts handles the source_counts tool invocation.
func (s *Server) handleCounts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, CountsOutput, error) {
	if s.ports.Dataset == nil {
		return nil, CountsOutput{}, errDatasetUnavailable
	}

	counts, err := s.ports.Dataset.Counts(ctx)
	if err != nil {
		return nil, CountsOutput{}, err
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	return nil, CountsOutput{Counts: counts, Total: total}, nil
}
