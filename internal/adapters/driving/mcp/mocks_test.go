package mcp

import (
	"context"

	"github.com/echolens-labs/echolens-cli/internal/core/domain"
)

// mockResolver is a mock implementation of driving.CitationResolver.
type mockResolver struct {
	citations map[string]domain.EnrichedCitation
}

func (m *mockResolver) Reset() {}

func (m *mockResolver) Resolve(_ context.Context, citationID string) domain.EnrichedCitation {
	if c, ok := m.citations[citationID]; ok {
		return c
	}
	return domain.EnrichedCitation{
		ID:       citationID,
		Text:     "Citation not found in source data",
		Platform: "Unknown",
		Date:     "N/A",
	}
}

// mockReportService is a mock implementation of driving.ReportService.
type mockReportService struct {
	insights []domain.Insight
	err      error
}

func (m *mockReportService) Parse(_ context.Context, _ string) ([]domain.Insight, error) {
	return m.insights, m.err
}

func (m *mockReportService) Generate(_ context.Context) ([]domain.Insight, error) {
	return m.insights, m.err
}

func (m *mockReportService) Load() ([]domain.Insight, error) {
	return m.insights, m.err
}

// mockDatasetService is a mock implementation of driving.DatasetService.
type mockDatasetService struct {
	counts  map[string]int
	results []domain.EnrichedCitation
	err     error
}

func (m *mockDatasetService) Counts(_ context.Context) (map[string]int, error) {
	return m.counts, m.err
}

func (m *mockDatasetService) SemanticSearch(_ context.Context, _ string) ([]domain.EnrichedCitation, error) {
	return m.results, m.err
}
