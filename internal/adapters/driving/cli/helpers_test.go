package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/echolens-labs/echolens-cli/internal/adapters/driven/config/file"
	"github.com/echolens-labs/echolens-cli/internal/core/domain"
	"github.com/echolens-labs/echolens-cli/internal/core/ports/driving"
)

// setupTestServices installs mock services into the package-level
// wiring and disables the real service construction. The returned
// cleanup restores everything.
func setupTestServices() func() {
	prevPreRun := rootCmd.PersistentPreRunE
	prevCfg := cfg
	prevResolver := resolverService
	prevReport := reportService
	prevCuration := curationService
	prevAnalysis := analysisService
	prevDataset := datasetService
	prevIngest := ingestService

	rootCmd.PersistentPreRunE = func(*cobra.Command, []string) error { return nil }
	cfg = file.Default()
	resolverService = &mockResolver{}
	reportService = &mockReportService{insights: testReport()}
	curationService = &mockCurationService{count: 42}
	analysisService = &mockAnalysisService{}
	datasetService = &mockDatasetService{
		counts:  map[string]int{"Reddit": 7, "App Store": 2},
		results: []domain.EnrichedCitation{{ID: "R_1:c1", Text: "found it", Platform: "Reddit", Date: "2024-01-01"}},
	}
	ingestService = &mockIngestService{}

	return func() {
		rootCmd.PersistentPreRunE = prevPreRun
		cfg = prevCfg
		resolverService = prevResolver
		reportService = prevReport
		curationService = prevCuration
		analysisService = prevAnalysis
		datasetService = prevDataset
		ingestService = prevIngest
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)

		// Cobra keeps flag values across Execute calls.
		searchJSON = false
		reportJSON = false
		pipelineSkipScrape = false
		pipelineSkipAnalyze = false
	}
}

func testReport() []domain.Insight {
	return []domain.Insight{
		{
			Topic: "PERFORMANCE",
			Text:  "App startup is slow on older hardware.",
			Citations: []domain.EnrichedCitation{
				{ID: "AS_10", Text: "slow to open", Platform: "App Store", Date: "2024-03-01"},
			},
			Count: 1,
		},
	}
}

type mockResolver struct{}

func (m *mockResolver) Reset() {}

func (m *mockResolver) Resolve(_ context.Context, citationID string) domain.EnrichedCitation {
	return domain.EnrichedCitation{
		ID:       citationID,
		Text:     "resolved text",
		Platform: "Reddit",
		Date:     "2024-01-01",
	}
}

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

type mockCurationService struct {
	count int
	err   error
}

func (m *mockCurationService) Export(_ context.Context) (int, error) {
	return m.count, m.err
}

type mockAnalysisService struct {
	text string
	err  error
}

func (m *mockAnalysisService) Analyze(_ context.Context) (string, error) {
	return m.text, m.err
}

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

type mockIngestService struct {
	scraped []string
	err     error
}

func (m *mockIngestService) ScrapeAll(_ context.Context) error {
	m.scraped = append(m.scraped, "all")
	return m.err
}

func (m *mockIngestService) Scrape(_ context.Context, platform string) error {
	m.scraped = append(m.scraped, platform)
	return m.err
}

// Interface conformance for the mocks.
var (
	_ driving.CitationResolver   = (*mockResolver)(nil)
	_ driving.ReportService      = (*mockReportService)(nil)
	_ driving.CurationService    = (*mockCurationService)(nil)
	_ driving.AnalysisService    = (*mockAnalysisService)(nil)
	_ driving.DatasetService     = (*mockDatasetService)(nil)
	_ driving.IngestOrchestrator = (*mockIngestService)(nil)
)
