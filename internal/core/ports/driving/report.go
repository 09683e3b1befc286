package driving

import (
	"context"

	"github.com/echolens-labs/echolens-cli/internal/core/domain"
)

// CitationResolver resolves opaque citation IDs into displayable,
// source-verified citations. Resolution never fails: any input string,
// well-formed or not, yields exactly one EnrichedCitation. Resolving
// the same ID twice within one run returns identical records.
type CitationResolver interface {
	Resolve(ctx context.Context, citationID string) domain.EnrichedCitation

	// Reset discards cached resolutions. Report generation calls it at
	// the start of each run so successive runs see current store state.
	Reset()
}

// ReportService turns raw LLM analysis text into the structured,
// citation-backed report artifact.
type ReportService interface {
	// Parse reconstructs ordered insights from raw analysis text.
	// Returns domain.ErrEmptyReport when no insights could be parsed.
	Parse(ctx context.Context, rawText string) ([]domain.Insight, error)

	// Generate reads the analysis input file, parses it, and writes the
	// report artifact. Returns domain.ErrMissingInput when the input
	// file is absent - the one fatal condition of report generation.
	Generate(ctx context.Context) ([]domain.Insight, error)

	// Load reads a previously generated report artifact.
	Load() ([]domain.Insight, error)
}

// CurationService exports the bounded per-platform subset of feedback
// records for prompt submission.
type CurationService interface {
	// Export writes the curated dataset file and returns the number of
	// records exported.
	Export(ctx context.Context) (int, error)
}

// AnalysisService submits the curated dataset to the LLM and persists
// the free-text analysis it returns.
type AnalysisService interface {
	// Analyze runs the summarization prompt and writes the raw analysis
	// text file consumed by ReportService.Generate.
	Analyze(ctx context.Context) (string, error)
}

// DatasetService answers questions about the source record stores as a
// whole.
type DatasetService interface {
	// Counts returns per-platform record counts keyed by platform
	// label. Absent stores count as zero.
	Counts(ctx context.Context) (map[string]int, error)

	// SemanticSearch scans the full exported dataset with the LLM and
	// returns the matching records as resolved citations.
	SemanticSearch(ctx context.Context, prompt string) ([]domain.EnrichedCitation, error)
}

// IngestOrchestrator runs the platform scrapers.
type IngestOrchestrator interface {
	// ScrapeAll runs every configured connector in order, logging and
	// skipping the ones that fail. It returns an error only when all
	// connectors fail.
	ScrapeAll(ctx context.Context) error

	// Scrape runs a single connector by platform label.
	Scrape(ctx context.Context, platform string) error
}
