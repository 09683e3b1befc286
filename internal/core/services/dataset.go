package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/echolens-labs/echolens-cli/internal/core/domain"
	"github.com/echolens-labs/echolens-cli/internal/core/ports/driven"
	"github.com/echolens-labs/echolens-cli/internal/core/ports/driving"
	"github.com/echolens-labs/echolens-cli/internal/logger"
)

// Ensure DatasetStatsService implements the interface.
var _ driving.DatasetService = (*DatasetStatsService)(nil)

// searchMaxText caps per-record text in the search dataset so the full
// scan fits a large-context model.
const searchMaxText = 1000

// searchSystemPrompt instructs the model to answer with citation IDs
// only; the response is parsed, not displayed.
const searchSystemPrompt = `You are a Semantic Search Engine.
I will provide a dataset of comments in the format: ID|Text
Your Task:
1. Identify comments that match the User's Query.
2. Return a JSON list of IDs: ["ID1", "ID2"]`

var (
	// citationIDPattern recovers citation IDs from a model response
	// that ignored the JSON-list instruction.
	citationIDPattern = regexp.MustCompile(`(?:R|YT|AS|GP)_[a-zA-Z0-9_\-.:]+`)

	// thinkBlock strips reasoning traces some models wrap the answer in.
	thinkBlock = regexp.MustCompile(`(?s)<think>.*?</think>`)
)

// DatasetStatsService answers questions about the source record stores
// as a whole: per-platform counts and LLM-backed semantic search.
type DatasetStatsService struct {
	readers  []driven.DatasetReader
	resolver driving.CitationResolver
	llm      driven.LLMService
}

// NewDatasetStatsService creates a dataset service over the given
// readers. llm may be nil, in which case SemanticSearch is unavailable.
func NewDatasetStatsService(resolver driving.CitationResolver, llm driven.LLMService, readers ...driven.DatasetReader) *DatasetStatsService {
	return &DatasetStatsService{
		readers:  readers,
		resolver: resolver,
		llm:      llm,
	}
}

// Counts returns per-platform record counts keyed by platform label.
// Platforms whose stores are absent count as zero.
func (s *DatasetStatsService) Counts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int, len(s.readers))
	for _, reader := range s.readers {
		n, err := reader.Count(ctx)
		if err != nil {
			logger.Debug("Counting %s: %v", reader.Label(), err)
			n = 0
		}
		counts[reader.Label()] = n
	}
	return counts, nil
}

// SemanticSearch scans the full exported dataset with the LLM and
// returns the matching records as resolved citations.
func (s *DatasetStatsService) SemanticSearch(ctx context.Context, prompt string) ([]domain.EnrichedCitation, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, fmt.Errorf("%w: empty search prompt", domain.ErrInvalidInput)
	}
	if s.llm == nil {
		return nil, fmt.Errorf("%w: no LLM configured", domain.ErrLLMUnavailable)
	}

	logger.Section("Semantic Search")

	var lines []string
	for _, reader := range s.readers {
		records, err := reader.All(ctx, searchMaxText)
		if err != nil {
			logger.Debug("Exporting %s for search: %v", reader.Label(), err)
			continue
		}
		for _, r := range records {
			lines = append(lines, r.ID+"|"+strings.ReplaceAll(r.Text, "\n", " "))
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no records to search", domain.ErrStoreUnavailable)
	}
	logger.Info("Scanning %d records", len(lines))

	response, err := s.llm.Chat(ctx, []driven.ChatMessage{
		{Role: "system", Content: searchSystemPrompt},
		{Role: "user", Content: fmt.Sprintf("User Query: %q\n\nDATASET:\n%s", prompt, strings.Join(lines, "\n"))},
	}, driven.ChatOptions{Temperature: 0})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLLMUnavailable, err)
	}

	ids := parseSearchResponse(response)
	logger.Info("Model returned %d matching IDs", len(ids))

	citations := make([]domain.EnrichedCitation, 0, len(ids))
	for _, id := range ids {
		citations = append(citations, s.resolver.Resolve(ctx, id))
	}
	return citations, nil
}

// parseSearchResponse extracts citation IDs from the model's answer,
// preferring the instructed JSON list but falling back to pattern
// matching when the model wraps or mangles it.
func parseSearchResponse(response string) []string {
	response = thinkBlock.ReplaceAllString(response, "")
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	var ids []string
	if err := json.Unmarshal([]byte(response), &ids); err == nil {
		return dedupeIDs(ids)
	}
	return dedupeIDs(citationIDPattern.FindAllString(response, -1))
}

func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
