package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/echolens-labs/echolens-cli/internal/core/domain"
	"github.com/echolens-labs/echolens-cli/internal/core/ports/driving"
	"github.com/echolens-labs/echolens-cli/internal/logger"
)

// Ensure ReporterService implements the interface.
var _ driving.ReportService = (*ReporterService)(nil)

// topicColonLimit bounds how far into an insight a colon may appear and
// still be read as a "TOPIC: body" label. Topic labels are short by
// prompt convention; a later colon is running prose.
const topicColonLimit = 25

var (
	// citationGroup matches one [[ID, ID, ...]] group and the
	// whitespace touching it, so stripping leaves clean prose.
	citationGroup = regexp.MustCompile(`\s*\[\[([^\]]*)\]\]`)

	// listMarker matches a numbered-list line start, the fallback
	// format the LLM sometimes emits instead of blank-line separation.
	listMarker = regexp.MustCompile(`(?m)^[ \t]*\d+\.[ \t]+`)

	// blockBreak splits the normalized text into insight blocks.
	blockBreak = regexp.MustCompile(`\n[ \t]*\n`)
)

// ReporterService reconstructs structured, citation-backed reports from
// raw LLM analysis text.
type ReporterService struct {
	resolver   driving.CitationResolver
	inputPath  string
	outputPath string
}

// NewReporterService creates a reporter reading raw analysis from
// inputPath and writing the report artifact to outputPath.
func NewReporterService(resolver driving.CitationResolver, inputPath, outputPath string) *ReporterService {
	return &ReporterService{
		resolver:   resolver,
		inputPath:  inputPath,
		outputPath: outputPath,
	}
}

// Parse splits rawText into insight blocks, resolves each block's
// citations, and returns the insights in their original textual order.
// Blocks without citation markers are retained with an empty citation
// list. Returns domain.ErrEmptyReport when nothing parses.
func (s *ReporterService) Parse(ctx context.Context, rawText string) ([]domain.Insight, error) {
	rawText = strings.TrimSpace(rawText)
	if rawText == "" {
		return nil, domain.ErrEmptyReport
	}

	// Numbered-list markers become block breaks, so both output
	// formats the LLM produces split identically.
	normalized := listMarker.ReplaceAllString(rawText, "\n\n")

	var insights []domain.Insight
	for _, block := range blockBreak.Split(normalized, -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		ids := extractCitationIDs(block)
		cleaned := strings.TrimSpace(citationGroup.ReplaceAllString(block, ""))
		if cleaned == "" {
			// A bare citation group carries nothing to display.
			continue
		}

		topic, body := splitTopic(cleaned)

		citations := make([]domain.EnrichedCitation, 0, len(ids))
		for _, id := range ids {
			citations = append(citations, s.resolver.Resolve(ctx, id))
		}

		insights = append(insights, domain.Insight{
			Topic:     topic,
			Text:      body,
			Citations: citations,
			Count:     len(citations),
		})
	}

	if len(insights) == 0 {
		return nil, domain.ErrEmptyReport
	}
	logger.Info("Parsed %d insights", len(insights))
	return insights, nil
}

// Generate reads the raw analysis file, parses it, and writes the
// report artifact. A missing input file is the one fatal condition and
// reports domain.ErrMissingInput.
func (s *ReporterService) Generate(ctx context.Context) ([]domain.Insight, error) {
	logger.Section("Report Generation")

	// Each run resolves against current store state.
	s.resolver.Reset()

	raw, err := os.ReadFile(s.inputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrMissingInput, s.inputPath)
		}
		return nil, fmt.Errorf("reading analysis input: %w", err)
	}
	logger.Info("Read analysis input from %s", s.inputPath)

	insights, err := s.Parse(ctx, string(raw))
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(insights, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encoding report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.outputPath), 0o700); err != nil {
		return nil, fmt.Errorf("creating report directory: %w", err)
	}
	if err := os.WriteFile(s.outputPath, data, 0o600); err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}
	logger.Info("Report written to %s", s.outputPath)
	return insights, nil
}

// Load reads a previously generated report artifact.
func (s *ReporterService) Load() ([]domain.Insight, error) {
	data, err := os.ReadFile(s.outputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrMissingInput, s.outputPath)
		}
		return nil, fmt.Errorf("reading report: %w", err)
	}

	var insights []domain.Insight
	if err := json.Unmarshal(data, &insights); err != nil {
		return nil, fmt.Errorf("decoding report %s: %w", s.outputPath, err)
	}
	return insights, nil
}

// extractCitationIDs collects every identifier from all [[...]] groups
// in a block, deduplicated and sorted.
func extractCitationIDs(block string) []string {
	seen := make(map[string]struct{})
	for _, group := range citationGroup.FindAllStringSubmatch(block, -1) {
		for _, id := range strings.Split(group[1], ",") {
			id = strings.TrimSpace(id)
			if id != "" {
				seen[id] = struct{}{}
			}
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// splitTopic applies the "TOPIC: body" convention. The pre-colon
// segment is a topic only when the colon appears early, the segment
// contains a letter, and none of its letters are lowercase. Anything
// else is prose under the default topic.
func splitTopic(text string) (topic, body string) {
	i := strings.Index(text, ":")
	if i < 1 || i >= topicColonLimit {
		return domain.DefaultTopic, text
	}

	label := strings.TrimSpace(text[:i])
	hasLetter := false
	for _, r := range label {
		if unicode.IsLower(r) {
			return domain.DefaultTopic, text
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	if !hasLetter {
		return domain.DefaultTopic, text
	}

	return strings.ToUpper(label), strings.TrimSpace(text[i+1:])
}
