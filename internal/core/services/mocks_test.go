package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/echolens-labs/echolens-cli/internal/core/domain"
	"github.com/echolens-labs/echolens-cli/internal/core/ports/driven"
)

// mockSource is an in-memory CitationSource for resolver tests.
type mockSource struct {
	prefix  string
	label   string
	records map[string]driven.ResolvedRecord

	// forced error returned by Resolve regardless of records.
	resolveErr error

	mu       sync.Mutex
	resolves int
}

func (m *mockSource) Prefix() string { return m.prefix }
func (m *mockSource) Label() string  { return m.label }

func (m *mockSource) ExtractKey(citationID string) (string, error) {
	rest := citationID[len(m.prefix)+1:]
	if rest == "" {
		return "", fmt.Errorf("%w: %q", domain.ErrMalformedCitation, citationID)
	}
	return rest, nil
}

func (m *mockSource) Resolve(_ context.Context, nativeKey string) (*driven.ResolvedRecord, error) {
	m.mu.Lock()
	m.resolves++
	m.mu.Unlock()

	if m.resolveErr != nil {
		return nil, m.resolveErr
	}
	rec, ok := m.records[nativeKey]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

func (m *mockSource) resolveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolves
}

// mockResolver maps citation IDs straight to enriched citations.
type mockResolver struct {
	records map[string]domain.EnrichedCitation
	resets  int
}

func (m *mockResolver) Reset() { m.resets++ }

func (m *mockResolver) Resolve(_ context.Context, citationID string) domain.EnrichedCitation {
	if rec, ok := m.records[citationID]; ok {
		return rec
	}
	return domain.EnrichedCitation{
		ID:       citationID,
		Text:     "Citation not found in source data",
		URL:      domain.SentinelURL,
		Platform: domain.PlatformUnknown,
	}
}

// mockReader is an in-memory DatasetReader.
type mockReader struct {
	label    string
	records  []domain.CuratedRecord
	count    int
	countErr error
	readErr  error
}

func (m *mockReader) Label() string { return m.label }

func (m *mockReader) Count(context.Context) (int, error) {
	return m.count, m.countErr
}

func (m *mockReader) Curated(_ context.Context, limit int) ([]domain.CuratedRecord, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	if limit < len(m.records) {
		return m.records[:limit], nil
	}
	return m.records, nil
}

func (m *mockReader) All(_ context.Context, _ int) ([]domain.CuratedRecord, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	return m.records, nil
}

// mockLLM replays a canned response and captures what it was asked.
type mockLLM struct {
	response string
	err      error

	mu       sync.Mutex
	messages [][]driven.ChatMessage
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	m.mu.Lock()
	m.messages = append(m.messages, messages)
	m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockLLM) ModelName() string { return "mock-model" }
func (m *mockLLM) Close() error      { return nil }

// mockConnector records scrape invocations.
type mockConnector struct {
	platform string
	stats    driven.ScrapeStats
	err      error
	runs     int
}

func (m *mockConnector) Platform() string { return m.platform }

func (m *mockConnector) Scrape(context.Context) (driven.ScrapeStats, error) {
	m.runs++
	if m.err != nil {
		return driven.ScrapeStats{}, m.err
	}
	return m.stats, nil
}
