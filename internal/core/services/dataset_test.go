package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echolens-labs/echolens-cli/internal/core/domain"
)

func TestDatasetStatsService_Counts(t *testing.T) {
	svc := NewDatasetStatsService(&mockResolver{}, nil,
		&mockReader{label: "Reddit", count: 42},
		&mockReader{label: "Youtube", count: 7},
		&mockReader{label: "App Store", countErr: domain.ErrStoreUnavailable},
	)

	counts, err := svc.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"Reddit":    42,
		"Youtube":   7,
		"App Store": 0,
	}, counts)
}

func TestDatasetStatsService_SemanticSearch(t *testing.T) {
	resolver := &mockResolver{records: map[string]domain.EnrichedCitation{
		"R_1abc:c1": {ID: "R_1abc:c1", Text: "Crashes on launch.", Platform: "Reddit"},
		"YT_a1":     {ID: "YT_a1", Text: "Layout is confusing.", Platform: "Youtube"},
	}}
	llm := &mockLLM{response: `["R_1abc:c1", "YT_a1"]`}
	svc := NewDatasetStatsService(resolver, llm,
		&mockReader{label: "Reddit", records: []domain.CuratedRecord{
			{ID: "R_1abc:c1", Text: "Crashes on launch."},
		}},
		&mockReader{label: "Youtube", records: []domain.CuratedRecord{
			{ID: "YT_a1", Text: "Layout is confusing."},
		}},
	)

	citations, err := svc.SemanticSearch(context.Background(), "crash reports")
	require.NoError(t, err)
	require.Len(t, citations, 2)
	assert.Equal(t, "R_1abc:c1", citations[0].ID)
	assert.Equal(t, "Reddit", citations[0].Platform)

	// The dataset went to the model in ID|Text lines.
	require.Len(t, llm.messages, 1)
	assert.Contains(t, llm.messages[0][1].Content, "R_1abc:c1|Crashes on launch.")
}

func TestDatasetStatsService_SemanticSearch_EmptyPrompt(t *testing.T) {
	svc := NewDatasetStatsService(&mockResolver{}, &mockLLM{},
		&mockReader{label: "Reddit"})

	_, err := svc.SemanticSearch(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDatasetStatsService_SemanticSearch_NoLLM(t *testing.T) {
	svc := NewDatasetStatsService(&mockResolver{}, nil,
		&mockReader{label: "Reddit", records: []domain.CuratedRecord{{ID: "R_x"}}})

	_, err := svc.SemanticSearch(context.Background(), "anything")
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}

func TestParseSearchResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     []string
	}{
		{
			"clean json list",
			`["R_1abc:c1", "AS_9"]`,
			[]string{"R_1abc:c1", "AS_9"},
		},
		{
			"fenced json",
			"```json\n[\"YT_a1\"]\n```",
			[]string{"YT_a1"},
		},
		{
			"think block then json",
			"<think>scanning the dataset</think>[\"GP_gp:review_1\"]",
			[]string{"GP_gp:review_1"},
		},
		{
			"prose fallback",
			"The matching comments are R_1abc:c1 and AS_9.",
			[]string{"R_1abc:c1", "AS_9."},
		},
		{
			"duplicates collapsed",
			`["R_x", "R_x", "YT_y"]`,
			[]string{"R_x", "YT_y"},
		},
		{
			"nothing matched",
			"No comments match this query.",
			[]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseSearchResponse(tt.response)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
