package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echolens-labs/echolens-cli/internal/core/domain"
)

func readRequest(uri string) *sdk.ReadResourceRequest {
	return &sdk.ReadResourceRequest{
		Params: &sdk.ReadResourceParams{URI: uri},
	}
}

func TestServer_handleReportResource(t *testing.T) {
	t.Run("returns report JSON", func(t *testing.T) {
		report := &mockReportService{
			insights: []domain.Insight{
				{
					Topic: "PERFORMANCE",
					Text:  "Users report slow startup on older devices. [[AS_1, GP_2]]",
					Citations: []domain.EnrichedCitation{
						{ID: "AS_1", Platform: "App Store"},
						{ID: "GP_2", Platform: "Google Play"},
					},
					Count: 2,
				},
			},
		}

		server, err := NewServer(&Ports{Resolver: &mockResolver{}, Report: report})
		require.NoError(t, err)

		result, err := server.handleReportResource(context.Background(), readRequest("echolens://report"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var insights []domain.Insight
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &insights))
		require.Len(t, insights, 1)
		assert.Equal(t, "PERFORMANCE", insights[0].Topic)
		assert.Len(t, insights[0].Citations, 2)
	})

	t.Run("missing report service returns empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Resolver: &mockResolver{}})
		require.NoError(t, err)

		result, err := server.handleReportResource(context.Background(), readRequest("echolens://report"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("load failure propagates", func(t *testing.T) {
		report := &mockReportService{err: errors.New("no report yet")}
		server, err := NewServer(&Ports{Resolver: &mockResolver{}, Report: report})
		require.NoError(t, err)

		_, err = server.handleReportResource(context.Background(), readRequest("echolens://report"))
		require.Error(t, err)
	})
}

func TestServer_handleCitationResource(t *testing.T) {
	t.Run("resolves citation from URI", func(t *testing.T) {
		resolver := &mockResolver{
			citations: map[string]domain.EnrichedCitation{
				"GP_review1": {ID: "GP_review1", Text: "Great app", Platform: "Google Play", Date: "2024-02-10"},
			},
		}
		server, err := NewServer(&Ports{Resolver: resolver})
		require.NoError(t, err)

		result, err := server.handleCitationResource(context.Background(),
			readRequest("echolens://citations/GP_review1"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)

		var c domain.EnrichedCitation
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &c))
		assert.Equal(t, "GP_review1", c.ID)
		assert.Equal(t, "Google Play", c.Platform)
	})

	t.Run("malformed URI is not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Resolver: &mockResolver{}})
		require.NoError(t, err)

		_, err = server.handleCitationResource(context.Background(),
			readRequest("echolens://somewhere/else"))
		require.Error(t, err)
	})
}

func TestExtractCitationID(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"valid", "echolens://citations/R_1abc:c1", "R_1abc:c1"},
		{"wrong prefix", "echolens://reports/R_1", ""},
		{"empty id", "echolens://citations/", ""},
		{"no scheme", "citations/R_1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractCitationID(tt.uri))
		})
	}
}
