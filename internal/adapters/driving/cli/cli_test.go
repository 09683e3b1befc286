package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echolens-labs/echolens-cli/internal/core/domain"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "echolens version")
}

func TestResolveCmd(t *testing.T) {
	t.Run("prints resolved citation as JSON", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()

		out, err := execute(t, "resolve", "R_1abc:c1")
		require.NoError(t, err)

		var c domain.EnrichedCitation
		require.NoError(t, json.Unmarshal([]byte(out), &c))
		assert.Equal(t, "R_1abc:c1", c.ID)
		assert.Equal(t, "resolved text", c.Text)
	})

	t.Run("requires exactly one arg", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()

		_, err := execute(t, "resolve")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "accepts 1 arg(s)")
	})
}

func TestCountsCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "counts")
	require.NoError(t, err)
	assert.Contains(t, out, "Reddit")
	assert.Contains(t, out, "7")
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "9")
}

func TestSearchCmd(t *testing.T) {
	t.Run("prints results", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()

		out, err := execute(t, "search", "design complaints")
		require.NoError(t, err)
		assert.Contains(t, out, "Results:")
		assert.Contains(t, out, "R_1:c1")
		assert.Contains(t, out, "found it")
	})

	t.Run("json output", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()

		out, err := execute(t, "search", "--json", "design complaints")
		require.NoError(t, err)

		var results []domain.EnrichedCitation
		require.NoError(t, json.Unmarshal([]byte(out), &results))
		require.Len(t, results, 1)
		assert.Equal(t, "R_1:c1", results[0].ID)
	})

	t.Run("llm unavailable is a friendly error", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()
		datasetService = &mockDatasetService{err: domain.ErrLLMUnavailable}

		_, err := execute(t, "search", "anything")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no LLM configured")
	})
}

func TestReportCmd(t *testing.T) {
	t.Run("generate reports insight count", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()

		out, err := execute(t, "report", "generate")
		require.NoError(t, err)
		assert.Contains(t, out, "Wrote 1 insights")
	})

	t.Run("generate without analysis text hints at analyze", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()
		reportService = &mockReportService{err: domain.ErrMissingInput}

		_, err := execute(t, "report", "generate")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "echolens analyze")
	})

	t.Run("show prints topics and citations", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()

		out, err := execute(t, "report", "show")
		require.NoError(t, err)
		assert.Contains(t, out, "PERFORMANCE")
		assert.Contains(t, out, "AS_10")
	})

	t.Run("show --json round-trips", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()

		out, err := execute(t, "report", "show", "--json")
		require.NoError(t, err)

		var insights []domain.Insight
		require.NoError(t, json.Unmarshal([]byte(out), &insights))
		require.Len(t, insights, 1)
		assert.Equal(t, "PERFORMANCE", insights[0].Topic)
	})
}

func TestCurateCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "curate")
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 42 records")
}

func TestScrapeCmd(t *testing.T) {
	t.Run("scrapes all platforms", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()

		mock := &mockIngestService{}
		ingestService = mock

		out, err := execute(t, "scrape")
		require.NoError(t, err)
		assert.Contains(t, out, "Scrape complete.")
		assert.Equal(t, []string{"all"}, mock.scraped)
	})

	t.Run("scrapes a single platform", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()

		mock := &mockIngestService{}
		ingestService = mock

		out, err := execute(t, "scrape", "Reddit")
		require.NoError(t, err)
		assert.Contains(t, out, "Scrape of Reddit complete.")
		assert.Equal(t, []string{"Reddit"}, mock.scraped)
	})
}

func TestAnalyzeCmd(t *testing.T) {
	t.Run("runs analysis", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()

		out, err := execute(t, "analyze")
		require.NoError(t, err)
		assert.Contains(t, out, "Analysis written to")
	})

	t.Run("nil service reports missing key", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()
		analysisService = nil

		_, err := execute(t, "analyze")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no LLM configured")
	})
}

func TestRunCmd(t *testing.T) {
	t.Run("runs every stage in order", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()

		mock := &mockIngestService{}
		ingestService = mock

		out, err := execute(t, "run")
		require.NoError(t, err)
		assert.Equal(t, []string{"all"}, mock.scraped)
		assert.Contains(t, out, "Curated 42 records.")
		assert.Contains(t, out, "Pipeline complete: 1 insights")
	})

	t.Run("skip flags bypass scrape and analyze", func(t *testing.T) {
		cleanup := setupTestServices()
		defer cleanup()

		mock := &mockIngestService{}
		ingestService = mock
		analysisService = nil // would fail if analyze stage ran

		_, err := execute(t, "run", "--skip-scrape", "--skip-analyze")
		require.NoError(t, err)
		assert.Empty(t, mock.scraped)
	})
}

func TestSettingsShowCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Current Configuration")
	assert.Contains(t, out, "API Key: (not set)")
	assert.Contains(t, out, "r/theeconomist")
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "sk-a...wxyz", maskAPIKey("sk-abcdefgwxyz"))
}
