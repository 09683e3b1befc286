package httpapi

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/echolens-labs/echolens-cli/internal/core/domain"
)

// signalReportService signals on generated when Generate is called.
type signalReportService struct {
	mockReportService
	generated chan struct{}
}

func (s *signalReportService) Generate(_ context.Context) ([]domain.Insight, error) {
	select {
	case s.generated <- struct{}{}:
	default:
	}
	return s.insights, s.err
}

func TestServer_Watch(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "llm_analysis_output.txt")
	require.NoError(t, os.WriteFile(inputPath, []byte("initial"), 0o600))

	report := &signalReportService{generated: make(chan struct{}, 1)}
	srv, err := NewServer(report, nil, filepath.Join(dir, "report.json"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Watch(ctx, inputPath)
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(inputPath, []byte("updated analysis"), 0o600))

	select {
	case <-report.generated:
	case <-time.After(5 * time.Second):
		t.Fatal("report was not regenerated after input change")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on context cancel")
	}
}
