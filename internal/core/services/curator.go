package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/echolens-labs/echolens-cli/internal/core/domain"
	"github.com/echolens-labs/echolens-cli/internal/core/ports/driven"
	"github.com/echolens-labs/echolens-cli/internal/core/ports/driving"
	"github.com/echolens-labs/echolens-cli/internal/logger"
)

// Ensure CuratorService implements the interface.
var _ driving.CurationService = (*CuratorService)(nil)

// CurationEntry pairs a dataset reader with its export cap.
type CurationEntry struct {
	Reader driven.DatasetReader
	Limit  int
}

// CuratorService exports the bounded per-platform subset of feedback
// records that gets submitted to the LLM. Each record carries the full
// citation ID so the LLM can cite it back verbatim.
type CuratorService struct {
	entries    []CurationEntry
	outputPath string
}

// NewCuratorService creates a curator writing the curated dataset to
// outputPath.
func NewCuratorService(outputPath string, entries ...CurationEntry) *CuratorService {
	return &CuratorService{
		entries:    entries,
		outputPath: outputPath,
	}
}

// Export writes the curated dataset file and returns the number of
// records exported. Platforms whose stores are missing are logged and
// skipped; Export fails only when no platform contributes anything.
func (s *CuratorService) Export(ctx context.Context) (int, error) {
	logger.Section("Dataset Curation")

	var curated []domain.CuratedRecord
	for _, entry := range s.entries {
		records, err := entry.Reader.Curated(ctx, entry.Limit)
		if err != nil {
			logger.Error("Curating %s: %v", entry.Reader.Label(), err)
			continue
		}
		logger.Info("%s: %d records", entry.Reader.Label(), len(records))
		curated = append(curated, records...)
	}

	if len(curated) == 0 {
		return 0, fmt.Errorf("%w: no platform contributed curated records", domain.ErrStoreUnavailable)
	}

	data, err := json.MarshalIndent(curated, "", "    ")
	if err != nil {
		return 0, fmt.Errorf("encoding curated dataset: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.outputPath), 0o700); err != nil {
		return 0, fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.WriteFile(s.outputPath, data, 0o600); err != nil {
		return 0, fmt.Errorf("writing curated dataset: %w", err)
	}

	logger.Info("Curated dataset written to %s (%d records)", s.outputPath, len(curated))
	return len(curated), nil
}
