package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/echolens-labs/echolens-cli/internal/core/domain"
	"github.com/echolens-labs/echolens-cli/internal/core/ports/driven"
	"github.com/echolens-labs/echolens-cli/internal/core/ports/driving"
	"github.com/echolens-labs/echolens-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestOrchestrator = (*IngestService)(nil)

// IngestService runs the platform scrapers in order. Each run gets a
// UUID so log lines from overlapping invocations stay attributable.
type IngestService struct {
	connectors []driven.FeedbackConnector
}

// NewIngestService creates an orchestrator over the given connectors.
func NewIngestService(connectors ...driven.FeedbackConnector) *IngestService {
	return &IngestService{connectors: connectors}
}

// ScrapeAll runs every configured connector in order, logging and
// skipping failures. It returns an error only when every connector
// fails.
func (s *IngestService) ScrapeAll(ctx context.Context) error {
	if len(s.connectors) == 0 {
		return fmt.Errorf("%w: no connectors configured", domain.ErrInvalidInput)
	}

	runID := uuid.NewString()
	logger.Section("Scrape Run " + runID)

	failures := 0
	for _, connector := range s.connectors {
		if err := s.run(ctx, runID, connector); err != nil {
			logger.Error("[%s] %s scrape failed: %v", runID, connector.Platform(), err)
			failures++
		}
	}

	if failures == len(s.connectors) {
		return fmt.Errorf("all %d connectors failed, see log", failures)
	}
	return nil
}

// Scrape runs a single connector by platform label (case-insensitive).
func (s *IngestService) Scrape(ctx context.Context, platform string) error {
	for _, connector := range s.connectors {
		if strings.EqualFold(connector.Platform(), platform) {
			return s.run(ctx, uuid.NewString(), connector)
		}
	}
	return fmt.Errorf("%w: unknown platform %q", domain.ErrUnknownPlatform, platform)
}

func (s *IngestService) run(ctx context.Context, runID string, connector driven.FeedbackConnector) error {
	logger.Info("[%s] Scraping %s", runID, connector.Platform())
	stats, err := connector.Scrape(ctx)
	if err != nil {
		return err
	}
	logger.Info("[%s] %s: %d containers, %d records", runID, connector.Platform(), stats.Containers, stats.Records)
	return nil
}
