package googleplay

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/echolens-labs/echolens-cli/internal/core/domain"
	"github.com/echolens-labs/echolens-cli/internal/core/ports/driven"
	"github.com/echolens-labs/echolens-cli/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.FeedbackConnector = (*Connector)(nil)

// storedDateFormat matches the review_date column convention.
const storedDateFormat = "2006-01-02 15:04:05"

// Config holds the Google Play connector settings.
type Config struct {
	AppID        string
	Language     string
	Country      string
	LookbackDays int
}

// Connector scrapes recent Play reviews of one app.
type Connector struct {
	cfg    Config
	writer driven.GooglePlayWriter
	http   *http.Client

	// baseURL is swapped in tests.
	baseURL string

	// now is swapped in tests for the lookback cutoff.
	now func() time.Time
}

// New creates a Google Play connector writing into writer.
func New(cfg Config, writer driven.GooglePlayWriter) *Connector {
	return &Connector{
		cfg:     cfg,
		writer:  writer,
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: rpcURL,
		now:     time.Now,
	}
}

// Platform returns the connector's platform label.
func (c *Connector) Platform() string { return "Google Play" }

// Scrape pages through newest-first reviews until the lookback cutoff
// and saves them.
func (c *Connector) Scrape(ctx context.Context) (driven.ScrapeStats, error) {
	var stats driven.ScrapeStats

	if c.cfg.AppID == "" {
		return stats, fmt.Errorf("%w: no app ID configured", domain.ErrInvalidInput)
	}

	cutoff := c.now().AddDate(0, 0, -c.cfg.LookbackDays)
	var records []domain.GooglePlayReview

	token := ""
	for {
		reviews, next, err := fetchReviews(ctx, c.http, c.baseURL,
			c.cfg.AppID, c.cfg.Language, c.cfg.Country, token)
		if err != nil {
			if len(records) == 0 {
				return stats, err
			}
			logger.Error("Play reviews page: %v", err)
			break
		}

		reachedCutoff := false
		for _, r := range reviews {
			if !r.At.IsZero() && r.At.Before(cutoff) {
				reachedCutoff = true
				break
			}
			records = append(records, domain.GooglePlayReview{
				ID:       r.ID,
				UserName: r.UserName,
				Date:     r.At.Format(storedDateFormat),
				Text:     r.Text,
				Rating:   r.Rating,
				URL: fmt.Sprintf("https://play.google.com/store/apps/details?id=%s&reviewId=%s",
					c.cfg.AppID, r.ID),
			})
		}

		if reachedCutoff || next == "" || len(reviews) == 0 {
			break
		}
		token = next
	}

	if err := c.writer.SaveReviews(ctx, records); err != nil {
		return stats, fmt.Errorf("saving reviews: %w", err)
	}

	stats.Containers = 1
	stats.Records = len(records)
	return stats, nil
}
