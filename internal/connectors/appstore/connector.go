package appstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/echolens-labs/echolens-cli/internal/core/domain"
	"github.com/echolens-labs/echolens-cli/internal/core/ports/driven"
	"github.com/echolens-labs/echolens-cli/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.FeedbackConnector = (*Connector)(nil)

// feedBase is the public iTunes customer reviews feed.
const feedBase = "https://itunes.apple.com"

// maxFeedPages is the hard cap Apple enforces on the RSS feed.
const maxFeedPages = 10

// Config holds the App Store connector settings.
type Config struct {
	AppID        string
	AppSlug      string
	Country      string
	LookbackDays int
	MaxReviews   int
}

// Connector scrapes recent customer reviews of one app.
type Connector struct {
	cfg    Config
	writer driven.AppStoreWriter
	http   *http.Client

	// baseURL is swapped in tests.
	baseURL string

	// now is swapped in tests for the lookback cutoff.
	now func() time.Time
}

// New creates an App Store connector writing into writer.
func New(cfg Config, writer driven.AppStoreWriter) *Connector {
	return &Connector{
		cfg:     cfg,
		writer:  writer,
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: feedBase,
		now:     time.Now,
	}
}

// Platform returns the connector's platform label.
func (c *Connector) Platform() string { return "App Store" }

// feedEnvelope is the iTunes RSS JSON shape. Every leaf value sits
// under a "label" key.
type feedEnvelope struct {
	Feed struct {
		Entry []feedEntry `json:"entry"`
	} `json:"feed"`
}

type feedEntry struct {
	ID      labeled `json:"id"`
	Title   labeled `json:"title"`
	Content labeled `json:"content"`
	Rating  labeled `json:"im:rating"`
	Version labeled `json:"im:version"`
	Updated labeled `json:"updated"`
	Author  struct {
		Name labeled `json:"name"`
	} `json:"author"`
}

type labeled struct {
	Label string `json:"label"`
}

// Scrape pages through the reviews feed, keeps reviews inside the
// lookback window, and replaces the store with them.
func (c *Connector) Scrape(ctx context.Context) (driven.ScrapeStats, error) {
	var stats driven.ScrapeStats

	if c.cfg.AppID == "" {
		return stats, fmt.Errorf("%w: no app ID configured", domain.ErrInvalidInput)
	}

	cutoff := c.now().AddDate(0, 0, -c.cfg.LookbackDays)
	var reviews []domain.AppStoreReview

pages:
	for page := 1; page <= maxFeedPages; page++ {
		entries, err := c.fetchPage(ctx, page)
		if err != nil {
			if page == 1 {
				return stats, err
			}
			logger.Error("Reviews feed page %d: %v", page, err)
			break
		}
		if len(entries) == 0 {
			break
		}

		for _, entry := range entries {
			review, ok := c.toReview(entry)
			if !ok {
				continue
			}
			if review.Date.Before(cutoff) {
				// The feed is most-recent-first; everything after
				// this is older still.
				break pages
			}
			reviews = append(reviews, review)
			if c.cfg.MaxReviews > 0 && len(reviews) >= c.cfg.MaxReviews {
				break pages
			}
		}
	}

	if err := c.writer.Replace(ctx, reviews); err != nil {
		return stats, fmt.Errorf("replacing reviews: %w", err)
	}

	stats.Containers = 1
	stats.Records = len(reviews)
	return stats, nil
}

func (c *Connector) fetchPage(ctx context.Context, page int) ([]feedEntry, error) {
	url := fmt.Sprintf("%s/%s/rss/customerreviews/page=%d/id=%s/sortby=mostrecent/json",
		c.baseURL, c.cfg.Country, page, c.cfg.AppID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching reviews feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reviews feed error (status %d)", resp.StatusCode)
	}

	var envelope feedEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decoding reviews feed: %w", err)
	}
	return envelope.Feed.Entry, nil
}

// toReview converts a feed entry, dropping ones with unusable IDs.
func (c *Connector) toReview(entry feedEntry) (domain.AppStoreReview, bool) {
	id, err := strconv.ParseInt(entry.ID.Label, 10, 64)
	if err != nil {
		return domain.AppStoreReview{}, false
	}

	rating, _ := strconv.Atoi(entry.Rating.Label)
	date, err := time.Parse(time.RFC3339, entry.Updated.Label)
	if err != nil {
		date = c.now()
	}

	return domain.AppStoreReview{
		ID:       id,
		UserName: entry.Author.Name.Label,
		Rating:   rating,
		Title:    entry.Title.Label,
		Text:     entry.Content.Label,
		URL: fmt.Sprintf("https://apps.apple.com/%s/app/%s/id%s?see-all=reviews#review/%d",
			c.cfg.Country, c.cfg.AppSlug, c.cfg.AppID, id),
		Date:    date,
		Version: entry.Version.Label,
	}, true
}
