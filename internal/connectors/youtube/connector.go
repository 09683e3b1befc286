package youtube

import (
	"context"
	"fmt"
	"time"

	"github.com/echolens-labs/echolens-cli/internal/core/domain"
	"github.com/echolens-labs/echolens-cli/internal/core/ports/driven"
	"github.com/echolens-labs/echolens-cli/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.FeedbackConnector = (*Connector)(nil)

// Config holds the YouTube connector settings.
type Config struct {
	APIKey              string
	ChannelID           string
	LookbackDays        int
	MaxCommentsPerVideo int
}

// youtubeAPI is the client surface the connector needs.
type youtubeAPI interface {
	UploadsPlaylist(ctx context.Context, channelID string) (string, error)
	PlaylistVideoIDs(ctx context.Context, playlistID string, max int64) ([]string, error)
	Video(ctx context.Context, videoID string) (*domain.YouTubeVideo, error)
	Comments(ctx context.Context, videoID string, max int64) ([]domain.YouTubeComment, error)
}

// Connector scrapes recent channel uploads and their comments.
type Connector struct {
	cfg    Config
	writer driven.YouTubeWriter

	// newClient is swapped in tests.
	newClient func(ctx context.Context) (youtubeAPI, error)

	// now is swapped in tests for the lookback cutoff.
	now func() time.Time
}

// New creates a YouTube connector writing into writer.
func New(cfg Config, writer driven.YouTubeWriter) *Connector {
	return &Connector{
		cfg:    cfg,
		writer: writer,
		newClient: func(ctx context.Context) (youtubeAPI, error) {
			return NewClient(ctx, cfg.APIKey)
		},
		now: time.Now,
	}
}

// Platform returns the connector's platform label.
func (c *Connector) Platform() string { return "Youtube" }

// Scrape fetches the channel's uploads of the lookback window and their
// top-level comments.
func (c *Connector) Scrape(ctx context.Context) (driven.ScrapeStats, error) {
	var stats driven.ScrapeStats

	if c.cfg.ChannelID == "" {
		return stats, fmt.Errorf("%w: no channel configured", domain.ErrInvalidInput)
	}

	client, err := c.newClient(ctx)
	if err != nil {
		return stats, err
	}

	playlistID, err := client.UploadsPlaylist(ctx, c.cfg.ChannelID)
	if err != nil {
		return stats, err
	}

	videoIDs, err := client.PlaylistVideoIDs(ctx, playlistID, 50)
	if err != nil {
		return stats, err
	}

	cutoff := c.now().AddDate(0, 0, -c.cfg.LookbackDays)
	maxComments := int64(c.cfg.MaxCommentsPerVideo)
	if maxComments <= 0 {
		maxComments = 50
	}

	for _, videoID := range videoIDs {
		video, err := client.Video(ctx, videoID)
		if err != nil {
			logger.Error("Video %s: %v", videoID, err)
			continue
		}

		published, err := time.Parse(time.RFC3339, video.PublishedAt)
		if err == nil && published.Before(cutoff) {
			continue
		}

		if err := c.writer.SaveVideo(ctx, *video); err != nil {
			return stats, fmt.Errorf("saving video %s: %w", videoID, err)
		}
		stats.Containers++

		comments, err := client.Comments(ctx, videoID, maxComments)
		if err != nil {
			// Comments can be disabled per video.
			logger.Error("Video %s comments: %v", videoID, err)
			continue
		}
		if err := c.writer.SaveComments(ctx, comments); err != nil {
			return stats, fmt.Errorf("saving comments of %s: %w", videoID, err)
		}
		stats.Records += len(comments)
	}

	return stats, nil
}
