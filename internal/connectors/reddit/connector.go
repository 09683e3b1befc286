package reddit

import (
	"context"
	"fmt"

	"github.com/echolens-labs/echolens-cli/internal/core/domain"
	"github.com/echolens-labs/echolens-cli/internal/core/ports/driven"
	"github.com/echolens-labs/echolens-cli/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.FeedbackConnector = (*Connector)(nil)

// Config holds the Reddit connector settings.
type Config struct {
	Subreddit         string
	PostLimit         int
	ClientID          string
	ClientSecret      string
	UserAgent         string
	RequestsPerMinute int
}

// Connector scrapes a subreddit's top posts and comment trees.
type Connector struct {
	cfg    Config
	writer driven.RedditWriter

	// newClient is swapped in tests.
	newClient func(ctx context.Context) (redditAPI, error)
}

// redditAPI is the client surface the connector needs.
type redditAPI interface {
	TopPosts(ctx context.Context, subreddit string, limit int) ([]postData, error)
	Comments(ctx context.Context, subreddit, postID string) ([]commentData, error)
}

// New creates a Reddit connector writing into writer.
func New(cfg Config, writer driven.RedditWriter) *Connector {
	return &Connector{
		cfg:    cfg,
		writer: writer,
		newClient: func(ctx context.Context) (redditAPI, error) {
			return NewClient(ctx, cfg.ClientID, cfg.ClientSecret, cfg.UserAgent, cfg.RequestsPerMinute)
		},
	}
}

// Platform returns the connector's platform label.
func (c *Connector) Platform() string { return "Reddit" }

// Scrape fetches the configured subreddit's top posts of the month and
// every comment under them.
func (c *Connector) Scrape(ctx context.Context) (driven.ScrapeStats, error) {
	var stats driven.ScrapeStats

	if c.cfg.Subreddit == "" {
		return stats, fmt.Errorf("%w: no subreddit configured", domain.ErrInvalidInput)
	}

	client, err := c.newClient(ctx)
	if err != nil {
		return stats, err
	}

	posts, err := client.TopPosts(ctx, c.cfg.Subreddit, c.cfg.PostLimit)
	if err != nil {
		return stats, fmt.Errorf("fetching top posts: %w", err)
	}
	logger.Info("r/%s: %d top posts", c.cfg.Subreddit, len(posts))

	for _, post := range posts {
		if err := c.writer.SavePost(ctx, domain.RedditPost{
			ID:          post.ID,
			Subreddit:   post.Subreddit,
			Title:       post.Title,
			Score:       post.Score,
			UpvoteRatio: post.UpvoteRatio,
			NumComments: post.NumComments,
			CreatedUTC:  post.CreatedUTC,
			PostURL:     post.Permalink,
		}); err != nil {
			return stats, fmt.Errorf("saving post %s: %w", post.ID, err)
		}
		stats.Containers++

		comments, err := client.Comments(ctx, c.cfg.Subreddit, post.ID)
		if err != nil {
			logger.Error("r/%s post %s: fetching comments: %v", c.cfg.Subreddit, post.ID, err)
			continue
		}

		records := make([]domain.RedditComment, 0, len(comments))
		for _, comment := range comments {
			records = append(records, domain.RedditComment{
				ID:         comment.ID,
				PostID:     post.ID,
				ParentID:   comment.ParentID,
				Author:     comment.Author,
				Body:       comment.Body,
				Score:      comment.Score,
				CreatedUTC: comment.CreatedUTC,
			})
		}
		if err := c.writer.SaveComments(ctx, records); err != nil {
			return stats, fmt.Errorf("saving comments of %s: %w", post.ID, err)
		}
		stats.Records += len(records)
	}

	return stats, nil
}
