package youtube

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/echolens-labs/echolens-cli/internal/core/domain"
)

// Client wraps the YouTube Data API v3 surface the connector uses.
type Client struct {
	svc *yt.Service
}

// NewClient creates an API-key authenticated client.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("youtube: API key is required")
	}
	svc, err := yt.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating youtube service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// UploadsPlaylist returns the channel's uploads playlist ID.
func (c *Client) UploadsPlaylist(ctx context.Context, channelID string) (string, error) {
	resp, err := c.svc.Channels.List([]string{"contentDetails"}).
		Id(channelID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("fetching channel %s: %w", channelID, err)
	}
	if len(resp.Items) == 0 {
		return "", fmt.Errorf("channel %s not found", channelID)
	}
	return resp.Items[0].ContentDetails.RelatedPlaylists.Uploads, nil
}

// PlaylistVideoIDs returns up to max video IDs from a playlist, newest
// first.
func (c *Client) PlaylistVideoIDs(ctx context.Context, playlistID string, max int64) ([]string, error) {
	resp, err := c.svc.PlaylistItems.List([]string{"contentDetails"}).
		PlaylistId(playlistID).MaxResults(max).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetching playlist %s: %w", playlistID, err)
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		ids = append(ids, item.ContentDetails.VideoId)
	}
	return ids, nil
}

// Video fetches one video's snippet and statistics.
func (c *Client) Video(ctx context.Context, videoID string) (*domain.YouTubeVideo, error) {
	resp, err := c.svc.Videos.List([]string{"snippet", "statistics"}).
		Id(videoID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetching video %s: %w", videoID, err)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("video %s not found", videoID)
	}

	item := resp.Items[0]
	video := &domain.YouTubeVideo{
		ID:          item.Id,
		Title:       item.Snippet.Title,
		PublishedAt: item.Snippet.PublishedAt,
	}
	if item.Statistics != nil {
		video.ViewCount = int64(item.Statistics.ViewCount)
		video.CommentCount = int64(item.Statistics.CommentCount)
	}
	return video, nil
}

// Comments fetches up to max top-level comments of a video, ordered by
// relevance.
func (c *Client) Comments(ctx context.Context, videoID string, max int64) ([]domain.YouTubeComment, error) {
	resp, err := c.svc.CommentThreads.List([]string{"snippet"}).
		VideoId(videoID).TextFormat("plainText").Order("relevance").
		MaxResults(max).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetching comments of %s: %w", videoID, err)
	}

	comments := make([]domain.YouTubeComment, 0, len(resp.Items))
	for _, thread := range resp.Items {
		top := thread.Snippet.TopLevelComment
		if top == nil || top.Snippet == nil {
			continue
		}
		comments = append(comments, domain.YouTubeComment{
			ID:          top.Id,
			VideoID:     videoID,
			Author:      top.Snippet.AuthorDisplayName,
			Text:        top.Snippet.TextDisplay,
			LikeCount:   top.Snippet.LikeCount,
			PublishedAt: top.Snippet.PublishedAt,
		})
	}
	return comments, nil
}
