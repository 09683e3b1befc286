package driven

import (
	"context"

	"github.com/echolens-labs/echolens-cli/internal/core/domain"
)

// The writer ports below are the scrape-side contract with the four
// source record stores. Schemas differ per platform, so each store
// exposes typed methods instead of a generic row shape. Scraped records
// are immutable: writers either insert-if-absent or replace the table
// wholesale, never update.

// RedditWriter persists scraped Reddit posts and comments.
type RedditWriter interface {
	// SavePost inserts a post, ignoring duplicates.
	SavePost(ctx context.Context, post domain.RedditPost) error

	// SaveComments inserts comments, ignoring duplicates.
	SaveComments(ctx context.Context, comments []domain.RedditComment) error
}

// YouTubeWriter persists scraped YouTube videos and comments.
type YouTubeWriter interface {
	// SaveVideo inserts a video, ignoring duplicates.
	SaveVideo(ctx context.Context, video domain.YouTubeVideo) error

	// SaveComments inserts comments, ignoring duplicates.
	SaveComments(ctx context.Context, comments []domain.YouTubeComment) error
}

// AppStoreWriter persists scraped App Store reviews.
type AppStoreWriter interface {
	// Replace drops and recreates the reviews table with the given
	// rows. App Store scrapes rotate the table wholesale.
	Replace(ctx context.Context, reviews []domain.AppStoreReview) error
}

// GooglePlayWriter persists scraped Google Play reviews.
type GooglePlayWriter interface {
	// SaveReviews inserts reviews, ignoring duplicates.
	SaveReviews(ctx context.Context, reviews []domain.GooglePlayReview) error
}
