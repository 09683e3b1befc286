package driven

import "context"

// FeedbackConnector fetches recent feedback from one external platform
// and persists it into that platform's source record store. Connectors
// are the scrape side of the pipeline; the report core never calls them.
type FeedbackConnector interface {
	// Platform returns the display name of the platform.
	Platform() string

	// Scrape fetches recent feedback and persists it, returning counts
	// of stored records. Scrapes are best-effort: a connector returns
	// an error only when it stored nothing at all.
	Scrape(ctx context.Context) (ScrapeStats, error)
}

// ScrapeStats summarizes one connector run.
type ScrapeStats struct {
	// Containers is the number of parent records stored (posts,
	// videos). Zero for flat platforms.
	Containers int

	// Records is the number of feedback records stored (comments,
	// reviews).
	Records int
}
