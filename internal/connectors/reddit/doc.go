// Package reddit scrapes top posts and their comment trees from a
// subreddit into the Reddit source record store.
//
// Authentication is application-only OAuth2 (client credentials
// grant); requests are paced against Reddit's per-minute quota.
package reddit
