package domain

import "time"

// The per-platform record types below mirror the scraped table schemas.
// Records are immutable once scraped; scrape runs replace rather than
// update them.

// RedditPost is a row of the reddit_posts table. Posts are containers
// for comments and carry the permalink used to build citation URLs.
type RedditPost struct {
	ID          string
	Subreddit   string
	Title       string
	Score       int
	UpvoteRatio float64
	NumComments int
	CreatedUTC  float64
	PostURL     string
}

// RedditComment is a row of the reddit_comments table.
type RedditComment struct {
	ID         string
	PostID     string
	ParentID   string
	Author     string
	Body       string
	Score      int
	CreatedUTC float64
}

// YouTubeVideo is a row of the youtube_videos table.
type YouTubeVideo struct {
	ID           string
	Title        string
	PublishedAt  string
	ViewCount    int64
	CommentCount int64
}

// YouTubeComment is a row of the youtube_comments table.
type YouTubeComment struct {
	ID          string
	VideoID     string
	Author      string
	Text        string
	LikeCount   int64
	PublishedAt string
}

// AppStoreReview is a row of the App Store reviews table. Review IDs are
// numeric on this platform, which is why its citation keys parse as
// integers.
type AppStoreReview struct {
	ID       int64
	UserName string
	Rating   int
	Title    string
	Text     string
	URL      string
	Date     time.Time
	Version  string
}

// GooglePlayReview is a row of the Google Play reviews table.
type GooglePlayReview struct {
	ID       string
	UserName string
	Date     string
	Text     string
	Rating   int
	Device   string
	URL      string
}

// CuratedRecord is the minimal {id, text} shape exported for LLM
// consumption. ID carries the platform prefix so the LLM can cite it
// back verbatim.
type CuratedRecord struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}
