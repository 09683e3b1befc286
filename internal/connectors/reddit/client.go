package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

// API endpoints. Authenticated traffic goes to oauth.reddit.com; only
// the token exchange hits www.reddit.com.
const (
	tokenURL = "https://www.reddit.com/api/v1/access_token"
	apiBase  = "https://oauth.reddit.com"
)

// Client is a minimal read-only Reddit API client.
type Client struct {
	http      *http.Client
	base      string
	userAgent string
	limiter   *rate.Limiter
}

// NewClient creates an app-only authenticated client paced at
// requestsPerMinute.
func NewClient(ctx context.Context, clientID, clientSecret, userAgent string, requestsPerMinute int) (*Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("reddit: client ID and secret are required")
	}
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}

	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}

	return &Client{
		http:      conf.Client(ctx),
		base:      apiBase,
		userAgent: userAgent,
		limiter:   rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1),
	}, nil
}

// listing is Reddit's generic envelope.
type listing struct {
	Data struct {
		Children []child `json:"children"`
		After    string  `json:"after"`
	} `json:"data"`
}

// child is one item of a listing; Kind distinguishes posts ("t3") from
// comments ("t1").
type child struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// postData is the post fields the store keeps.
type postData struct {
	ID          string  `json:"id"`
	Subreddit   string  `json:"subreddit"`
	Title       string  `json:"title"`
	Score       int     `json:"score"`
	UpvoteRatio float64 `json:"upvote_ratio"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
	Permalink   string  `json:"permalink"`
}

// commentData is the comment fields the store keeps. Replies is left
// raw: Reddit sends a nested listing or the empty string.
type commentData struct {
	ID         string          `json:"id"`
	ParentID   string          `json:"parent_id"`
	Author     string          `json:"author"`
	Body       string          `json:"body"`
	Score      int             `json:"score"`
	CreatedUTC float64         `json:"created_utc"`
	Replies    json.RawMessage `json:"replies"`
}

// TopPosts fetches the subreddit's top posts of the past month.
func (c *Client) TopPosts(ctx context.Context, subreddit string, limit int) ([]postData, error) {
	params := url.Values{
		"t":     {"month"},
		"limit": {strconv.Itoa(limit)},
	}

	var lst listing
	path := fmt.Sprintf("/r/%s/top?%s", url.PathEscape(subreddit), params.Encode())
	if err := c.get(ctx, path, &lst); err != nil {
		return nil, err
	}

	posts := make([]postData, 0, len(lst.Data.Children))
	for _, ch := range lst.Data.Children {
		if ch.Kind != "t3" {
			continue
		}
		var post postData
		if err := json.Unmarshal(ch.Data, &post); err != nil {
			return nil, fmt.Errorf("decoding post: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// Comments fetches the full comment tree of a post, flattened.
func (c *Client) Comments(ctx context.Context, subreddit, postID string) ([]commentData, error) {
	// The endpoint returns [post listing, comment listing].
	var pair []listing
	path := fmt.Sprintf("/r/%s/comments/%s?depth=100&limit=500",
		url.PathEscape(subreddit), url.PathEscape(postID))
	if err := c.get(ctx, path, &pair); err != nil {
		return nil, err
	}
	if len(pair) < 2 {
		return nil, nil
	}

	var comments []commentData
	flattenComments(pair[1], &comments)
	return comments, nil
}

// flattenComments walks the reply tree depth-first.
func flattenComments(lst listing, out *[]commentData) {
	for _, ch := range lst.Data.Children {
		if ch.Kind != "t1" {
			continue
		}
		var comment commentData
		if err := json.Unmarshal(ch.Data, &comment); err != nil {
			continue
		}

		replies := comment.Replies
		comment.Replies = nil
		*out = append(*out, comment)

		// Replies is "" when the comment is a leaf.
		if len(replies) > 2 {
			var nested listing
			if err := json.Unmarshal(replies, &nested); err == nil {
				flattenComments(nested, out)
			}
		}
	}
}

func (c *Client) get(ctx context.Context, path string, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("reddit API error (status %d) for %s", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
