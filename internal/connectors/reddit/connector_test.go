package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echolens-labs/echolens-cli/internal/core/domain"
)

type fakeAPI struct {
	posts    []postData
	comments map[string][]commentData
	err      error
}

func (f *fakeAPI) TopPosts(_ context.Context, _ string, _ int) ([]postData, error) {
	return f.posts, f.err
}

func (f *fakeAPI) Comments(_ context.Context, _, postID string) ([]commentData, error) {
	return f.comments[postID], nil
}

type captureWriter struct {
	posts    []domain.RedditPost
	comments []domain.RedditComment
}

func (w *captureWriter) SavePost(_ context.Context, post domain.RedditPost) error {
	w.posts = append(w.posts, post)
	return nil
}

func (w *captureWriter) SaveComments(_ context.Context, comments []domain.RedditComment) error {
	w.comments = append(w.comments, comments...)
	return nil
}

func newTestConnector(api redditAPI, writer *captureWriter) *Connector {
	c := New(Config{Subreddit: "theeconomist", PostLimit: 10}, writer)
	c.newClient = func(context.Context) (redditAPI, error) { return api, nil }
	return c
}

func TestConnector_Scrape(t *testing.T) {
	api := &fakeAPI{
		posts: []postData{
			{ID: "1abc", Subreddit: "theeconomist", Title: "Crashes", Score: 10, Permalink: "/r/theeconomist/1abc"},
		},
		comments: map[string][]commentData{
			"1abc": {
				{ID: "c1", Author: "alice", Body: "Crashes for me too.", Score: 4},
				{ID: "c2", Author: "bob", Body: "Works fine.", Score: 1},
			},
		},
	}
	writer := &captureWriter{}

	stats, err := newTestConnector(api, writer).Scrape(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Containers)
	assert.Equal(t, 2, stats.Records)

	require.Len(t, writer.posts, 1)
	assert.Equal(t, "/r/theeconomist/1abc", writer.posts[0].PostURL)
	require.Len(t, writer.comments, 2)
	assert.Equal(t, "1abc", writer.comments[0].PostID)
}

func TestConnector_Scrape_APIFailure(t *testing.T) {
	api := &fakeAPI{err: errors.New("forbidden")}

	_, err := newTestConnector(api, &captureWriter{}).Scrape(context.Background())
	assert.Error(t, err)
}

func TestConnector_Scrape_RequiresSubreddit(t *testing.T) {
	c := New(Config{}, &captureWriter{})

	_, err := c.Scrape(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFlattenComments(t *testing.T) {
	// A top-level comment with one nested reply; leaves carry "" in
	// the replies field.
	raw := `{
		"data": {"children": [
			{"kind": "t1", "data": {
				"id": "c1", "author": "alice", "body": "top", "score": 2,
				"replies": {
					"data": {"children": [
						{"kind": "t1", "data": {"id": "c2", "author": "bob", "body": "nested", "replies": ""}}
					]}
				}
			}},
			{"kind": "more", "data": {}}
		]}
	}`

	var lst listing
	require.NoError(t, json.Unmarshal([]byte(raw), &lst))

	var out []commentData
	flattenComments(lst, &out)

	require.Len(t, out, 2)
	assert.Equal(t, "c1", out[0].ID)
	assert.Equal(t, "c2", out[1].ID)
}
