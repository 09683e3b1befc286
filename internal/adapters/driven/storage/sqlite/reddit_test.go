package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echolens-labs/echolens-cli/internal/core/domain"
)

func seedReddit(t *testing.T) *Reddit {
	t.Helper()
	store := NewReddit(filepath.Join(t.TempDir(), "reddit_data.db"))
	ctx := context.Background()

	require.NoError(t, store.SavePost(ctx, domain.RedditPost{
		ID:         "1abc",
		Subreddit:  "theeconomist",
		Title:      "App keeps crashing",
		Score:      120,
		CreatedUTC: 1700000000,
		PostURL:    "/r/theeconomist/comments/1abc/app_keeps_crashing/",
	}))
	require.NoError(t, store.SavePost(ctx, domain.RedditPost{
		ID:         "2def",
		Subreddit:  "theeconomist",
		Title:      "Audio edition",
		Score:      5,
		CreatedUTC: 1700000000,
		PostURL:    "https://www.reddit.com/r/theeconomist/comments/2def/audio_edition/",
	}))
	require.NoError(t, store.SaveComments(ctx, []domain.RedditComment{
		{ID: "c1", PostID: "1abc", Author: "alice", Body: "Crashes on launch every time.", Score: 40, CreatedUTC: 1700086400},
		{ID: "c2", PostID: "1abc", Author: "bob", Body: "Same here on Android.", Score: 7, CreatedUTC: 1700086500},
		{ID: "c3", PostID: "2def", Author: "carol", Body: "Love the audio edition.", Score: 90, CreatedUTC: 1700086600},
		{ID: "c4", PostID: "gone", Author: "dave", Body: "Orphaned comment.", Score: 1, CreatedUTC: 1700086700},
	}))
	return store
}

func TestReddit_ExtractKey(t *testing.T) {
	store := NewReddit("unused.db")

	tests := []struct {
		name       string
		citationID string
		want       string
		wantErr    bool
	}{
		{"post and comment", "R_1abc:c1", "c1", false},
		{"nested colon keeps last segment", "R_1abc:t1:c9", "c9", false},
		{"no colon", "R_c1", "c1", false},
		{"wrong prefix", "YT_c1", "", true},
		{"empty key", "R_", "", true},
		{"trailing colon", "R_1abc:", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.ExtractKey(tt.citationID)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrMalformedCitation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReddit_Resolve(t *testing.T) {
	store := seedReddit(t)
	ctx := context.Background()

	rec, err := store.Resolve(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Crashes on launch every time.", rec.Text)
	assert.Equal(t, "https://www.reddit.com/r/theeconomist/comments/1abc/app_keeps_crashing/", rec.URL)
	assert.Equal(t, "2023-11-15", rec.Date)
}

func TestReddit_Resolve_AbsolutePostURL(t *testing.T) {
	store := seedReddit(t)

	rec, err := store.Resolve(context.Background(), "c3")
	require.NoError(t, err)
	assert.Equal(t, "https://www.reddit.com/r/theeconomist/comments/2def/audio_edition/", rec.URL)
}

func TestReddit_Resolve_MissingPost(t *testing.T) {
	store := seedReddit(t)

	rec, err := store.Resolve(context.Background(), "c4")
	require.NoError(t, err)
	assert.Equal(t, "Orphaned comment.", rec.Text)
	assert.Equal(t, domain.SentinelURL, rec.URL)
}

func TestReddit_Resolve_NotFound(t *testing.T) {
	store := seedReddit(t)

	_, err := store.Resolve(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReddit_Resolve_MissingDatabase(t *testing.T) {
	store := NewReddit(filepath.Join(t.TempDir(), "missing.db"))

	_, err := store.Resolve(context.Background(), "c1")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestReddit_Count(t *testing.T) {
	store := seedReddit(t)

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestReddit_Curated_TopPostsOnly(t *testing.T) {
	store := seedReddit(t)

	// Only the single top-scored post (1abc) qualifies; its comments
	// come back highest-scored first with full citation IDs.
	records, err := store.Curated(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "R_1abc:c1", records[0].ID)
	assert.Equal(t, "Crashes on launch every time.", records[0].Text)
	assert.Equal(t, "R_1abc:c2", records[1].ID)
}

func TestReddit_All_TruncatesText(t *testing.T) {
	store := seedReddit(t)

	records, err := store.All(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 4)
	for _, r := range records {
		assert.LessOrEqual(t, len([]rune(r.Text)), 10)
	}
}

func TestReddit_SavePost_IgnoresDuplicates(t *testing.T) {
	store := seedReddit(t)
	ctx := context.Background()

	require.NoError(t, store.SavePost(ctx, domain.RedditPost{
		ID: "1abc", Subreddit: "theeconomist", Title: "App keeps crashing",
	}))

	rec, err := store.Resolve(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "https://www.reddit.com/r/theeconomist/comments/1abc/app_keeps_crashing/", rec.URL)
}
