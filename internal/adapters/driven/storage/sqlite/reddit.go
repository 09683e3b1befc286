package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/echolens-labs/echolens-cli/internal/core/domain"
	"github.com/echolens-labs/echolens-cli/internal/core/ports/driven"
)

// Ensure Reddit implements the ports it serves.
var (
	_ driven.CitationSource = (*Reddit)(nil)
	_ driven.DatasetReader  = (*Reddit)(nil)
	_ driven.RedditWriter   = (*Reddit)(nil)
)

// Reddit is the Reddit source record store: scraped posts and their
// comment trees. Citations reference comments; resolving one joins back
// to the owning post for the permalink.
//
// Citation key encoding: R_<post_id>:<comment_id>. The native key is
// the comment ID after the last colon - post IDs never contain colons,
// comment IDs scraped from threaded replies may.
type Reddit struct {
	path string
}

// NewReddit creates a Reddit store backed by the database file at path.
func NewReddit(path string) *Reddit {
	return &Reddit{path: path}
}

// Prefix returns the Reddit citation prefix.
func (s *Reddit) Prefix() string { return domain.PrefixReddit }

// Label returns the Reddit display name.
func (s *Reddit) Label() string { return "Reddit" }

// ExtractKey decodes the comment ID from an R_<post>:<comment> citation.
func (s *Reddit) ExtractKey(citationID string) (string, error) {
	rest, ok := strings.CutPrefix(citationID, domain.PrefixReddit+"_")
	if !ok || rest == "" {
		return "", fmt.Errorf("%w: %q", domain.ErrMalformedCitation, citationID)
	}
	if i := strings.LastIndex(rest, ":"); i >= 0 {
		rest = rest[i+1:]
	}
	if rest == "" {
		return "", fmt.Errorf("%w: %q has no comment key", domain.ErrMalformedCitation, citationID)
	}
	return rest, nil
}

// Resolve looks up a comment by ID and builds its permalink from the
// owning post.
func (s *Reddit) Resolve(ctx context.Context, nativeKey string) (*driven.ResolvedRecord, error) {
	db, err := openRead(s.path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var (
		body       string
		createdUTC float64
		postID     string
	)
	row := db.QueryRowContext(ctx, `
		SELECT body, created_utc, post_id
		FROM reddit_comments
		WHERE comment_id = ?
		LIMIT 1
	`, nativeKey)
	if err := row.Scan(&body, &createdUTC, &postID); err != nil {
		return nil, lookupErr(err)
	}

	// The permalink lives on the post row. A comment whose post is
	// missing still resolves, just without a deep link.
	url := domain.SentinelURL
	var postURL string
	err = db.QueryRowContext(ctx,
		"SELECT post_url FROM reddit_posts WHERE post_id = ? LIMIT 1", postID,
	).Scan(&postURL)
	if err == nil && postURL != "" {
		if strings.HasPrefix(postURL, "http") {
			url = postURL
		} else {
			url = "https://www.reddit.com" + postURL
		}
	}

	return &driven.ResolvedRecord{
		Text: body,
		URL:  url,
		Date: epochDate(createdUTC),
	}, nil
}

// Count returns the number of stored comments.
func (s *Reddit) Count(ctx context.Context) (int, error) {
	db, err := openRead(s.path)
	if err != nil {
		return 0, err
	}
	defer db.Close()
	return countRows(db, "reddit_comments")
}

// Curated returns every comment belonging to the limit top-scored
// posts, highest-scored comments first, with full R_<post>:<comment>
// citation IDs.
func (s *Reddit) Curated(ctx context.Context, limit int) ([]domain.CuratedRecord, error) {
	db, err := openRead(s.path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT c.comment_id, c.post_id, c.body
		FROM reddit_comments AS c
		WHERE c.post_id IN (
			SELECT post_id FROM reddit_posts ORDER BY score DESC LIMIT ?
		)
		ORDER BY c.score DESC
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var records []domain.CuratedRecord
	for rows.Next() {
		var commentID, postID, body string
		if err := rows.Scan(&commentID, &postID, &body); err != nil {
			return nil, fmt.Errorf("scanning reddit comment: %w", err)
		}
		records = append(records, domain.CuratedRecord{
			ID:   fmt.Sprintf("%s_%s:%s", domain.PrefixReddit, postID, commentID),
			Text: strings.TrimSpace(body),
		})
	}
	return records, rows.Err()
}

// All returns every stored comment with citation IDs, text truncated to
// maxText runes.
func (s *Reddit) All(ctx context.Context, maxText int) ([]domain.CuratedRecord, error) {
	db, err := openRead(s.path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		"SELECT comment_id, post_id, body FROM reddit_comments")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var records []domain.CuratedRecord
	for rows.Next() {
		var commentID, postID, body string
		if err := rows.Scan(&commentID, &postID, &body); err != nil {
			return nil, fmt.Errorf("scanning reddit comment: %w", err)
		}
		records = append(records, domain.CuratedRecord{
			ID:   fmt.Sprintf("%s_%s:%s", domain.PrefixReddit, postID, commentID),
			Text: truncate(body, maxText),
		})
	}
	return records, rows.Err()
}

// SavePost inserts a post, ignoring duplicates.
func (s *Reddit) SavePost(ctx context.Context, post domain.RedditPost) error {
	db, err := openWrite(s.path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := s.ensureSchema(ctx, db); err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT OR IGNORE INTO reddit_posts
			(post_id, subreddit, title, score, upvote_ratio, num_comments, created_utc, post_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, post.ID, post.Subreddit, post.Title, post.Score, post.UpvoteRatio,
		post.NumComments, post.CreatedUTC, post.PostURL)
	if err != nil {
		return fmt.Errorf("saving reddit post: %w", err)
	}
	return nil
}

// SaveComments inserts comments in one transaction, ignoring duplicates.
func (s *Reddit) SaveComments(ctx context.Context, comments []domain.RedditComment) error {
	if len(comments) == 0 {
		return nil
	}

	db, err := openWrite(s.path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := s.ensureSchema(ctx, db); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, c := range comments {
		_, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO reddit_comments
				(comment_id, post_id, parent_id, author, body, score, created_utc)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, c.ID, c.PostID, c.ParentID, c.Author, c.Body, c.Score, c.CreatedUTC)
		if err != nil {
			return fmt.Errorf("saving reddit comment %s: %w", c.ID, err)
		}
	}
	return tx.Commit()
}

func (s *Reddit) ensureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS reddit_posts (
			post_id TEXT PRIMARY KEY,
			subreddit TEXT NOT NULL,
			title TEXT NOT NULL,
			score INTEGER,
			upvote_ratio REAL,
			num_comments INTEGER,
			created_utc REAL,
			post_url TEXT
		);
		CREATE TABLE IF NOT EXISTS reddit_comments (
			comment_id TEXT PRIMARY KEY,
			post_id TEXT,
			parent_id TEXT,
			author TEXT,
			body TEXT,
			score INTEGER,
			created_utc REAL,
			FOREIGN KEY (post_id) REFERENCES reddit_posts (post_id)
		);
	`)
	if err != nil {
		return fmt.Errorf("creating reddit schema: %w", err)
	}
	return nil
}
