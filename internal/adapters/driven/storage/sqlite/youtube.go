package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/echolens-labs/echolens-cli/internal/core/domain"
	"github.com/echolens-labs/echolens-cli/internal/core/ports/driven"
)

// Ensure YouTube implements the ports it serves.
var (
	_ driven.CitationSource = (*YouTube)(nil)
	_ driven.DatasetReader  = (*YouTube)(nil)
	_ driven.YouTubeWriter  = (*YouTube)(nil)
)

// YouTube is the YouTube source record store: scraped videos and their
// top-level comments. Citation key encoding: YT_<comment_id>, where the
// native key is everything after the first underscore - YouTube comment
// IDs themselves contain underscores and dots.
type YouTube struct {
	path string
}

// NewYouTube creates a YouTube store backed by the database file at path.
func NewYouTube(path string) *YouTube {
	return &YouTube{path: path}
}

// Prefix returns the YouTube citation prefix.
func (s *YouTube) Prefix() string { return domain.PrefixYouTube }

// Label returns the YouTube display name.
func (s *YouTube) Label() string { return "Youtube" }

// ExtractKey decodes the comment ID from a YT_<comment_id> citation.
func (s *YouTube) ExtractKey(citationID string) (string, error) {
	rest, ok := strings.CutPrefix(citationID, domain.PrefixYouTube+"_")
	if !ok || rest == "" {
		return "", fmt.Errorf("%w: %q", domain.ErrMalformedCitation, citationID)
	}
	return rest, nil
}

// Resolve looks up a comment by ID and deep-links straight to it on the
// owning video's watch page.
func (s *YouTube) Resolve(ctx context.Context, nativeKey string) (*driven.ResolvedRecord, error) {
	db, err := openRead(s.path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var (
		text        string
		publishedAt string
		videoID     string
	)
	row := db.QueryRowContext(ctx, `
		SELECT text_display, published_at, video_id
		FROM youtube_comments
		WHERE comment_id = ?
		LIMIT 1
	`, nativeKey)
	if err := row.Scan(&text, &publishedAt, &videoID); err != nil {
		return nil, lookupErr(err)
	}

	link := domain.SentinelURL
	if videoID != "" {
		link = fmt.Sprintf("https://www.youtube.com/watch?v=%s&lc=%s",
			url.QueryEscape(videoID), url.QueryEscape(nativeKey))
	}

	return &driven.ResolvedRecord{
		Text: text,
		URL:  link,
		Date: normalizeDate(publishedAt),
	}, nil
}

// Count returns the number of stored comments.
func (s *YouTube) Count(ctx context.Context) (int, error) {
	db, err := openRead(s.path)
	if err != nil {
		return 0, err
	}
	defer db.Close()
	return countRows(db, "youtube_comments")
}

// Curated returns the limit most-liked comments with YT_<comment_id>
// citation IDs.
func (s *YouTube) Curated(ctx context.Context, limit int) ([]domain.CuratedRecord, error) {
	db, err := openRead(s.path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT comment_id, text_display
		FROM youtube_comments
		ORDER BY like_count DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	return scanCurated(rows, domain.PrefixYouTube, 0)
}

// All returns every stored comment with citation IDs, text truncated to
// maxText runes.
func (s *YouTube) All(ctx context.Context, maxText int) ([]domain.CuratedRecord, error) {
	db, err := openRead(s.path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		"SELECT comment_id, text_display FROM youtube_comments")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	return scanCurated(rows, domain.PrefixYouTube, maxText)
}

// SaveVideo inserts a video, ignoring duplicates.
func (s *YouTube) SaveVideo(ctx context.Context, video domain.YouTubeVideo) error {
	db, err := openWrite(s.path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := s.ensureSchema(ctx, db); err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT OR IGNORE INTO youtube_videos
			(video_id, title, published_at, view_count, comment_count)
		VALUES (?, ?, ?, ?, ?)
	`, video.ID, video.Title, video.PublishedAt, video.ViewCount, video.CommentCount)
	if err != nil {
		return fmt.Errorf("saving youtube video: %w", err)
	}
	return nil
}

// SaveComments inserts comments in one transaction, ignoring duplicates.
func (s *YouTube) SaveComments(ctx context.Context, comments []domain.YouTubeComment) error {
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
			INSERT OR IGNORE INTO youtube_comments
				(comment_id, video_id, author_display_name, text_display, like_count, published_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, c.ID, c.VideoID, c.Author, c.Text, c.LikeCount, c.PublishedAt)
		if err != nil {
			return fmt.Errorf("saving youtube comment %s: %w", c.ID, err)
		}
	}
	return tx.Commit()
}

func (s *YouTube) ensureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS youtube_videos (
			video_id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			published_at TEXT,
			view_count INTEGER,
			comment_count INTEGER
		);
		CREATE TABLE IF NOT EXISTS youtube_comments (
			comment_id TEXT PRIMARY KEY,
			video_id TEXT,
			author_display_name TEXT,
			text_display TEXT,
			like_count INTEGER,
			published_at TEXT,
			FOREIGN KEY (video_id) REFERENCES youtube_videos (video_id)
		);
	`)
	if err != nil {
		return fmt.Errorf("creating youtube schema: %w", err)
	}
	return nil
}

// scanCurated drains an (id, text) result set into curated records with
// the given platform prefix.
func scanCurated(rows *sql.Rows, prefix string, maxText int) ([]domain.CuratedRecord, error) {
	var records []domain.CuratedRecord
	for rows.Next() {
		var id, text string
		if err := rows.Scan(&id, &text); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		if maxText == 0 {
			text = strings.TrimSpace(text)
		}
		records = append(records, domain.CuratedRecord{
			ID:   prefix + "_" + id,
			Text: truncate(text, maxText),
		})
	}
	return records, rows.Err()
}
