package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/echolens-labs/echolens-cli/internal/core/domain"
	"github.com/echolens-labs/echolens-cli/internal/core/ports/driven"
)

// Ensure GooglePlay implements the ports it serves.
var (
	_ driven.CitationSource   = (*GooglePlay)(nil)
	_ driven.DatasetReader    = (*GooglePlay)(nil)
	_ driven.GooglePlayWriter = (*GooglePlay)(nil)
)

// defaultGooglePlayTable is used when the configured table name is
// empty or not a safe identifier.
const defaultGooglePlayTable = "google_play_reviews"

// GooglePlay is the Google Play source record store. Citation key
// encoding: GP_<review_id>, native key is everything after the first
// underscore (Play review IDs can contain underscores and colons).
type GooglePlay struct {
	path  string
	table string
}

// NewGooglePlay creates a Google Play store backed by the database file
// at path, using table for review rows ("" selects the default).
func NewGooglePlay(path, table string) *GooglePlay {
	return &GooglePlay{
		path:  path,
		table: tableOrDefault(table, defaultGooglePlayTable),
	}
}

// Prefix returns the Google Play citation prefix.
func (s *GooglePlay) Prefix() string { return domain.PrefixGooglePlay }

// Label returns the Google Play display name.
func (s *GooglePlay) Label() string { return "Google Play" }

// ExtractKey decodes the review ID from a GP_<review_id> citation.
func (s *GooglePlay) ExtractKey(citationID string) (string, error) {
	rest, ok := strings.CutPrefix(citationID, domain.PrefixGooglePlay+"_")
	if !ok || rest == "" {
		return "", fmt.Errorf("%w: %q", domain.ErrMalformedCitation, citationID)
	}
	return rest, nil
}

// Resolve looks up a review by ID.
func (s *GooglePlay) Resolve(ctx context.Context, nativeKey string) (*driven.ResolvedRecord, error) {
	db, err := openRead(s.path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var (
		text      string
		date      string
		reviewURL sql.NullString
	)
	row := db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT review_text, review_date, url
		FROM %s
		WHERE review_id = ?
		LIMIT 1
	`, s.table), nativeKey)
	if err := row.Scan(&text, &date, &reviewURL); err != nil {
		return nil, lookupErr(err)
	}

	link := domain.SentinelURL
	if reviewURL.Valid && reviewURL.String != "" {
		link = reviewURL.String
	}

	return &driven.ResolvedRecord{
		Text: text,
		URL:  link,
		Date: normalizeDate(date),
	}, nil
}

// Count returns the number of stored reviews.
func (s *GooglePlay) Count(ctx context.Context) (int, error) {
	db, err := openRead(s.path)
	if err != nil {
		return 0, err
	}
	defer db.Close()
	return countRows(db, s.table)
}

// Curated returns the limit most recent reviews with GP_<review_id>
// citation IDs.
func (s *GooglePlay) Curated(ctx context.Context, limit int) ([]domain.CuratedRecord, error) {
	db, err := openRead(s.path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, fmt.Sprintf(`
		SELECT review_id, review_text
		FROM %s
		ORDER BY review_date DESC
		LIMIT ?
	`, s.table), limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	return scanCurated(rows, domain.PrefixGooglePlay, 0)
}

// All returns every stored review with citation IDs, text truncated to
// maxText runes.
func (s *GooglePlay) All(ctx context.Context, maxText int) ([]domain.CuratedRecord, error) {
	db, err := openRead(s.path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		fmt.Sprintf("SELECT review_id, review_text FROM %s", s.table))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	return scanCurated(rows, domain.PrefixGooglePlay, maxText)
}

// SaveReviews inserts reviews in one transaction, ignoring duplicates.
func (s *GooglePlay) SaveReviews(ctx context.Context, reviews []domain.GooglePlayReview) error {
	if len(reviews) == 0 {
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

	for _, r := range reviews {
		_, err := tx.ExecContext(ctx, fmt.Sprintf(`
			INSERT OR IGNORE INTO %s
				(review_id, user_name, review_date, review_text, rating, device, url)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, s.table), r.ID, r.UserName, r.Date, r.Text, r.Rating, r.Device, r.URL)
		if err != nil {
			return fmt.Errorf("saving google play review %s: %w", r.ID, err)
		}
	}
	return tx.Commit()
}

func (s *GooglePlay) ensureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			review_id TEXT PRIMARY KEY,
			user_name TEXT,
			review_date TEXT,
			review_text TEXT,
			rating INTEGER,
			device TEXT,
			url TEXT
		)
	`, s.table))
	if err != nil {
		return fmt.Errorf("creating google play schema: %w", err)
	}
	return nil
}
