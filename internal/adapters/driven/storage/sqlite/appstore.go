package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/echolens-labs/echolens-cli/internal/core/domain"
	"github.com/echolens-labs/echolens-cli/internal/core/ports/driven"
)

// Ensure AppStore implements the ports it serves.
var (
	_ driven.CitationSource = (*AppStore)(nil)
	_ driven.DatasetReader  = (*AppStore)(nil)
	_ driven.AppStoreWriter = (*AppStore)(nil)
)

// defaultAppStoreTable is used when the configured table name is empty
// or not a safe identifier.
const defaultAppStoreTable = "app_store_reviews"

// AppStore is the App Store source record store. Review IDs are numeric
// on this platform: citation keys are AS_<review_id> where the native
// key is the last underscore-separated segment and must parse as an
// integer. Scrapes replace the table wholesale, so the table name stays
// configurable for deployments that carry an app-specific name.
type AppStore struct {
	path  string
	table string
}

// NewAppStore creates an App Store store backed by the database file at
// path, using table for review rows ("" selects the default).
func NewAppStore(path, table string) *AppStore {
	return &AppStore{
		path:  path,
		table: tableOrDefault(table, defaultAppStoreTable),
	}
}

// Prefix returns the App Store citation prefix.
func (s *AppStore) Prefix() string { return domain.PrefixAppStore }

// Label returns the App Store display name.
func (s *AppStore) Label() string { return "App Store" }

// ExtractKey decodes the numeric review ID from an AS_<id> citation.
func (s *AppStore) ExtractKey(citationID string) (string, error) {
	if !strings.HasPrefix(citationID, domain.PrefixAppStore+"_") {
		return "", fmt.Errorf("%w: %q", domain.ErrMalformedCitation, citationID)
	}
	segments := strings.Split(citationID, "_")
	key := segments[len(segments)-1]
	if _, err := strconv.ParseInt(key, 10, 64); err != nil {
		return "", fmt.Errorf("%w: %q review ID is not numeric", domain.ErrMalformedCitation, citationID)
	}
	return key, nil
}

// Resolve looks up a review by its numeric ID.
func (s *AppStore) Resolve(ctx context.Context, nativeKey string) (*driven.ResolvedRecord, error) {
	id, err := strconv.ParseInt(nativeKey, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrMalformedCitation, nativeKey)
	}

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
		SELECT content, review_date, review_url
		FROM %s
		WHERE review_id = ?
		LIMIT 1
	`, s.table), id)
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
func (s *AppStore) Count(ctx context.Context) (int, error) {
	db, err := openRead(s.path)
	if err != nil {
		return 0, err
	}
	defer db.Close()
	return countRows(db, s.table)
}

// Curated returns the limit most recent reviews, title and body
// combined, with AS_<review_id> citation IDs.
func (s *AppStore) Curated(ctx context.Context, limit int) ([]domain.CuratedRecord, error) {
	db, err := openRead(s.path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, fmt.Sprintf(`
		SELECT review_id, title, content
		FROM %s
		ORDER BY review_date DESC
		LIMIT ?
	`, s.table), limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var records []domain.CuratedRecord
	for rows.Next() {
		var (
			id    int64
			title string
			text  string
		)
		if err := rows.Scan(&id, &title, &text); err != nil {
			return nil, fmt.Errorf("scanning app store review: %w", err)
		}
		combined := strings.TrimSpace(title)
		if combined != "" && strings.TrimSpace(text) != "" {
			combined += "\n\n"
		}
		combined += strings.TrimSpace(text)
		records = append(records, domain.CuratedRecord{
			ID:   fmt.Sprintf("%s_%d", domain.PrefixAppStore, id),
			Text: combined,
		})
	}
	return records, rows.Err()
}

// All returns every stored review with citation IDs, text truncated to
// maxText runes.
func (s *AppStore) All(ctx context.Context, maxText int) ([]domain.CuratedRecord, error) {
	db, err := openRead(s.path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		fmt.Sprintf("SELECT review_id, content FROM %s", s.table))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var records []domain.CuratedRecord
	for rows.Next() {
		var (
			id   int64
			text string
		)
		if err := rows.Scan(&id, &text); err != nil {
			return nil, fmt.Errorf("scanning app store review: %w", err)
		}
		records = append(records, domain.CuratedRecord{
			ID:   fmt.Sprintf("%s_%d", domain.PrefixAppStore, id),
			Text: truncate(text, maxText),
		})
	}
	return records, rows.Err()
}

// Replace drops and recreates the reviews table with the given rows.
// App Store scrapes rotate the table wholesale rather than merging.
func (s *AppStore) Replace(ctx context.Context, reviews []domain.AppStoreReview) error {
	db, err := openWrite(s.path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+s.table); err != nil {
		return fmt.Errorf("dropping %s: %w", s.table, err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE %s (
			review_id INTEGER PRIMARY KEY,
			user_name TEXT,
			rating INTEGER,
			title TEXT,
			content TEXT,
			review_url TEXT,
			review_date TEXT,
			version TEXT
		)
	`, s.table)); err != nil {
		return fmt.Errorf("creating %s: %w", s.table, err)
	}

	for _, r := range reviews {
		_, err := tx.ExecContext(ctx, fmt.Sprintf(`
			INSERT OR IGNORE INTO %s
				(review_id, user_name, rating, title, content, review_url, review_date, version)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, s.table), r.ID, r.UserName, r.Rating, r.Title, r.Text, r.URL,
			r.Date.UTC().Format("2006-01-02 15:04:05"), r.Version)
		if err != nil {
			return fmt.Errorf("saving app store review %d: %w", r.ID, err)
		}
	}
	return tx.Commit()
}
