package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/echolens-labs/echolens-cli/internal/core/domain"
)

// displayDate is the wire format every platform's date normalizes to.
const displayDate = "2006-01-02"

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// openRead opens a platform store read-only for a single resolution or
// export call. The caller must Close it. A missing or unopenable file
// reports domain.ErrStoreUnavailable.
func openRead(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrStoreUnavailable, path)
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", domain.ErrStoreUnavailable, path, err)
	}
	return db, nil
}

// openWrite opens a platform store for scraping, creating the parent
// directory and the file as needed. WAL mode matches the read side's
// busy timeout so a scrape and a report run can coexist.
func openWrite(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return db, nil
}

// lookupErr maps driver errors from a single-row lookup onto the domain
// error taxonomy: no row is a lookup miss, anything else (missing table,
// corrupt file) means the store is effectively unavailable.
func lookupErr(err error) error {
	if err == sql.ErrNoRows {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

// normalizeDate converts a platform's stored date representation to
// YYYY-MM-DD. Numeric-looking values are fractional seconds since epoch;
// otherwise the date portion before any time component is taken, with a
// lenient parse as the last resort. Returns "" when nothing parses.
func normalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if secs, err := strconv.ParseFloat(raw, 64); err == nil {
		return time.Unix(int64(secs), 0).UTC().Format(displayDate)
	}

	datePart := raw
	if i := strings.IndexAny(datePart, " T"); i > 0 {
		datePart = datePart[:i]
	}
	if isoDatePattern.MatchString(datePart) {
		return datePart
	}

	if t, err := dateparse.ParseAny(raw); err == nil {
		return t.UTC().Format(displayDate)
	}
	return ""
}

// epochDate formats fractional seconds since epoch as YYYY-MM-DD.
func epochDate(secs float64) string {
	return time.Unix(int64(secs), 0).UTC().Format(displayDate)
}

// truncate shortens s to at most max runes. Zero means no truncation.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// countRows is the shared implementation of DatasetReader.Count.
func countRows(db *sql.DB, table string) (int, error) {
	var n int
	// Table names come from our own schema constants or validated
	// config, never from citation input.
	row := db.QueryRow("SELECT COUNT(*) FROM " + table)
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return n, nil
}

// validTableName guards configurable table names before they are
// spliced into statements. Citation keys themselves always go through
// parameterized queries.
var validTableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// tableOrDefault returns name when it is a safe SQL identifier,
// otherwise fallback.
func tableOrDefault(name, fallback string) string {
	if validTableName.MatchString(name) {
		return name
	}
	return fallback
}
