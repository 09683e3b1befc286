package driven

import "context"

// CitationSource resolves native keys against one platform's source
// record store. Each of the four platforms provides its own
// implementation carrying its key-encoding rule, lookup SQL, URL
// construction, and date normalization.
//
// Implementations open their store per call and release it before
// returning, on every exit path. They are read-only.
type CitationSource interface {
	// Prefix returns the citation ID prefix this source owns ("R",
	// "YT", "AS", "GP").
	Prefix() string

	// Label returns the display name of the platform ("Reddit", ...).
	Label() string

	// ExtractKey decodes the platform's native key from a full citation
	// ID whose prefix already matched. Returns
	// domain.ErrMalformedCitation when the remainder cannot be decoded.
	ExtractKey(citationID string) (string, error)

	// Resolve looks up a source record by native key and normalizes it
	// into a ResolvedRecord. Returns domain.ErrNotFound on a lookup
	// miss and domain.ErrStoreUnavailable when the store file is
	// missing or unopenable.
	Resolve(ctx context.Context, nativeKey string) (*ResolvedRecord, error)
}

// ResolvedRecord is one source record normalized into the common shape
// all platforms share: display text, a canonical deep link, and a
// YYYY-MM-DD display date ("" when the stored date could not be parsed).
type ResolvedRecord struct {
	Text string
	URL  string
	Date string
}
