package driven

import (
	"context"

	"github.com/echolens-labs/echolens-cli/internal/core/domain"
)

// DatasetReader exposes one platform's store for curation, counting,
// and semantic search. Records come back with prefixed citation IDs so
// they can round-trip through LLM output.
type DatasetReader interface {
	// Label returns the display name of the platform.
	Label() string

	// Count returns the number of feedback records in the store.
	// Returns domain.ErrStoreUnavailable when the store is absent.
	Count(ctx context.Context) (int, error)

	// Curated returns the bounded, highest-signal subset of records for
	// prompt submission (the selection rule is platform-specific:
	// top-scored, most-liked, or most recent).
	Curated(ctx context.Context, limit int) ([]domain.CuratedRecord, error)

	// All returns every record in the store, text truncated to maxText
	// runes (0 means no truncation).
	All(ctx context.Context, maxText int) ([]domain.CuratedRecord, error)
}
