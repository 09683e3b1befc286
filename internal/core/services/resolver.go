package services

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/echolens-labs/echolens-cli/internal/core/domain"
	"github.com/echolens-labs/echolens-cli/internal/core/ports/driven"
	"github.com/echolens-labs/echolens-cli/internal/core/ports/driving"
	"github.com/echolens-labs/echolens-cli/internal/logger"
)

// Ensure ResolverService implements the interface.
var _ driving.CitationResolver = (*ResolverService)(nil)

// Sentinel texts for the failure modes of citation resolution. The
// distinct wording tells an operator reading the artifact whether the
// record never existed or its store was down.
const (
	textUnknownPlatform  = "Unrecognized citation format"
	textMalformedID      = "Malformed citation ID"
	textStoreUnavailable = "Source database unavailable"
	textNotFound         = "Citation not found in source data"
)

// ResolverService resolves citation IDs against the per-platform source
// record stores. Resolution never fails: every input yields exactly one
// EnrichedCitation, with failures degraded to sentinel records.
//
// Results are cached so repeated IDs within one report run hit each
// store at most once and always come back identical. Reset clears the
// cache between runs, so sentinels left by an empty or unavailable
// store do not outlive it.
type ResolverService struct {
	sources map[string]driven.CitationSource // keyed by prefix

	group singleflight.Group

	mu    sync.Mutex
	cache map[string]domain.EnrichedCitation
}

// NewResolverService creates a resolver dispatching to the given
// citation sources by their prefixes.
func NewResolverService(sources ...driven.CitationSource) *ResolverService {
	byPrefix := make(map[string]driven.CitationSource, len(sources))
	for _, src := range sources {
		byPrefix[src.Prefix()] = src
	}
	return &ResolverService{
		sources: byPrefix,
		cache:   make(map[string]domain.EnrichedCitation),
	}
}

// Resolve returns the enriched citation for citationID. Lookup failures
// are logged and returned as sentinel records, never as errors.
func (s *ResolverService) Resolve(ctx context.Context, citationID string) domain.EnrichedCitation {
	s.mu.Lock()
	if cached, ok := s.cache[citationID]; ok {
		s.mu.Unlock()
		return cached
	}
	s.mu.Unlock()

	// Concurrent misses for the same ID collapse into one store lookup.
	v, _, _ := s.group.Do(citationID, func() (any, error) {
		citation := s.resolve(ctx, citationID)
		s.mu.Lock()
		s.cache[citationID] = citation
		s.mu.Unlock()
		return citation, nil
	})
	return v.(domain.EnrichedCitation)
}

// Reset clears the resolution cache. Report generation calls it at the
// start of each run so records added since the last run, or a store
// that has come back up, resolve freshly instead of replaying cached
// sentinels.
func (s *ResolverService) Reset() {
	s.mu.Lock()
	s.cache = make(map[string]domain.EnrichedCitation)
	s.mu.Unlock()
}

func (s *ResolverService) resolve(ctx context.Context, citationID string) domain.EnrichedCitation {
	prefix, ok := domain.CitationPrefix(citationID)
	if !ok {
		logger.Debug("Citation %q has no platform prefix", citationID)
		return sentinel(citationID, textUnknownPlatform, domain.PlatformUnknown)
	}

	source, ok := s.sources[prefix]
	if !ok {
		logger.Debug("Citation %q: no source for prefix %q", citationID, prefix)
		return sentinel(citationID, textUnknownPlatform, domain.PlatformUnknown)
	}

	key, err := source.ExtractKey(citationID)
	if err != nil {
		logger.Error("Citation %q: %v", citationID, err)
		return sentinel(citationID, textMalformedID, source.Label())
	}

	record, err := source.Resolve(ctx, key)
	switch {
	case errors.Is(err, domain.ErrStoreUnavailable):
		logger.Error("Citation %q: %s store unavailable: %v", citationID, source.Label(), err)
		return sentinel(citationID, textStoreUnavailable, source.Label())
	case errors.Is(err, domain.ErrNotFound):
		logger.Debug("Citation %q: no %s record for key %q", citationID, source.Label(), key)
		return sentinel(citationID, textNotFound, source.Label())
	case err != nil:
		logger.Error("Citation %q: resolving against %s: %v", citationID, source.Label(), err)
		return sentinel(citationID, textNotFound, source.Label())
	}

	return domain.EnrichedCitation{
		ID:       citationID,
		Text:     record.Text,
		URL:      record.URL,
		Platform: source.Label(),
		Date:     record.Date,
	}
}

// sentinel builds the well-formed failure record for a citation ID.
func sentinel(citationID, reason, platform string) domain.EnrichedCitation {
	return domain.EnrichedCitation{
		ID:       citationID,
		Text:     reason,
		URL:      domain.SentinelURL,
		Platform: platform,
	}
}
