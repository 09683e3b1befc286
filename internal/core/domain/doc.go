// Package domain defines the core business entities for EchoLens.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - EnrichedCitation: A citation ID resolved into displayable form
//   - Insight: One report entry with its supporting citations
//   - RedditComment, YouTubeComment, AppStoreReview, GooglePlayReview:
//     per-platform scraped feedback records
//   - CuratedRecord: The {id, text} shape exported for LLM prompts
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
