// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - CitationSource: Per-platform citation lookup and normalization
//   - DatasetReader: Per-platform curation, counting, and export
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Chat completions. Without it, fresh analysis and
//     semantic search are disabled; report generation from an existing
//     analysis text still works.
//   - RedditWriter / YouTubeWriter / AppStoreWriter / GooglePlayWriter:
//     Scrape-side persistence. Only needed by the connectors.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
