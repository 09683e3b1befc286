// Package sqlite provides the four per-platform source record stores.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO. Each platform owns one database file with its
// own schema; there is no shared schema or migration machinery because
// scrape runs rotate tables wholesale rather than evolving them.
//
// Each store implements three driven ports:
//
//   - CitationSource: key extraction, parameterized lookup, URL
//     construction, and date normalization for the resolver
//   - DatasetReader: counting, curation, and full export
//   - the platform's writer port for the scrape connectors
//
// # Connection Scope
//
// Resolution and read paths open the database per call and close it
// before returning, on every exit path. A store file that is missing or
// unopenable surfaces as domain.ErrStoreUnavailable, never a panic or a
// propagated driver error.
package sqlite
