// Package youtube scrapes recent channel uploads and their top-level
// comments through the YouTube Data API v3 into the YouTube source
// record store.
package youtube
