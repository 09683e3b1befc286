package domain

import "strings"

// Citation ID prefixes for the four feedback platforms.
// The prefix of a citation ID uniquely determines which source record
// store owns the referenced record and how the native key is encoded.
const (
	PrefixReddit     = "R"
	PrefixYouTube    = "YT"
	PrefixAppStore   = "AS"
	PrefixGooglePlay = "GP"
)

// PlatformUnknown is the label used for citation IDs whose prefix does
// not match any configured platform.
const PlatformUnknown = "Unknown"

// SentinelURL is the URL emitted for citations that could not be resolved
// to a live source record.
const SentinelURL = "#"

// CitationPrefix returns the platform prefix of a citation ID (the part
// before the first underscore) and whether a prefix was present at all.
// The remainder of the ID is opaque here; only the owning platform knows
// how to decode its native key.
func CitationPrefix(citationID string) (string, bool) {
	prefix, _, found := strings.Cut(citationID, "_")
	if !found || prefix == "" {
		return "", false
	}
	return prefix, true
}

// EnrichedCitation is a citation ID resolved into displayable form.
// One is always produced per requested ID, even when resolution fails:
// failures carry a human-readable reason in Text and SentinelURL in URL,
// so citation-count arithmetic downstream never special-cases errors.
//
// The JSON field names are the artifact contract with the dashboard and
// must not change.
type EnrichedCitation struct {
	// ID is the citation ID exactly as it appeared in the LLM output.
	ID string `json:"id"`

	// Text is the source record's free text body, or the failure reason.
	Text string `json:"comment_text"`

	// URL is a deep link to the source record, or SentinelURL.
	URL string `json:"comment_url"`

	// Platform is the display label of the owning platform.
	Platform string `json:"source_platform"`

	// Date is the authorship date as YYYY-MM-DD, or "" when unknown.
	Date string `json:"date"`
}
