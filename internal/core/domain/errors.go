package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a well-formed key matched no source record.
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable indicates a platform's data store is missing
	// or unopenable. Distinguished from ErrNotFound so the resolver can
	// tell "never existed" apart from "data source down".
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrMalformedCitation indicates a citation ID with a recognized
	// prefix but a native key that cannot be decoded.
	ErrMalformedCitation = errors.New("malformed citation ID")

	// ErrUnknownPlatform indicates a citation ID whose prefix matches no
	// configured platform.
	ErrUnknownPlatform = errors.New("unknown platform prefix")

	// ErrEmptyReport indicates the raw analysis text produced no
	// insights at all.
	ErrEmptyReport = errors.New("no insights parsed from analysis text")

	// ErrMissingInput indicates the upstream raw-text artifact is absent.
	// This is the only fatal condition of report generation.
	ErrMissingInput = errors.New("analysis input missing")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Analysis and semantic search are disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)
