// Package mcp provides an MCP (Model Context Protocol) server adapter for
// EchoLens. It lets AI assistants resolve citations and query the collected
// feedback dataset directly.
package mcp

import "errors"

// ErrMissingResolver is returned when the citation resolver is not provided.
var ErrMissingResolver = errors.New("mcp: citation resolver is required")
