// Package file provides TOML-backed application configuration.
// The config enumerates the pipeline's file locations, the per-platform
// store layout (database file, table name), scraper parameters, and the
// LLM endpoint. Secrets are never written to the file unless explicitly
// saved; environment variables override them at load time.
package file
