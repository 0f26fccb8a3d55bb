// Package mcp provides an MCP (Model Context Protocol) server adapter for profilerag.
// It lets AI assistants set up the index, ask questions and ingest profiles.
package mcp

import "errors"

// ErrMissingProfileService is returned when the profile service is not provided.
var ErrMissingProfileService = errors.New("mcp: profile service is required")
