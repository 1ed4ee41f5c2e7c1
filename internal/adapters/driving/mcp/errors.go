// Package mcp provides an MCP (Model Context Protocol) server adapter for
// deckroute. It lets AI assistants plan and route presentation strawmen.
package mcp

import "errors"

// ErrMissingRouter is returned when no router factory is provided.
var ErrMissingRouter = errors.New("mcp: router factory is required")

// ErrMissingPlanner is returned when no planner factory is provided.
var ErrMissingPlanner = errors.New("mcp: planner factory is required")
