// Package driving declares what the CLI, TUI and MCP adapters call into:
// routing and planning a strawman, browsing the variant catalog, reading
// run history and editing settings. internal/core/services implements
// them.
package driving
