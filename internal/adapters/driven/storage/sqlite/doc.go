// Package sqlite persists run history and cached variant catalogs in a
// single database file, ~/.deckroute/data/deckroute.db unless a data
// directory is given. It uses modernc.org/sqlite and needs no cgo.
//
// The connection runs in WAL mode with a busy timeout so that a watch
// loop and an MCP server can record runs against the same file. Schema
// changes live in migrations/ and each applied version is recorded in
// schema_migrations.
package sqlite
