// Package migrations holds the schema for the run and catalog tables.
// Files are named NNN_description.up.sql and run in version order.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
