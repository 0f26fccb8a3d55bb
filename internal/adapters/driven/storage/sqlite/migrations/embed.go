// Package migrations ships the chunk table schema with the binary.
package migrations

import "embed"

// FS holds the numbered up/down migrations applied by the SQLite store.
//
//go:embed *.sql
var FS embed.FS
