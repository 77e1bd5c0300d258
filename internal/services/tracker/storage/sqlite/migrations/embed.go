package migrations

import "embed"

// FS contains embedded SQLite migrations for character stores.
//
//go:embed *.sql
var FS embed.FS
