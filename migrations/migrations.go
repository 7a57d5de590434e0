// Package migrations embeds the SQL schema migrations. The statements are
// written to run unchanged on both SQLite and PostgreSQL.
package migrations

import "embed"

// FS holds the NNNN_name.{up,down}.sql files.
//
//go:embed *.sql
var FS embed.FS
