// Package migrations embeds the SQL schema migrations applied at startup.
package migrations

import "embed"

// FS contains the migration files, applied in lexical filename order.
//
//go:embed *.sql
var FS embed.FS
