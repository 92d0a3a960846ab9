// Package migrations embeds the goose migrations for the postgres schema.
package migrations

import "embed"

// Dir is the directory inside FS that holds the migration files.
const Dir = "."

//go:embed *.sql
var FS embed.FS
