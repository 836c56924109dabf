// Package migrations embeds the goose SQL migration files.
// They are applied in order during database startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
