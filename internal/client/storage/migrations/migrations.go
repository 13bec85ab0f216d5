// Package migrations embeds the on-device goose SQL migrations.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
