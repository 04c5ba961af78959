// Package migrations embeds the Postgres schema applied at server startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
