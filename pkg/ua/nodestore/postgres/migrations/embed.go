// Package migrations embeds the schema migrations for the postgres
// NodeStore backend, grounded on the teacher's
// pkg/store/metadata/postgres/migrations package (an embed.FS consumed by
// golang-migrate's iofs source driver).
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
