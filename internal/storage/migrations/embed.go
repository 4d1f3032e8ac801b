package migrations

import "embed"

// PostgresFS holds the campaign schema migrations.
//
//go:embed postgres/*.sql
var PostgresFS embed.FS

// ClickhouseFS holds the tip ledger migrations.
//
//go:embed clickhouse/*.sql
var ClickhouseFS embed.FS
