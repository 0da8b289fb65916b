package db

import "embed"

// MigrationFS embeds the schema migrations so the server binary can bring
// the database up to date on startup without shipping loose SQL files.
//
//go:embed migrations/*.sql
var MigrationFS embed.FS
