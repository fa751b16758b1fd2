package gateway

import "embed"

// Migrations holds the schema for the postgres gateway.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory within Migrations holding the sql files.
const MigrationsDir = "migrations"
