// Package migrations embeds the goose schema migrations of both supported
// database dialects.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

var errNilDB = errors.New("migration error: db is nil")

// dialects maps database/sql driver names to goose dialects and migration
// directories.
var dialects = map[string]struct {
	dialect string
	dir     string
}{
	"pgx":     {dialect: "pgx", dir: "postgres"},
	"sqlite3": {dialect: "sqlite3", dir: "sqlite"},
}

// Migrate applies every pending migration for driver ("pgx" or "sqlite3").
// An empty driver means "pgx".
func Migrate(db *sql.DB, driver string) error {
	if db == nil {
		return errNilDB
	}
	if driver == "" {
		driver = "pgx"
	}

	d, ok := dialects[driver]
	if !ok {
		return fmt.Errorf("migration error: unsupported driver %q", driver)
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(d.dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, d.dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
