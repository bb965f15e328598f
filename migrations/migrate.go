// Package migrations embeds the schema of the client's local SQLite store and
// of the document server's PostgreSQL database and applies them with goose.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed client/*.sql server/*.sql
var embedMigrations embed.FS

var errNilDB = errors.New("db is nil")

// goose keeps dialect and base FS in package state.
var gooseMu sync.Mutex

// MigrateClient applies the local store schema to a SQLite database.
func MigrateClient(db *sql.DB) error {
	return migrate(db, "sqlite3", "client")
}

// MigrateServer applies the document store schema to a PostgreSQL database
// opened with the pgx stdlib driver.
func MigrateServer(db *sql.DB) error {
	return migrate(db, "pgx", "server")
}

func migrate(db *sql.DB, dialect, dir string) error {
	if db == nil {
		return fmt.Errorf("migration error: %w", errNilDB)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
