// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateServer_DBError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// no expectations: goose's first statement fails
	err = MigrateServer(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	assert.ErrorIs(t, MigrateClient(db), errNilDB)
	assert.ErrorIs(t, MigrateServer(db), errNilDB)
}

func TestMigrateClient_CreatesSchema(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, MigrateClient(db))
	// idempotent
	require.NoError(t, MigrateClient(db))

	for _, table := range []string{"events", "offers", "artists", "conversations", "messages", "sync_queue", "sync_watermarks"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestMigrateClient_OutstandingUniqueness(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, MigrateClient(db))

	insert := `INSERT INTO sync_queue (table_name, local_record_id, operation, payload, created_at, status)
		VALUES ('events', 'r1', 'create', '{}', 1, ?)`

	_, err = db.Exec(insert, "pending")
	require.NoError(t, err)
	_, err = db.Exec(insert, "processing")
	assert.Error(t, err, "second outstanding entry must be rejected")

	_, err = db.Exec(insert, "completed")
	assert.NoError(t, err)
	_, err = db.Exec(insert, "failed")
	assert.NoError(t, err)
}
