package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesTableAndIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, obj := range []struct{ kind, name string }{
		{"table", "llm_calls"},
		{"index", "idx_llm_calls_created"},
		{"index", "idx_llm_calls_task"},
	} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type=? AND name=?`, obj.kind, obj.name).Scan(&name)
		require.NoError(t, err, "%s %s should exist", obj.kind, obj.name)
		assert.Equal(t, obj.name, name)
	}
}

func TestMigrate_RejectsInvalidSuccessFlag(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO llm_calls (id, task, success, created_at) VALUES ('x', 'bmc_question', 2, '2026-01-01T00:00:00Z')`)
	assert.Error(t, err)
}

func TestOpenDB_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "incubator.db")

	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}
