package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS llm_calls (
		id          TEXT PRIMARY KEY,
		task        TEXT NOT NULL,
		backend     TEXT NOT NULL DEFAULT '',
		model       TEXT NOT NULL DEFAULT '',
		attempts    INTEGER NOT NULL DEFAULT 0 CHECK(attempts >= 0),
		latency_ms  INTEGER NOT NULL DEFAULT 0,
		success     INTEGER NOT NULL DEFAULT 0 CHECK(success IN (0, 1)),
		error_code  TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_llm_calls_created ON llm_calls(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_llm_calls_task ON llm_calls(task)`,
}
