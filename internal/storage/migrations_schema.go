package storage

import "database/sql"

// migrateV001 creates the trace archive table. Every statement uses
// IF NOT EXISTS for idempotency.
func migrateV001(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS traces (
			id           TEXT PRIMARY KEY,
			label        TEXT NOT NULL DEFAULT '',
			source_path  TEXT NOT NULL DEFAULT '',
			byte_size    INTEGER NOT NULL DEFAULT 0,
			event_count  INTEGER NOT NULL DEFAULT 0,
			content_hash TEXT NOT NULL,
			imported_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			body         BLOB NOT NULL
		)`,

		`CREATE UNIQUE INDEX IF NOT EXISTS idx_traces_content_hash ON traces(content_hash)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// migrateV002 adds the indexes used by ListTraces filters.
func migrateV002(tx *sql.Tx) error {
	stmts := []string{
		`CREATE INDEX IF NOT EXISTS idx_traces_imported_at ON traces(imported_at)`,
		`CREATE INDEX IF NOT EXISTS idx_traces_label       ON traces(label)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
