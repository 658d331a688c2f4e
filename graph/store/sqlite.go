package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore is a single-file Store suitable for a desktop editor's
// local session persistence. It opens in WAL mode; its connection pool
// holds a single connection, so saves and loads run one at a time.
type SQLiteStore struct {
	*sqlStore
}

// OpenSQLiteStore opens (creating if absent) a SQLite database at path
// and ensures its schema exists.
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // modernc.org/sqlite: one writer at a time

	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode = WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: enable WAL: %w", err)
	}
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS snapshots (
			graph_id      TEXT PRIMARY KEY,
			document_json TEXT NOT NULL,
			history_json  TEXT NOT NULL,
			updated_at    DATETIME NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}

	return &SQLiteStore{sqlStore: &sqlStore{
		db: db,
		upsertSQL: `
			INSERT INTO snapshots (graph_id, document_json, history_json, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (graph_id) DO UPDATE SET
				document_json = excluded.document_json,
				history_json = excluded.history_json,
				updated_at = excluded.updated_at
		`,
	}}, nil
}
