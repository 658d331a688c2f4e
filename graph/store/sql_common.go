package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// sqlStore implements Store over a database/sql connection holding a
// single snapshots table (graph_id, document_json, history_json,
// updated_at). SQLiteStore and MySQLStore both wrap this with their own
// driver-specific DSN handling and DDL; the query logic itself — every
// driver/sql package the go.mod pulls in speaks the same "?" placeholder
// syntax — does not need to differ between them.
type sqlStore struct {
	db *sql.DB
	// upsertSQL is the driver-specific insert-or-update statement; SQLite
	// and MySQL disagree on upsert syntax (ON CONFLICT...DO UPDATE vs ON
	// DUPLICATE KEY UPDATE) even though every other query here is plain
	// enough standard SQL to share verbatim.
	upsertSQL string
}

func (s *sqlStore) Save(ctx context.Context, snap Snapshot) error {
	docJSON, err := json.Marshal(snap.Document)
	if err != nil {
		return fmt.Errorf("store: marshal document: %w", err)
	}
	histJSON, err := json.Marshal(snap.History)
	if err != nil {
		return fmt.Errorf("store: marshal history: %w", err)
	}
	if snap.UpdatedAt.IsZero() {
		snap.UpdatedAt = time.Now().UTC()
	}
	_, err = s.db.ExecContext(ctx, s.upsertSQL, snap.GraphID, string(docJSON), string(histJSON), snap.UpdatedAt)
	if err != nil {
		return fmt.Errorf("store: save %q: %w", snap.GraphID, err)
	}
	return nil
}

func (s *sqlStore) Load(ctx context.Context, graphID string) (Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT graph_id, document_json, history_json, updated_at
		FROM snapshots WHERE graph_id = ?
	`, graphID)

	var (
		id, docJSON, histJSON string
		updatedAt             time.Time
	)
	if err := row.Scan(&id, &docJSON, &histJSON, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return Snapshot{}, ErrNotFound
		}
		return Snapshot{}, fmt.Errorf("store: load %q: %w", graphID, err)
	}

	var snap Snapshot
	snap.GraphID = id
	snap.UpdatedAt = updatedAt
	if err := json.Unmarshal([]byte(docJSON), &snap.Document); err != nil {
		return Snapshot{}, fmt.Errorf("store: unmarshal document for %q: %w", graphID, err)
	}
	if err := json.Unmarshal([]byte(histJSON), &snap.History); err != nil {
		return Snapshot{}, fmt.Errorf("store: unmarshal history for %q: %w", graphID, err)
	}
	return snap, nil
}

func (s *sqlStore) Delete(ctx context.Context, graphID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE graph_id = ?`, graphID)
	if err != nil {
		return fmt.Errorf("store: delete %q: %w", graphID, err)
	}
	return nil
}

func (s *sqlStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT graph_id FROM snapshots`)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("store: list: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}
