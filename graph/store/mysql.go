package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLStore is a Store suitable for a multi-user/collaborative backend
// sharing one MySQL instance across editors.
type MySQLStore struct {
	*sqlStore
}

// OpenMySQLStore opens a MySQL connection using dsn (go-sql-driver/mysql
// DSN syntax, e.g. "user:pass@tcp(host:3306)/dbname?parseTime=true") and
// ensures its schema exists. dsn must request parseTime=true so
// updated_at scans into time.Time.
func OpenMySQLStore(ctx context.Context, dsn string) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open mysql: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping mysql: %w", err)
	}
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS snapshots (
			graph_id      VARCHAR(191) PRIMARY KEY,
			document_json LONGTEXT NOT NULL,
			history_json  LONGTEXT NOT NULL,
			updated_at    DATETIME NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}

	return &MySQLStore{sqlStore: &sqlStore{
		db: db,
		upsertSQL: `
			INSERT INTO snapshots (graph_id, document_json, history_json, updated_at)
			VALUES (?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE
				document_json = VALUES(document_json),
				history_json = VALUES(history_json),
				updated_at = VALUES(updated_at)
		`,
	}}, nil
}
