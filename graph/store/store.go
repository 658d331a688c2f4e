// Package store provides persistence for graph documents and their command
// history, so an editor can save and resume a session.
//
// Persistence is entirely optional and outside the kernel's pure-operation
// contract: a Store is never consulted by command.Apply or exec.Evaluate*, it
// only saves/restores the Snapshot an external collaborator chooses to
// checkpoint.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/shadergraph/core/graph"
	"github.com/shadergraph/core/graph/command"
)

// ErrNotFound is returned when a requested GraphId has no saved snapshot.
var ErrNotFound = errors.New("store: not found")

// Snapshot is a persisted session: the graph document plus the ordered
// history of commands that produced it, enough to resume editing or replay
// undo/redo.
type Snapshot struct {
	GraphID   string          `json:"graph_id"`
	Document  graph.Document  `json:"document"`
	History   []command.Entry `json:"history"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Store persists and retrieves Snapshots keyed by GraphId.
//
// Implementations: MemStore (tests, embedding), SQLiteStore (single-file
// desktop persistence), MySQLStore (multi-user/collaborative backend).
type Store interface {
	// Save persists snap, overwriting any prior snapshot for the same
	// GraphID.
	Save(ctx context.Context, snap Snapshot) error

	// Load retrieves the snapshot for graphID. Returns ErrNotFound if none
	// exists.
	Load(ctx context.Context, graphID string) (Snapshot, error)

	// Delete removes the snapshot for graphID, if any. Deleting an
	// already-absent graphID is not an error.
	Delete(ctx context.Context, graphID string) error

	// List returns the GraphIDs with a saved snapshot, in no particular
	// order.
	List(ctx context.Context) ([]string, error)
}
