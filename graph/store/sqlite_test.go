package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shadergraph/core/graph"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "snapshots.db")
	st, err := OpenSQLiteStore(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("OpenSQLiteStore: %v", err)
	}
	return st
}

func TestSQLiteStoreSaveLoadRoundTrip(t *testing.T) {
	st := newTestSQLiteStore(t)
	defer st.Close()
	ctx := context.Background()

	snap := sampleSnapshot(t, "g1")
	snap.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	if err := st.Save(ctx, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := st.Load(ctx, "g1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.GraphID != "g1" {
		t.Fatalf("Load.GraphID = %q, want g1", loaded.GraphID)
	}
	if loaded.Document.GraphID != graph.GraphId("g1") {
		t.Fatalf("Load.Document.GraphID = %q, want g1", loaded.Document.GraphID)
	}
}

func TestSQLiteStoreLoadMissingReturnsErrNotFound(t *testing.T) {
	st := newTestSQLiteStore(t)
	defer st.Close()

	_, err := st.Load(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load(missing) = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStoreSaveUpsertsExistingRow(t *testing.T) {
	st := newTestSQLiteStore(t)
	defer st.Close()
	ctx := context.Background()

	first := sampleSnapshot(t, "g1")
	first.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	if err := st.Save(ctx, first); err != nil {
		t.Fatalf("Save(first): %v", err)
	}

	second := sampleSnapshot(t, "g1")
	second.UpdatedAt = first.UpdatedAt.Add(time.Hour)
	if err := st.Save(ctx, second); err != nil {
		t.Fatalf("Save(second): %v", err)
	}

	ids, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("List = %v, want exactly one row after an upsert", ids)
	}

	loaded, err := st.Load(ctx, "g1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !loaded.UpdatedAt.Equal(second.UpdatedAt) {
		t.Fatalf("Load.UpdatedAt = %v, want the upserted %v", loaded.UpdatedAt, second.UpdatedAt)
	}
}

func TestSQLiteStoreDeleteAndList(t *testing.T) {
	st := newTestSQLiteStore(t)
	defer st.Close()
	ctx := context.Background()

	for _, id := range []string{"g1", "g2"} {
		snap := sampleSnapshot(t, id)
		snap.UpdatedAt = time.Now().UTC().Truncate(time.Second)
		if err := st.Save(ctx, snap); err != nil {
			t.Fatalf("Save(%s): %v", id, err)
		}
	}

	if err := st.Delete(ctx, "g1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := st.Delete(ctx, "g1"); err != nil {
		t.Fatalf("Delete (already gone): %v", err)
	}

	ids, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ids) != 1 || ids[0] != "g2" {
		t.Fatalf("List = %v, want [g2]", ids)
	}
}

func TestSQLiteStoreClosedStoreErrors(t *testing.T) {
	st := newTestSQLiteStore(t)
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	ctx := context.Background()
	if err := st.Save(ctx, sampleSnapshot(t, "g1")); err == nil {
		t.Fatalf("Save on a closed store should fail")
	}
	if _, err := st.Load(ctx, "g1"); err == nil {
		t.Fatalf("Load on a closed store should fail")
	}
}

func TestSQLiteStoreInterfaceCompliance(t *testing.T) {
	var _ Store = (*SQLiteStore)(nil)
}
