package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

// getTestDSN reads the MySQL DSN used for these tests from the
// environment. Set TEST_MYSQL_DSN (go-sql-driver/mysql syntax, e.g.
// "user:pass@tcp(localhost:3306)/dbname?parseTime=true") to run them; they
// are skipped otherwise, since no MySQL server is assumed to be reachable
// by default.
func getTestDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("skipping MySQL store tests: TEST_MYSQL_DSN not set")
	}
	return dsn
}

func TestMySQLStoreSaveLoadRoundTrip(t *testing.T) {
	dsn := getTestDSN(t)
	ctx := context.Background()

	st, err := OpenMySQLStore(ctx, dsn)
	if err != nil {
		t.Fatalf("OpenMySQLStore: %v", err)
	}
	defer st.Close()

	snap := sampleSnapshot(t, "g-mysql-1")
	snap.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	if err := st.Save(ctx, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := st.Load(ctx, "g-mysql-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.GraphID != "g-mysql-1" {
		t.Fatalf("Load.GraphID = %q, want g-mysql-1", loaded.GraphID)
	}

	if err := st.Delete(ctx, "g-mysql-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := st.Load(ctx, "g-mysql-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load after Delete = %v, want ErrNotFound", err)
	}
}

func TestMySQLStoreInvalidDSNFailsToOpen(t *testing.T) {
	getTestDSN(t) // only run alongside the rest of this file's MySQL tests
	_, err := OpenMySQLStore(context.Background(), "not a valid dsn")
	if err == nil {
		t.Fatalf("OpenMySQLStore with a malformed DSN should fail")
	}
}

func TestMySQLStoreInterfaceCompliance(t *testing.T) {
	var _ Store = (*MySQLStore)(nil)
}
