// Package dbtest opens throwaway migrated databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"yatube/database"
)

// New returns a migrated SQLite database in a per-test temp directory.
func New(t testing.TB) *database.DB {
	t.Helper()

	db, err := database.New("sqlite", database.SQLiteDSN(filepath.Join(t.TempDir(), "yatube.db")))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close test database: %v", err)
		}
	})
	return db
}
