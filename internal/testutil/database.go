package testutil

import (
	"testing"

	"recmgr/internal/config"
	"recmgr/internal/database"
)

// NewTestDatabase returns an empty in-memory record store built by the real
// migrations. It is closed when the test ends; closing it earlier is allowed.
func NewTestDatabase(t *testing.T) *database.SQLiteDatabase {
	t.Helper()

	db, err := database.NewDatabaseFromConfig(config.DatabaseConfig{Type: "memory"})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.MigrateUp(); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}
