package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// CreateInMemoryDB creates an in-memory app database for testing
func CreateInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS appKV (
		key TEXT PRIMARY KEY,
		value TEXT
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		t.Fatalf("Failed to create appKV table: %v", err)
	}

	return db
}

// InsertKV inserts a key-value pair into the appKV table
func InsertKV(t *testing.T, db *sql.DB, key, value string) {
	t.Helper()
	_, err := db.Exec("INSERT OR REPLACE INTO appKV (key, value) VALUES (?, ?)", key, value)
	if err != nil {
		t.Fatalf("Failed to insert key %q: %v", key, err)
	}
}

// SeedSession stores a session record under the fixed session key
func SeedSession(t *testing.T, db *sql.DB, sessionJSON string) {
	t.Helper()
	InsertKV(t, db, "vivah_session", sessionJSON)
}
