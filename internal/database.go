package internal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// The app database is a single key-value table. It plays the role a
// mobile platform's preference storage would: small JSON records keyed
// by a fixed namespace string.
const createAppKVSQL = `
CREATE TABLE IF NOT EXISTS appKV (
	key TEXT PRIMARY KEY,
	value TEXT
)`

// OpenAppDatabase opens (creating if necessary) the local app database
func OpenAppDatabase(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if _, err := db.Exec(createAppKVSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create appKV table: %w", err)
	}

	return db, nil
}

// KVGet reads a value from the appKV table. A missing key returns
// ("", false, nil) rather than an error.
func KVGet(db *sql.DB, key string) (string, bool, error) {
	var value sql.NullString
	err := db.QueryRow("SELECT value FROM appKV WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, &StorageError{Key: key, Op: "read", Err: err}
	}
	if !value.Valid {
		return "", false, nil
	}
	return value.String, true, nil
}

// KVSet writes a value into the appKV table, replacing any existing one
func KVSet(db *sql.DB, key, value string) error {
	_, err := db.Exec(
		"INSERT INTO appKV (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return &StorageError{Key: key, Op: "write", Err: err}
	}
	return nil
}

// KVDelete removes a key from the appKV table
func KVDelete(db *sql.DB, key string) error {
	if _, err := db.Exec("DELETE FROM appKV WHERE key = ?", key); err != nil {
		return &StorageError{Key: key, Op: "delete", Err: err}
	}
	return nil
}
