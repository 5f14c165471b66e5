// Package localstore is durable client-local key/value storage, the
// stand-in for the browser's localStorage. It currently holds a single
// value, the session credential, but is keyed by name so nothing else
// has to invent its own file.
package localstore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store persists named string values in a local sqlite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the store at path. The schema is
// bootstrapped idempotently on every open.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	// A single connection avoids sqlite write contention; this store
	// sees a handful of operations per process lifetime.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping local store: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS local_values (
			name       TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrap local store schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Get returns the value stored under name, with ok false when absent.
func (s *Store) Get(name string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM local_values WHERE name = ?", name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %q from local store: %w", name, err)
	}
	return value, true, nil
}

// Set stores value under name, replacing any previous value.
func (s *Store) Set(name, value string) error {
	query := `
		INSERT INTO local_values (name, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`
	if _, err := s.db.Exec(query, name, value); err != nil {
		return fmt.Errorf("write %q to local store: %w", name, err)
	}
	return nil
}

// Delete removes the value stored under name. Deleting an absent name
// is not an error.
func (s *Store) Delete(name string) error {
	if _, err := s.db.Exec("DELETE FROM local_values WHERE name = ?", name); err != nil {
		return fmt.Errorf("delete %q from local store: %w", name, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
