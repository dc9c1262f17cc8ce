package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/provida/volunteer-portal/pkg/core/model"
)

// migrations are idempotent and run on every open
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS activity (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		name          TEXT NOT NULL,
		department    TEXT NOT NULL DEFAULT '',
		activity_date TEXT NOT NULL DEFAULT '',
		raw_date      TEXT NOT NULL DEFAULT '',
		activity_time TEXT NOT NULL DEFAULT '',
		level         TEXT NOT NULL DEFAULT '',
		rule          TEXT NOT NULL DEFAULT '',
		slot1         TEXT NOT NULL DEFAULT '',
		slot2         TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS activity_date_idx ON activity (activity_date)`,
	`CREATE TABLE IF NOT EXISTS volunteer (
		key         TEXT PRIMARY KEY COLLATE NOCASE,
		name        TEXT NOT NULL,
		email       TEXT NOT NULL DEFAULT '',
		level       TEXT NOT NULL DEFAULT '',
		departments TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS signup_record (
		id            TEXT PRIMARY KEY,
		activity_row  INTEGER NOT NULL REFERENCES activity (id),
		activity_name TEXT NOT NULL,
		activity_date TEXT NOT NULL DEFAULT '',
		activity_time TEXT NOT NULL DEFAULT '',
		slot          TEXT NOT NULL,
		volunteer     TEXT NOT NULL,
		signed_up_at  TEXT NOT NULL
	)`,
}

// DB is the record store and sign-up log backed by a local SQLite file
type DB struct {
	db *sql.DB
}

// OpenDB opens the SQLite database at path, creating it and its directory if needed.
// ":memory:" opens a private in-memory database.
func OpenDB(path string) (*DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create db directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection keeps the pragmas below in force and serialises writers in-process
	conn.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &DB{db: conn}, nil
}

// Close closes the database
func (d *DB) Close() error {
	return d.db.Close()
}

func migrate(conn *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

func slotColumn(slot model.Slot) (string, error) {
	switch slot {
	case model.Slot1:
		return "slot1", nil
	case model.Slot2:
		return "slot2", nil
	}
	return "", fmt.Errorf("invalid slot %d", slot)
}
