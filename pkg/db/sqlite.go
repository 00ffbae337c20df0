package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the sql.DB connection
type DB struct {
	*sql.DB
}

// NewDB creates a new SQLite database connection
func NewDB(dbPath string) (*DB, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{db}, nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.DB.Close()
}

// InitSchema initializes the database schema.
//
// UNIQUE(scope, range_start) is what enforces "one intention per
// (scope, range) slot". range_start is derived from the anchor date
// by the repository, so two anchors inside the same calendar range
// collide here regardless of what the caller checked beforehand.
func (d *DB) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS intentions (
		id TEXT PRIMARY KEY,
		text TEXT NOT NULL,
		scope TEXT NOT NULL,
		anchor_date DATETIME NOT NULL,
		range_start DATETIME NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		ai_generated INTEGER NOT NULL DEFAULT 0,
		theme TEXT NOT NULL DEFAULT '',
		quote TEXT NOT NULL DEFAULT '',
		font TEXT NOT NULL DEFAULT '',
		UNIQUE(scope, range_start)
	);

	CREATE TABLE IF NOT EXISTS settings (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		payload TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`

	_, err := d.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}

	return nil
}
