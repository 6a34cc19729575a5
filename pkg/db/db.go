// Package db persists audit history in SQLite so repeated runs against the
// same site can be compared over time.
package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const DefaultDBName = "geo-checker.db"

type DB struct {
	*sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS audits (
	audit_id       INTEGER PRIMARY KEY AUTOINCREMENT,
	url            TEXT NOT NULL,
	final_url      TEXT NOT NULL,
	page_type      TEXT NOT NULL,
	overall_score  REAL NOT NULL,
	findings_count INTEGER NOT NULL,
	report_json    TEXT NOT NULL,
	created_at     TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS pillar_scores (
	audit_id INTEGER NOT NULL,
	pillar   TEXT NOT NULL,
	score    REAL NOT NULL,
	PRIMARY KEY (audit_id, pillar),
	FOREIGN KEY (audit_id) REFERENCES audits(audit_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_audits_url ON audits(url);
`

// openDB opens a SQLite database at the given path
func openDB(dbPath string) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return sqlDB, nil
}

// Open opens or creates the audit history database at the given path.
// Use ":memory:" for an ephemeral database.
func Open(dbPath string) (*DB, error) {
	if dbPath == "" {
		dbPath = DefaultDBName
	}
	sqlDB, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	db := &DB{DB: sqlDB, path: dbPath}

	if err := db.InitSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return db, nil
}

// Path returns the database file path
func (db *DB) Path() string {
	return db.path
}

// InitSchema initializes the database schema
func (db *DB) InitSchema() error {
	_, err := db.Exec(schema)
	return err
}
