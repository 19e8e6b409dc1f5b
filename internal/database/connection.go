// Package database is the persistent store: a durable, indexed table
// of vocabulary entries plus a flat key/value settings table, over
// sqlite for the normal offline install or postgres when pointed at a
// server.
package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// ErrUnavailable wraps any failure to open or access the storage
// engine itself. Callers should treat it as "present the offline /
// degraded state", not retry.
var ErrUnavailable = errors.New("storage unavailable")

// Drivers accepted by Connect.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Config selects the storage engine. Path is used by sqlite, DSN by
// postgres.
type Config struct {
	Driver string
	Path   string
	DSN    string
}

// Connect opens the database and creates the schema if needed.
func Connect(cfg Config) (*sqlx.DB, error) {
	var db *sqlx.DB
	var err error

	switch cfg.Driver {
	case DriverSQLite, "":
		path := cfg.Path
		if path != ":memory:" {
			if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
				return nil, fmt.Errorf("%w: create data directory: %v", ErrUnavailable, mkErr)
			}
		}
		db, err = sqlx.Connect(DriverSQLite, path)
		if err == nil {
			// SQLite does not support multiple writers.
			db.SetMaxOpenConns(1)
			db.SetMaxIdleConns(1)
			_, err = db.Exec("PRAGMA foreign_keys = ON")
		}
	case DriverPostgres:
		db, err = sqlx.Connect(DriverPostgres, cfg.DSN)
	default:
		return nil, fmt.Errorf("%w: unknown driver %q", ErrUnavailable, cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if err := initializeSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return db, nil
}

// initializeSchema creates the tables and secondary indexes if they do
// not exist yet.
func initializeSchema(db *sqlx.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS words (
			id TEXT PRIMARY KEY,
			simplified TEXT NOT NULL,
			traditional TEXT NOT NULL DEFAULT '',
			pinyin TEXT NOT NULL DEFAULT '',
			meanings TEXT NOT NULL DEFAULT '[]',
			level INTEGER NOT NULL DEFAULT 1,
			examples TEXT NOT NULL DEFAULT '[]',
			srs_level INTEGER NOT NULL DEFAULT 0,
			next_review TEXT NOT NULL DEFAULT '',
			correct_count INTEGER NOT NULL DEFAULT 0,
			incorrect_count INTEGER NOT NULL DEFAULT 0,
			last_practiced TIMESTAMP,
			is_favorite BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_words_level ON words(level)`,
		`CREATE INDEX IF NOT EXISTS idx_words_next_review ON words(next_review)`,
		`CREATE INDEX IF NOT EXISTS idx_words_simplified ON words(simplified)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %v", err)
		}
	}
	return nil
}
