package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SettingsStore is the flat key/value table the surrounding app keeps
// its preferences in (active HSK levels, offline practice). The core
// only reads it at startup.
type SettingsStore struct {
	db *sqlx.DB
}

// NewSettingsStore creates a new settings store.
func NewSettingsStore(db *sqlx.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Get returns the value for key, or "" if the key is not set.
func (s *SettingsStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	query := s.db.Rebind(`SELECT value FROM settings WHERE key = ?`)
	err := s.db.GetContext(ctx, &value, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, nil
}

// Set stores the value under key, replacing any previous value.
func (s *SettingsStore) Set(ctx context.Context, key, value string) error {
	query := s.db.Rebind(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`)
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}
