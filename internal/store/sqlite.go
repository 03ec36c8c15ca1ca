package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mkadlec/shutterbook/internal/db"
)

// SQLite persists collections in the documents table of the encrypted
// database, one row per collection key.
type SQLite struct {
	db *db.DB
}

// NewSQLite creates a document store backed by the given database
func NewSQLite(database *db.DB) *SQLite {
	return &SQLite{db: database}
}

// Load reads the document stored under key
func (s *SQLite) Load(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM documents WHERE key = ?", key,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load collection %q: %w", key, err)
	}
	return data, nil
}

// Save writes the document under key, replacing any previous version
func (s *SQLite) Save(ctx context.Context, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (key, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, key, data, time.Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save collection %q: %w", key, err)
	}
	return nil
}

// Delete removes the document stored under key
func (s *SQLite) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete collection %q: %w", key, err)
	}
	return nil
}
