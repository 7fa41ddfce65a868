package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// BlobRepository stores blobs in a SQLite table
type BlobRepository struct {
	db *sql.DB
}

// NewBlobRepository opens (creating if needed) the database at dbPath and
// applies migrations.
func NewBlobRepository(dbPath string) (*BlobRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &BlobRepository{db: db}, nil
}

func (r *BlobRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *BlobRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM blobs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query blob: %w", err)
	}
	return value, true, nil
}

func (r *BlobRepository) Set(ctx context.Context, key, text string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO blobs (key, value, updated_at)
		VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, text)
	if err != nil {
		return fmt.Errorf("upsert blob: %w", err)
	}
	return nil
}
