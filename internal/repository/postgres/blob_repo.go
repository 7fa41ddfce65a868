package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createBlobsTable = `
CREATE TABLE IF NOT EXISTS blobs (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// querier is the subset of pgxpool.Pool used by the repository
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BlobRepository stores blobs in a PostgreSQL table
type BlobRepository struct {
	db querier
}

// NewBlobRepository creates a new BlobRepository
func NewBlobRepository(pool *pgxpool.Pool) *BlobRepository {
	return &BlobRepository{db: pool}
}

// EnsureSchema creates the blobs table when missing
func (r *BlobRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createBlobsTable); err != nil {
		return fmt.Errorf("create blobs table: %w", err)
	}
	return nil
}

// Get retrieves the blob stored under key
func (r *BlobRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow(ctx, `SELECT value FROM blobs WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("query blob: %w", err)
	}
	return value, true, nil
}

// Set upserts the blob stored under key
func (r *BlobRepository) Set(ctx context.Context, key, text string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO blobs (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, text)
	if err != nil {
		return fmt.Errorf("upsert blob: %w", err)
	}
	return nil
}
