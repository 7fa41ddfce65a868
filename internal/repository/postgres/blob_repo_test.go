package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	value string
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*string)) = r.value
	return nil
}

// fakeQuerier emulates the blobs table in memory
type fakeQuerier struct {
	rows     map[string]string
	execErr  error
	lastExec string
}

func newFakeQuerier() *fakeQuerier {
	return &fakeQuerier{rows: map[string]string{}}
}

func (q *fakeQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.lastExec = sql
	if q.execErr != nil {
		return pgconn.CommandTag{}, q.execErr
	}
	if strings.Contains(sql, "INSERT INTO blobs") {
		q.rows[args[0].(string)] = args[1].(string)
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	}
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (q *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	value, ok := q.rows[args[0].(string)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{value: value}
}

func TestBlobRepository_GetMissing(t *testing.T) {
	repo := &BlobRepository{db: newFakeQuerier()}

	_, found, err := repo.Get(context.Background(), "finance:05")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestBlobRepository_SetThenGet(t *testing.T) {
	repo := &BlobRepository{db: newFakeQuerier()}
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "finance:05", `{"accounts":[]}`))

	text, found, err := repo.Get(ctx, "finance:05")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"accounts":[]}`, text)
}

func TestBlobRepository_SetError(t *testing.T) {
	q := newFakeQuerier()
	q.execErr = errors.New("connection refused")
	repo := &BlobRepository{db: q}

	err := repo.Set(context.Background(), "finance:05", "{}")
	assert.ErrorContains(t, err, "upsert blob")
}

func TestBlobRepository_EnsureSchema(t *testing.T) {
	q := newFakeQuerier()
	repo := &BlobRepository{db: q}

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.Contains(t, q.lastExec, "CREATE TABLE IF NOT EXISTS blobs")
}
