package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobRepository_GetMissingFile(t *testing.T) {
	repo, err := NewBlobRepository(filepath.Join(t.TempDir(), "nested", "pfd.json"))
	require.NoError(t, err)

	_, found, err := repo.Get(context.Background(), "finance:05")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestBlobRepository_SetThenGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pfd.json")
	repo, err := NewBlobRepository(path)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "finance:05", `{"accounts":[]}`))
	require.NoError(t, repo.Set(ctx, "other", "x"))

	text, found, err := repo.Get(ctx, "finance:05")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"accounts":[]}`, text)

	// A second instance sees the persisted data
	reopened, err := NewBlobRepository(path)
	require.NoError(t, err)
	text, found, err = reopened.Get(ctx, "other")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "x", text)
}

func TestBlobRepository_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pfd.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	repo, err := NewBlobRepository(path)
	require.NoError(t, err)

	_, _, err = repo.Get(context.Background(), "finance:05")
	assert.Error(t, err)
}
