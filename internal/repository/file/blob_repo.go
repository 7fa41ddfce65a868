package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// BlobRepository keeps every blob in a single JSON file mapping keys to text.
// Writes go to a temp file that is renamed over the original.
type BlobRepository struct {
	mu   sync.Mutex
	path string
}

// NewBlobRepository creates the parent directory of path if needed
func NewBlobRepository(path string) (*BlobRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &BlobRepository{path: path}, nil
}

func (r *BlobRepository) Get(ctx context.Context, key string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	blobs, err := r.read()
	if err != nil {
		return "", false, err
	}
	text, ok := blobs[key]
	return text, ok, nil
}

func (r *BlobRepository) Set(ctx context.Context, key, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	blobs, err := r.read()
	if err != nil {
		return err
	}
	blobs[key] = text

	data, err := json.MarshalIndent(blobs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".pfd-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

func (r *BlobRepository) read() (map[string]string, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}

	blobs := map[string]string{}
	if len(data) == 0 {
		return blobs, nil
	}
	if err := json.Unmarshal(data, &blobs); err != nil {
		return nil, fmt.Errorf("decode store file: %w", err)
	}
	return blobs, nil
}
