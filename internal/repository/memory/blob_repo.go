package memory

import (
	"context"
	"sync"
)

// BlobRepository keeps blobs in process memory
type BlobRepository struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewBlobRepository() *BlobRepository {
	return &BlobRepository{data: make(map[string]string)}
}

func (r *BlobRepository) Get(ctx context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	text, ok := r.data[key]
	return text, ok, nil
}

func (r *BlobRepository) Set(ctx context.Context, key, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = text
	return nil
}
