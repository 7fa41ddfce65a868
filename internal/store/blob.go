package store

import "context"

// DefaultKey is the blob key the ledger document is stored under
const DefaultKey = "finance:05"

// BlobStore is an opaque text key-value store holding the serialized document
type BlobStore interface {
	// Get returns the stored text. found is false when the key is absent.
	Get(ctx context.Context, key string) (text string, found bool, err error)
	Set(ctx context.Context, key, text string) error
}
