package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/rs/zerolog"
)

// CommitListener is notified with a snapshot after every committed change
type CommitListener func(ctx context.Context, doc *domain.Document)

// Store owns the single in-memory ledger document. Every load-modify-save
// cycle is serialized by mu.
type Store struct {
	mu        sync.Mutex
	doc       *domain.Document
	blob      BlobStore
	key       string
	codec     *Codec
	logger    zerolog.Logger
	listeners []CommitListener
}

// New creates a store holding the default document. Call Load to read the
// persisted one.
func New(blob BlobStore, key string, logger zerolog.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{
		doc:    domain.NewDocument(),
		blob:   blob,
		key:    key,
		codec:  NewCodec(),
		logger: logger.With().Str("component", "store").Logger(),
	}
}

// Codec returns the codec used for persistence
func (s *Store) Codec() *Codec {
	return s.codec
}

// OnCommit registers a listener invoked after each successful mutation
func (s *Store) OnCommit(l CommitListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Load reads the persisted document. An absent key yields the default
// document. Read or parse failures also install the default document and
// return an error wrapping domain.ErrStoreRead so callers may log it.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	text, found, err := s.blob.Get(ctx, s.key)
	if err != nil {
		s.doc = domain.NewDocument()
		s.logger.Warn().Err(err).Str("key", s.key).Msg("Failed to read document, using defaults")
		return fmt.Errorf("%w: %v", domain.ErrStoreRead, err)
	}
	if !found {
		s.doc = domain.NewDocument()
		s.logger.Debug().Str("key", s.key).Msg("No stored document, using defaults")
		return nil
	}

	doc, err := s.codec.Decode([]byte(text))
	if err != nil {
		s.doc = domain.NewDocument()
		s.logger.Warn().Err(err).Str("key", s.key).Msg("Stored document is unreadable, using defaults")
		return fmt.Errorf("%w: %v", domain.ErrStoreRead, err)
	}

	s.doc = doc
	s.logger.Info().
		Int("accounts", len(doc.Accounts)).
		Int("transactions", len(doc.Transactions)).
		Msg("Document loaded")
	return nil
}

// Save persists the current document
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(ctx)
}

func (s *Store) persist(ctx context.Context) error {
	data, err := s.codec.Encode(s.doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if err := s.blob.Set(ctx, s.key, string(data)); err != nil {
		s.logger.Error().Err(err).Str("key", s.key).Msg("Failed to persist document")
		return fmt.Errorf("failed to persist document: %w", err)
	}
	return nil
}

// Snapshot returns a deep copy of the current document
func (s *Store) Snapshot() *domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// View runs fn against the current document under the lock. fn must not
// retain or modify the document.
func (s *Store) View(fn func(doc *domain.Document)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.doc)
}

// Update applies fn to a copy of the document. The copy replaces the current
// document only when fn succeeds and is persisted; listeners are then
// notified. On a persistence failure the previous document stays in place.
func (s *Store) Update(ctx context.Context, fn func(doc *domain.Document) error) error {
	_, err := s.commit(ctx, func(current *domain.Document) (*domain.Document, error) {
		working := current.Clone()
		if err := fn(working); err != nil {
			return nil, err
		}
		return working, nil
	})
	return err
}

// Reset replaces the document with the empty default
func (s *Store) Reset(ctx context.Context) error {
	_, err := s.commit(ctx, func(*domain.Document) (*domain.Document, error) {
		return domain.NewDocument(), nil
	})
	return err
}

// ImportMerge replaces the document with an imported one. Keys missing from
// the import fall back to defaults. Invalid input leaves state unchanged.
func (s *Store) ImportMerge(ctx context.Context, data []byte) (*domain.Document, error) {
	doc, err := s.codec.Decode(data)
	if err != nil {
		return nil, err
	}
	return s.commit(ctx, func(*domain.Document) (*domain.Document, error) {
		return doc, nil
	})
}

// Export serializes the current document in indented form
func (s *Store) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.codec.EncodeIndent(s.doc)
}

// commit builds the next document under the lock, swaps it in and persists
// it. A failed persist restores the previous document. Listeners run after
// the lock is released and only for committed changes.
func (s *Store) commit(ctx context.Context, build func(current *domain.Document) (*domain.Document, error)) (*domain.Document, error) {
	snapshot, listeners, err := s.swap(ctx, build)
	if err != nil {
		return nil, err
	}
	for _, l := range listeners {
		l(ctx, snapshot.Clone())
	}
	return snapshot, nil
}

func (s *Store) swap(ctx context.Context, build func(current *domain.Document) (*domain.Document, error)) (*domain.Document, []CommitListener, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := build(s.doc)
	if err != nil {
		return nil, nil, err
	}

	prev := s.doc
	s.doc = next
	if err := s.persist(ctx); err != nil {
		s.doc = prev
		return nil, nil, err
	}
	return next.Clone(), append([]CommitListener(nil), s.listeners...), nil
}
