package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/dafibh/pfd/pfd-backend/internal/repository/memory"
	"github.com/dafibh/pfd/pfd-backend/internal/store"
	"github.com/dafibh/pfd/pfd-backend/internal/websocket"
	"github.com/rs/zerolog"
)

// DefaultNow is the instant returned by NewFixedClock: 15 March 2026, 09:30 UTC
var DefaultNow = time.Date(2026, time.March, 15, 9, 30, 0, 0, time.UTC)

// FixedClock is a Clock that returns a settable instant
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock fixed at DefaultNow
func NewFixedClock() *FixedClock {
	return &FixedClock{now: DefaultNow}
}

// Now returns the fixed instant
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to t
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// SequentialIDGenerator issues predictable ids: id-1, id-2, ...
type SequentialIDGenerator struct {
	mu   sync.Mutex
	next int
}

func NewSequentialIDGenerator() *SequentialIDGenerator {
	return &SequentialIDGenerator{}
}

// NewID returns the next id in sequence
func (g *SequentialIDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("id-%d", g.next)
}

// MockBlobRepository is an in-memory blob store with injectable failures
type MockBlobRepository struct {
	*memory.BlobRepository
	GetErr error
	SetErr error
	Sets   int
}

func NewMockBlobRepository() *MockBlobRepository {
	return &MockBlobRepository{BlobRepository: memory.NewBlobRepository()}
}

func (m *MockBlobRepository) Get(ctx context.Context, key string) (string, bool, error) {
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	return m.BlobRepository.Get(ctx, key)
}

func (m *MockBlobRepository) Set(ctx context.Context, key, text string) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Sets++
	return m.BlobRepository.Set(ctx, key, text)
}

// NewTestStore returns a store backed by a fresh MockBlobRepository
func NewTestStore() (*store.Store, *MockBlobRepository) {
	blob := NewMockBlobRepository()
	return store.New(blob, store.DefaultKey, zerolog.Nop()), blob
}

// MockNotifier records every dispatched alert
type MockNotifier struct {
	mu           sync.Mutex
	AlertBatches [][]domain.BudgetAlert
	BillBatches  [][]domain.Bill
	NotifyErr    error
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) NotifyBudgetAlerts(ctx context.Context, alerts []domain.BudgetAlert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AlertBatches = append(m.AlertBatches, alerts)
	return m.NotifyErr
}

func (m *MockNotifier) NotifyUpcomingBills(ctx context.Context, bills []domain.Bill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BillBatches = append(m.BillBatches, bills)
	return m.NotifyErr
}

// AlertCount returns the number of alert batches received
func (m *MockNotifier) AlertCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.AlertBatches)
}

// BillCount returns the number of upcoming-bill batches received
func (m *MockNotifier) BillCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.BillBatches)
}

// MockEventPublisher records published WebSocket events
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []websocket.Event
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) Publish(event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
}

// Types returns the type of every published event in order
func (m *MockEventPublisher) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.Type
	}
	return types
}

// MockBackupArchive keeps archived backups in memory
type MockBackupArchive struct {
	mu        sync.Mutex
	Objects   map[string][]byte
	ArchiveFn func(name string, data []byte) (string, error)
}

func NewMockBackupArchive() *MockBackupArchive {
	return &MockBackupArchive{Objects: make(map[string][]byte)}
}

func (m *MockBackupArchive) Archive(ctx context.Context, name string, data []byte) (string, error) {
	if m.ArchiveFn != nil {
		return m.ArchiveFn(name, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	location := "backups/" + name
	m.Objects[location] = data
	return location, nil
}

func (m *MockBackupArchive) URL(ctx context.Context, location string, expiry time.Duration) (string, error) {
	return "https://archive.test/" + location, nil
}
