package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/dafibh/pfd/pfd-backend/internal/repository/memory"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingBlob struct {
	getErr error
	setErr error
	text   string
}

func (f *failingBlob) Get(ctx context.Context, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	return f.text, f.text != "", nil
}

func (f *failingBlob) Set(ctx context.Context, key, text string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.text = text
	return nil
}

func newTestStore(blob BlobStore) *Store {
	return New(blob, "", zerolog.Nop())
}

func TestStore_LoadAbsentKeyYieldsDefaults(t *testing.T) {
	s := newTestStore(memory.NewBlobRepository())

	require.NoError(t, s.Load(context.Background()))

	doc := s.Snapshot()
	assert.Empty(t, doc.Accounts)
	assert.NotNil(t, doc.Transactions)
}

func TestStore_LoadUnparsableRecoversWithDefaults(t *testing.T) {
	blob := memory.NewBlobRepository()
	require.NoError(t, blob.Set(context.Background(), DefaultKey, "{not json"))
	s := newTestStore(blob)

	err := s.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrStoreRead)
	assert.Empty(t, s.Snapshot().Accounts)
}

func TestStore_LoadBlobFailureRecoversWithDefaults(t *testing.T) {
	s := newTestStore(&failingBlob{getErr: errors.New("disk gone")})

	err := s.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrStoreRead)
	assert.Empty(t, s.Snapshot().Bills)
}

func TestStore_UpdatePersistsAndNotifies(t *testing.T) {
	blob := memory.NewBlobRepository()
	s := newTestStore(blob)

	var notified *domain.Document
	s.OnCommit(func(ctx context.Context, doc *domain.Document) { notified = doc })

	err := s.Update(context.Background(), func(doc *domain.Document) error {
		doc.Accounts = append(doc.Accounts, domain.Account{ID: "a1", Name: "Wallet", Balance: decimal.NewFromInt(10)})
		return nil
	})
	require.NoError(t, err)

	require.NotNil(t, notified)
	assert.Len(t, notified.Accounts, 1)

	reloaded := newTestStore(blob)
	require.NoError(t, reloaded.Load(context.Background()))
	require.Len(t, reloaded.Snapshot().Accounts, 1)
	assert.Equal(t, "Wallet", reloaded.Snapshot().Accounts[0].Name)
}

func TestStore_UpdateFailureLeavesStateUntouched(t *testing.T) {
	s := newTestStore(memory.NewBlobRepository())
	calls := 0
	s.OnCommit(func(ctx context.Context, doc *domain.Document) { calls++ })

	err := s.Update(context.Background(), func(doc *domain.Document) error {
		doc.Accounts = append(doc.Accounts, domain.Account{ID: "a1", Name: "Wallet"})
		return domain.ErrNameRequired
	})

	assert.ErrorIs(t, err, domain.ErrNameRequired)
	assert.Empty(t, s.Snapshot().Accounts)
	assert.Equal(t, 0, calls)
}

func TestStore_PersistFailureRollsBack(t *testing.T) {
	blob := &failingBlob{setErr: errors.New("read-only")}
	s := newTestStore(blob)
	calls := 0
	s.OnCommit(func(ctx context.Context, doc *domain.Document) { calls++ })

	err := s.Update(context.Background(), func(doc *domain.Document) error {
		doc.Goals = append(doc.Goals, domain.Goal{ID: "g1", Title: "Trip", Target: decimal.NewFromInt(100)})
		return nil
	})
	assert.Error(t, err)
	assert.Empty(t, s.Snapshot().Goals)

	_, err = s.ImportMerge(context.Background(), []byte(`{"accounts": [{"id": "a1", "name": "Wallet", "balance": "5"}]}`))
	assert.Error(t, err)
	assert.Empty(t, s.Snapshot().Accounts)
	assert.Equal(t, 0, calls)

	blob.setErr = nil
	require.NoError(t, s.Update(context.Background(), func(doc *domain.Document) error {
		doc.Goals = append(doc.Goals, domain.Goal{ID: "g1", Title: "Trip", Target: decimal.NewFromInt(100)})
		return nil
	}))
	assert.Len(t, s.Snapshot().Goals, 1)
	assert.Equal(t, 1, calls)
}

func TestStore_PanickingUpdateReleasesLock(t *testing.T) {
	s := newTestStore(memory.NewBlobRepository())

	assert.Panics(t, func() {
		_ = s.Update(context.Background(), func(doc *domain.Document) error {
			panic("boom")
		})
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Reset(context.Background())
		s.Snapshot()
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("store stayed locked after a panicking update")
	}
}

func TestStore_ImportMergeEmptyObject(t *testing.T) {
	s := newTestStore(memory.NewBlobRepository())
	require.NoError(t, s.Update(context.Background(), func(doc *domain.Document) error {
		doc.Accounts = append(doc.Accounts, domain.Account{ID: "a1", Name: "Wallet"})
		return nil
	}))

	doc, err := s.ImportMerge(context.Background(), []byte(`{}`))
	require.NoError(t, err)

	assert.Empty(t, doc.Accounts)
	assert.Empty(t, doc.Transactions)
	assert.Empty(t, doc.Goals)
	assert.Empty(t, doc.Budgets)
	assert.Empty(t, doc.Bills)
	assert.Empty(t, s.Snapshot().Accounts)
}

func TestStore_ImportMergeRejectsNonObject(t *testing.T) {
	s := newTestStore(memory.NewBlobRepository())
	require.NoError(t, s.Update(context.Background(), func(doc *domain.Document) error {
		doc.Accounts = append(doc.Accounts, domain.Account{ID: "a1", Name: "Wallet"})
		return nil
	}))

	for _, input := range []string{`[1,2]`, `"text"`, `42`, `null`, ``} {
		_, err := s.ImportMerge(context.Background(), []byte(input))
		assert.ErrorIs(t, err, domain.ErrInvalidFormat, "input %q", input)
	}
	assert.Len(t, s.Snapshot().Accounts, 1)
}

func TestStore_ExportImportRoundTrip(t *testing.T) {
	s := newTestStore(memory.NewBlobRepository())
	accountID := "a1"
	require.NoError(t, s.Update(context.Background(), func(doc *domain.Document) error {
		doc.Accounts = append(doc.Accounts, domain.Account{ID: accountID, Name: "Wallet", Balance: decimal.RequireFromString("-12.50")})
		doc.Transactions = append(doc.Transactions, domain.Transaction{
			ID:        "t1",
			Type:      domain.TransactionTypeExpense,
			Amount:    decimal.RequireFromString("12.50"),
			Date:      mustDate(t, "2026-03-01"),
			AccountID: &accountID,
			Category:  "food",
		})
		doc.Bills = append(doc.Bills, domain.Bill{ID: "b1", Name: "Rent", Amount: decimal.NewFromInt(500), Due: mustDate(t, "2026-03-05")})
		return nil
	}))
	before := s.Snapshot()

	exported, err := s.Export()
	require.NoError(t, err)
	require.NoError(t, s.Reset(context.Background()))
	assert.Empty(t, s.Snapshot().Accounts)

	_, err = s.ImportMerge(context.Background(), exported)
	require.NoError(t, err)

	after := s.Snapshot()
	require.Len(t, after.Accounts, 1)
	assert.True(t, before.Accounts[0].Balance.Equal(after.Accounts[0].Balance))
	require.Len(t, after.Transactions, 1)
	assert.Equal(t, before.Transactions[0].Date, after.Transactions[0].Date)
	assert.Equal(t, "a1", *after.Transactions[0].AccountID)
	assert.Equal(t, before.Bills[0].Due, after.Bills[0].Due)
}

func mustDate(t *testing.T, s string) civil.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}
