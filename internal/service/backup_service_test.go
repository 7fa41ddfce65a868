package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/dafibh/pfd/pfd-backend/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupFilename(t *testing.T) {
	assert.Equal(t, "pfd-backup-2026-03-15T09:30:00Z.json", BackupFilename(testutil.DefaultNow))
}

func TestExport(t *testing.T) {
	f := newFixture(t)
	wallet := f.createAccount(t, "Wallet", "100")
	f.createTx(t, domain.TransactionTypeExpense, 20, &wallet.ID, "food", "")

	backup, err := f.backups.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pfd-backup-2026-03-15T09:30:00Z.json", backup.Filename)
	assert.Empty(t, backup.Location)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(backup.Data, &raw))
	assert.ElementsMatch(t, []string{"accounts", "transactions", "goals", "budgets", "bills"}, keys(raw))
}

func TestExportImport_RoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	wallet := f.createAccount(t, "Wallet", "100")
	f.createTx(t, domain.TransactionTypeExpense, 20, &wallet.ID, "food", "2026-03-10")
	_, err := f.goals.CreateGoal(ctx, "Trip", dec("500"))
	require.NoError(t, err)
	_, err = f.budgets.CreateBudget(ctx, "food", dec("150"))
	require.NoError(t, err)
	_, err = f.bills.CreateBill(ctx, "Rent", dec("700"), "2026-03-20")
	require.NoError(t, err)
	before := f.store.Snapshot()

	backup, err := f.backups.Export(ctx)
	require.NoError(t, err)
	require.NoError(t, f.backups.Reset(ctx))
	assert.Empty(t, f.store.Snapshot().Accounts)

	doc, err := f.backups.Import(ctx, backup.Data)
	require.NoError(t, err)
	codec := f.store.Codec()
	want, err := codec.Encode(before)
	require.NoError(t, err)
	got, err := codec.Encode(doc)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
	got, err = codec.Encode(f.store.Snapshot())
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
	assert.Contains(t, f.events.Types(), "document.reset")
	assert.Contains(t, f.events.Types(), "document.imported")
}

func TestImport_EmptyObjectGivesDefaults(t *testing.T) {
	f := newFixture(t)
	f.createAccount(t, "Wallet", "100")

	doc, err := f.backups.Import(context.Background(), []byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, doc.Accounts)
	assert.Empty(t, doc.Transactions)
	assert.Empty(t, doc.Goals)
	assert.Empty(t, doc.Budgets)
	assert.Empty(t, doc.Bills)
	assert.Empty(t, f.accounts.GetAccounts())
}

func TestImport_PartialKeepsDefaults(t *testing.T) {
	f := newFixture(t)

	doc, err := f.backups.Import(context.Background(), []byte(`{"goals":[{"id":"g1","title":"Trip","target":"500","saved":"0"}]}`))
	require.NoError(t, err)
	require.Len(t, doc.Goals, 1)
	assert.Equal(t, "Trip", doc.Goals[0].Title)
	assert.Empty(t, doc.Accounts)
}

func TestImport_InvalidLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t)
	f.createAccount(t, "Wallet", "100")
	before := f.store.Snapshot()

	for _, input := range []string{`[1,2,3]`, `"text"`, `not json`, `{"accounts":`} {
		_, err := f.backups.Import(context.Background(), []byte(input))
		assert.ErrorIs(t, err, domain.ErrInvalidFormat, input)
	}
	assert.Equal(t, before, f.store.Snapshot())
	assert.NotContains(t, f.events.Types(), "document.imported")
}

func TestExport_Archive(t *testing.T) {
	f := newFixture(t)
	archive := testutil.NewMockBackupArchive()
	backups := NewBackupService(f.store, f.clock, archive, zerolog.Nop())

	backup, err := backups.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "backups/"+backup.Filename, backup.Location)
	assert.Equal(t, "https://archive.test/backups/"+backup.Filename, backup.URL)
	assert.Equal(t, backup.Data, archive.Objects[backup.Location])
}

func TestExport_ArchiveFailureStillExports(t *testing.T) {
	f := newFixture(t)
	archive := testutil.NewMockBackupArchive()
	archive.ArchiveFn = func(name string, data []byte) (string, error) {
		return "", errors.New("bucket unavailable")
	}
	backups := NewBackupService(f.store, f.clock, archive, zerolog.Nop())

	backup, err := backups.Export(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, backup.Data)
	assert.Empty(t, backup.Location)
	assert.Empty(t, backup.URL)
}

func TestReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createAccount(t, "Wallet", "100")
	_, err := f.goals.CreateGoal(ctx, "Trip", dec("500"))
	require.NoError(t, err)

	require.NoError(t, f.backups.Reset(ctx))
	assert.Equal(t, domain.NewDocument(), f.store.Snapshot())
}

func keys(m map[string]json.RawMessage) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
