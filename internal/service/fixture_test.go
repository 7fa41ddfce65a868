package service

import (
	"context"
	"testing"

	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/dafibh/pfd/pfd-backend/internal/store"
	"github.com/dafibh/pfd/pfd-backend/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// fixture wires every service to one in-memory store
type fixture struct {
	store    *store.Store
	blob     *testutil.MockBlobRepository
	clock    *testutil.FixedClock
	ids      *testutil.SequentialIDGenerator
	events   *testutil.MockEventPublisher
	notifier *testutil.MockNotifier

	accounts     *AccountService
	transactions *TransactionService
	goals        *GoalService
	budgets      *BudgetService
	bills        *BillService
	aggregation  *AggregationService
	alerts       *AlertService
	reports      *ReportService
	backups      *BackupService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st, blob := testutil.NewTestStore()
	clock := testutil.NewFixedClock()
	ids := testutil.NewSequentialIDGenerator()
	events := testutil.NewMockEventPublisher()
	notifier := testutil.NewMockNotifier()

	f := &fixture{
		store:        st,
		blob:         blob,
		clock:        clock,
		ids:          ids,
		events:       events,
		notifier:     notifier,
		accounts:     NewAccountService(st, ids),
		transactions: NewTransactionService(st, ids, clock),
		goals:        NewGoalService(st, ids),
		budgets:      NewBudgetService(st, ids, clock),
		bills:        NewBillService(st, ids, clock),
		aggregation:  NewAggregationService(st, clock),
		alerts:       NewAlertService(st, clock, notifier, zerolog.Nop(), 0),
		reports:      NewReportService(st, clock),
		backups:      NewBackupService(st, clock, nil, zerolog.Nop()),
	}
	f.accounts.SetEventPublisher(events)
	f.transactions.SetEventPublisher(events)
	f.goals.SetEventPublisher(events)
	f.budgets.SetEventPublisher(events)
	f.bills.SetEventPublisher(events)
	f.alerts.SetEventPublisher(events)
	f.backups.SetEventPublisher(events)
	return f
}

func (f *fixture) createAccount(t *testing.T, name, balance string) *domain.Account {
	t.Helper()
	a, err := f.accounts.CreateAccount(context.Background(), name, balance)
	require.NoError(t, err)
	return a
}

func (f *fixture) createTx(t *testing.T, txType domain.TransactionType, amount int64, accountID *string, category, date string) *domain.TransactionResult {
	t.Helper()
	res, err := f.transactions.CreateTransaction(context.Background(), CreateTransactionInput{
		Type:      txType,
		Amount:    decimal.NewFromInt(amount),
		Date:      date,
		AccountID: accountID,
		Category:  category,
	})
	require.NoError(t, err)
	return res
}

func (f *fixture) balance(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	a, err := f.accounts.GetAccountByID(id)
	require.NoError(t, err)
	return a.Balance
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr(s string) *string {
	return &s
}
