package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/dafibh/pfd/pfd-backend/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertCheck_FoodBudgetExample(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	budget, err := f.budgets.CreateBudget(ctx, "food", dec("150"))
	require.NoError(t, err)
	f.createTx(t, domain.TransactionTypeExpense, 200, nil, "food", "")

	alerts := f.alerts.Check(ctx)
	require.Len(t, alerts, 1)
	assert.Equal(t, budget.ID, alerts[0].BudgetID)
	assert.Equal(t, "food", alerts[0].Category)
	assert.True(t, alerts[0].Spent.Equal(dec("200")))
	assert.True(t, alerts[0].Limit.Equal(dec("150")))

	require.Equal(t, 1, f.notifier.AlertCount())
	assert.Equal(t, alerts, f.notifier.AlertBatches[0])
	assert.Contains(t, f.events.Types(), "budget.exceeded")
}

func TestAlertCheck_NothingExceeded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.budgets.CreateBudget(ctx, "food", dec("150"))
	require.NoError(t, err)
	f.createTx(t, domain.TransactionTypeExpense, 150, nil, "food", "")
	// Last month's spending does not count
	f.createTx(t, domain.TransactionTypeExpense, 500, nil, "food", "2026-02-27")

	assert.Empty(t, f.alerts.Check(ctx))
	assert.Zero(t, f.notifier.AlertCount())
	assert.NotContains(t, f.events.Types(), "budget.exceeded")
}

func TestAlertCheck_ZeroCooldownRepeats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.budgets.CreateBudget(ctx, "food", dec("150"))
	require.NoError(t, err)
	f.createTx(t, domain.TransactionTypeExpense, 200, nil, "food", "")

	f.alerts.Check(ctx)
	f.alerts.Check(ctx)
	assert.Equal(t, 2, f.notifier.AlertCount())
}

func TestAlertCheck_Cooldown(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alerts := NewAlertService(f.store, f.clock, f.notifier, zerolog.Nop(), time.Hour)

	budget, err := f.budgets.CreateBudget(ctx, "food", dec("150"))
	require.NoError(t, err)
	tx := f.createTx(t, domain.TransactionTypeExpense, 200, nil, "food", "")

	assert.Len(t, alerts.Check(ctx), 1)
	assert.Empty(t, alerts.Check(ctx))

	f.clock.Advance(61 * time.Minute)
	assert.Len(t, alerts.Check(ctx), 1)

	// Dropping back under the limit clears the cooldown
	_, err = f.transactions.DeleteTransaction(ctx, tx.Transaction.ID)
	require.NoError(t, err)
	assert.Empty(t, alerts.Check(ctx))
	f.createTx(t, domain.TransactionTypeExpense, 300, nil, "food", "")
	fired := alerts.Check(ctx)
	require.Len(t, fired, 1)
	assert.Equal(t, budget.ID, fired[0].BudgetID)
	assert.Equal(t, 3, f.notifier.AlertCount())
}

func TestAlertOnCommit(t *testing.T) {
	st, _ := testutil.NewTestStore()
	clock := testutil.NewFixedClock()
	ids := testutil.NewSequentialIDGenerator()
	notifier := testutil.NewMockNotifier()
	alerts := NewAlertService(st, clock, notifier, zerolog.Nop(), 0)
	st.OnCommit(alerts.OnCommit())

	budgets := NewBudgetService(st, ids, clock)
	transactions := NewTransactionService(st, ids, clock)
	ctx := context.Background()

	_, err := budgets.CreateBudget(ctx, "food", dec("150"))
	require.NoError(t, err)
	assert.Zero(t, notifier.AlertCount())

	_, err = transactions.CreateTransaction(ctx, CreateTransactionInput{
		Type:     domain.TransactionTypeExpense,
		Amount:   dec("200"),
		Category: "food",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, notifier.AlertCount())
}

func TestAlertCheck_NotifierFailureIsLogged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.notifier.NotifyErr = errors.New("broker down")
	_, err := f.budgets.CreateBudget(ctx, "food", dec("150"))
	require.NoError(t, err)
	f.createTx(t, domain.TransactionTypeExpense, 200, nil, "food", "")

	assert.Len(t, f.alerts.Check(ctx), 1)
	assert.Contains(t, f.events.Types(), "budget.exceeded")
}
