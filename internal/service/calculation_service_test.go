package service

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetBalance_LinkedTransactionCountedOnce(t *testing.T) {
	f := newFixture(t)
	wallet := f.createAccount(t, "Wallet", "1000")
	f.createAccount(t, "Bank", "500")

	before := f.aggregation.GetNetBalance()
	assert.True(t, before.Equal(dec("1500")))
	unlinked := unlinkedTerm(f.store.Snapshot())

	// The linked expense reaches net through the wallet balance only
	f.createTx(t, domain.TransactionTypeExpense, 200, &wallet.ID, "food", "")
	assert.True(t, f.balance(t, wallet.ID).Equal(dec("800")))
	assert.True(t, f.aggregation.GetNetBalance().Equal(before.Sub(dec("200"))), "got %s", f.aggregation.GetNetBalance())
	assert.True(t, unlinkedTerm(f.store.Snapshot()).Equal(unlinked))

	f.createTx(t, domain.TransactionTypeExpense, 40, nil, "misc", "")
	assert.True(t, f.aggregation.GetNetBalance().Equal(dec("1260")))

	f.createTx(t, domain.TransactionTypeIncome, 60, nil, "gift", "")
	assert.True(t, f.aggregation.GetNetBalance().Equal(dec("1320")))
	assert.True(t, unlinkedTerm(f.store.Snapshot()).Equal(dec("20")))
}

// unlinkedTerm is the part of net balance contributed by transactions
// without an account
func unlinkedTerm(doc *domain.Document) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range doc.Transactions {
		if !t.HasAccount() {
			sum = sum.Add(t.SignedAmount())
		}
	}
	return sum
}

func TestWalletFoodExample(t *testing.T) {
	f := newFixture(t)
	wallet := f.createAccount(t, "Wallet", "1000")

	f.createTx(t, domain.TransactionTypeExpense, 200, &wallet.ID, "food", "")

	assert.True(t, f.balance(t, wallet.ID).Equal(dec("800")))
	assert.True(t, f.aggregation.GetCategoryMonthSpend("food").Equal(dec("200")))
}

func TestCategoryMonthSpend_OnlyCurrentMonthExpenses(t *testing.T) {
	f := newFixture(t)

	f.createTx(t, domain.TransactionTypeExpense, 30, nil, "food", "2026-03-02")
	f.createTx(t, domain.TransactionTypeExpense, 70, nil, "food", "2026-02-28")
	f.createTx(t, domain.TransactionTypeIncome, 50, nil, "food", "2026-03-03")
	f.createTx(t, domain.TransactionTypeExpense, 5, nil, "fuel", "2026-03-03")

	assert.True(t, f.aggregation.GetCategoryMonthSpend("food").Equal(dec("30")))
}

func TestMonthlyTotals(t *testing.T) {
	f := newFixture(t)
	f.createTx(t, domain.TransactionTypeIncome, 1000, nil, "salary", "2026-03-01")
	f.createTx(t, domain.TransactionTypeExpense, 250, nil, "rent", "2026-03-31")
	f.createTx(t, domain.TransactionTypeExpense, 99, nil, "rent", "2026-04-01")

	totals := f.aggregation.GetMonthlyTotals(2026, time.March)
	assert.True(t, totals.Income.Equal(dec("1000")))
	assert.True(t, totals.Expense.Equal(dec("250")))

	summary := f.aggregation.GetSummary()
	assert.True(t, summary.MonthlyIncome.Equal(dec("1000")))
	assert.True(t, summary.MonthlyExpense.Equal(dec("250")))
	assert.True(t, summary.NetBalance.Equal(dec("651")))
	assert.Empty(t, summary.Alerts)
}

func TestSixMonthSeries(t *testing.T) {
	f := newFixture(t)
	f.createTx(t, domain.TransactionTypeIncome, 100, nil, "salary", "2026-03-02")
	f.createTx(t, domain.TransactionTypeExpense, 40, nil, "food", "2026-01-15")
	f.createTx(t, domain.TransactionTypeExpense, 10, nil, "food", "2025-10-01")
	f.createTx(t, domain.TransactionTypeExpense, 999, nil, "old", "2025-09-30")
	f.createTx(t, domain.TransactionTypeExpense, 999, nil, "future", "2026-04-01")

	series := f.aggregation.GetSeries(nil)
	require.Len(t, series, 6)

	labels := make([]string, len(series))
	for i, p := range series {
		labels[i] = p.Label
	}
	assert.Equal(t, []string{"Oct 2025", "Nov 2025", "Dec 2025", "Jan 2026", "Feb 2026", "Mar 2026"}, labels)

	assert.True(t, series[0].Expense.Equal(dec("10")))
	assert.True(t, series[3].Expense.Equal(dec("40")))
	assert.True(t, series[5].Income.Equal(dec("100")))
	assert.True(t, series[5].Expense.IsZero())

	asOf := civil.Date{Year: 2026, Month: time.April, Day: 1}
	shifted := f.aggregation.GetSeries(&asOf)
	assert.Equal(t, "Apr 2026", shifted[5].Label)
	assert.True(t, shifted[5].Expense.Equal(dec("999")))
}

func TestCategoryTotals_FirstSeenOrder(t *testing.T) {
	f := newFixture(t)
	f.createTx(t, domain.TransactionTypeExpense, 10, nil, "fuel", "2026-01-01")
	f.createTx(t, domain.TransactionTypeExpense, 20, nil, "food", "2026-02-01")
	f.createTx(t, domain.TransactionTypeIncome, 500, nil, "salary", "2026-02-01")
	f.createTx(t, domain.TransactionTypeExpense, 5, nil, "fuel", "2026-03-01")

	totals := f.aggregation.GetCategoryTotals()
	require.Len(t, totals, 2)
	assert.Equal(t, "fuel", totals[0].Category)
	assert.True(t, totals[0].Total.Equal(dec("15")))
	assert.Equal(t, "food", totals[1].Category)
}

func TestRangeTotals_Inclusive(t *testing.T) {
	f := newFixture(t)
	f.createTx(t, domain.TransactionTypeIncome, 100, nil, "", "2026-03-01")
	f.createTx(t, domain.TransactionTypeExpense, 30, nil, "", "2026-03-10")
	f.createTx(t, domain.TransactionTypeExpense, 7, nil, "", "2026-03-11")

	from := civil.Date{Year: 2026, Month: time.March, Day: 1}
	to := civil.Date{Year: 2026, Month: time.March, Day: 10}
	totals, err := f.aggregation.GetRangeTotals(from, to)
	require.NoError(t, err)

	assert.True(t, totals.Income.Equal(dec("100")))
	assert.True(t, totals.Expense.Equal(dec("30")))
	assert.True(t, totals.Net.Equal(dec("70")))

	_, err = f.aggregation.GetRangeTotals(to, from)
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestUpcomingBills_Window(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.bills.CreateBill(ctx, "Overdue", dec("10"), "2026-03-01")
	require.NoError(t, err)
	_, err = f.bills.CreateBill(ctx, "Edge", dec("10"), "2026-03-18")
	require.NoError(t, err)
	_, err = f.bills.CreateBill(ctx, "Later", dec("10"), "2026-03-19")
	require.NoError(t, err)

	upcoming := f.bills.GetUpcomingBills(domain.DefaultReminderDays)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "Overdue", upcoming[0].Name)
	assert.Equal(t, "Edge", upcoming[1].Name)
}
