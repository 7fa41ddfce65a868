package domain

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestSignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(250)
	assert.True(t, SignedAmount(TransactionTypeIncome, amount).Equal(decimal.NewFromInt(250)))
	assert.True(t, SignedAmount(TransactionTypeExpense, amount).Equal(decimal.NewFromInt(-250)))
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "food", NormalizeCategory("  Food "))
	assert.Equal(t, DefaultCategory, NormalizeCategory(""))
	assert.Equal(t, DefaultCategory, NormalizeCategory("   "))
}

func TestTransactionFilter_Matches(t *testing.T) {
	tx := Transaction{
		ID:        "t1",
		Type:      TransactionTypeExpense,
		AccountID: strPtr("a1"),
		Category:  "food",
		Payee:     "Corner Cafe",
		Note:      "Lunch with team",
	}
	unlinked := Transaction{ID: "t2", Type: TransactionTypeIncome, Category: "salary"}

	tests := []struct {
		name   string
		filter TransactionFilter
		tx     Transaction
		want   bool
	}{
		{"empty filter", TransactionFilter{}, tx, true},
		{"all filter", TransactionFilter{AccountID: FilterAll, Type: FilterAll}, tx, true},
		{"account match", TransactionFilter{AccountID: "a1"}, tx, true},
		{"account mismatch", TransactionFilter{AccountID: "a2"}, tx, false},
		{"account filter excludes unlinked", TransactionFilter{AccountID: "a1"}, unlinked, false},
		{"type mismatch", TransactionFilter{Type: "income"}, tx, false},
		{"query on payee is case-insensitive", TransactionFilter{Query: "CAFE"}, tx, true},
		{"query on note", TransactionFilter{Query: "team"}, tx, true},
		{"query miss", TransactionFilter{Query: "rent"}, tx, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(tt.tx))
		})
	}
}

func TestDocumentClone_IsDeep(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	doc := NewDocument()
	doc.Accounts = append(doc.Accounts, Account{ID: "a1", Name: "Wallet", Balance: decimal.NewFromInt(100)})
	doc.Transactions = append(doc.Transactions, Transaction{
		ID:        "t1",
		Type:      TransactionTypeIncome,
		Amount:    decimal.NewFromInt(5),
		Date:      civil.DateOf(created),
		AccountID: strPtr("a1"),
		CreatedAt: &created,
	})

	clone := doc.Clone()
	clone.Accounts[0].Name = "Changed"
	*clone.Transactions[0].AccountID = "a2"

	assert.Equal(t, "Wallet", doc.Accounts[0].Name)
	require.NotNil(t, doc.Transactions[0].AccountID)
	assert.Equal(t, "a1", *doc.Transactions[0].AccountID)
}

func TestDocumentClone_NormalizesNilCollections(t *testing.T) {
	clone := (&Document{}).Clone()
	assert.NotNil(t, clone.Accounts)
	assert.NotNil(t, clone.Transactions)
	assert.NotNil(t, clone.Goals)
	assert.NotNil(t, clone.Budgets)
	assert.NotNil(t, clone.Bills)
}

func TestBill_PaymentCategory(t *testing.T) {
	assert.Equal(t, "bill:rent", Bill{Name: "Rent"}.PaymentCategory())
}
