package domain

import (
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// DefaultCategory is assigned when a transaction is recorded without one
const DefaultCategory = "uncategorized"

// FilterAll matches every account or type in a TransactionFilter
const FilterAll = "all"

// Valid reports whether t is one of the known transaction types
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

type Transaction struct {
	ID        string          `json:"id" validate:"required"`
	Type      TransactionType `json:"type" validate:"oneof=income expense"`
	Amount    decimal.Decimal `json:"amount" validate:"gt=0"`
	Date      civil.Date      `json:"date" validate:"required"`
	AccountID *string         `json:"accountId"`
	Category  string          `json:"category"`
	Payee     string          `json:"payee"`
	Note      string          `json:"note"`
	CreatedAt *time.Time      `json:"createdAt,omitempty"`
}

// SignedAmount is the transaction's contribution to a balance: positive for
// income, negative for expense.
func (t Transaction) SignedAmount() decimal.Decimal {
	return SignedAmount(t.Type, t.Amount)
}

// Copy returns t with its pointer fields duplicated
func (t Transaction) Copy() Transaction {
	if t.AccountID != nil {
		id := *t.AccountID
		t.AccountID = &id
	}
	if t.CreatedAt != nil {
		ts := *t.CreatedAt
		t.CreatedAt = &ts
	}
	return t
}

// HasAccount reports whether the transaction is linked to an account
func (t Transaction) HasAccount() bool {
	return t.AccountID != nil && *t.AccountID != ""
}

// SignedAmount applies the ledger sign convention to amount
func SignedAmount(txType TransactionType, amount decimal.Decimal) decimal.Decimal {
	if txType == TransactionTypeIncome {
		return amount
	}
	return amount.Neg()
}

// NormalizeCategory lowercases and trims a category, falling back to
// DefaultCategory when nothing is left.
func NormalizeCategory(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "" {
		return DefaultCategory
	}
	return c
}

// TransactionFilter narrows a transaction listing. Empty fields and FilterAll
// match everything.
type TransactionFilter struct {
	AccountID string
	Type      string
	Query     string
}

// Matches reports whether t passes every filter criterion
func (f TransactionFilter) Matches(t Transaction) bool {
	if f.AccountID != "" && f.AccountID != FilterAll {
		if t.AccountID == nil || *t.AccountID != f.AccountID {
			return false
		}
	}
	if f.Type != "" && f.Type != FilterAll && string(t.Type) != f.Type {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Category), q) ||
		strings.Contains(strings.ToLower(t.Payee), q) ||
		strings.Contains(strings.ToLower(t.Note), q)
}

// TransactionResult is returned by ledger mutations. Account holds the linked
// account after its balance was adjusted, nil when no balance changed.
type TransactionResult struct {
	Transaction Transaction `json:"transaction"`
	Account     *Account    `json:"account,omitempty"`
}
