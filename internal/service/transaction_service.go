package service

import (
	"context"
	"sort"
	"strings"

	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/dafibh/pfd/pfd-backend/internal/store"
	"github.com/dafibh/pfd/pfd-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// TransactionService handles ledger entries and keeps linked account
// balances consistent with them.
type TransactionService struct {
	eventSource
	store *store.Store
	ids   domain.IDGenerator
	clock domain.Clock

	// ReverseOnDelete undoes a deleted transaction's effect on its account
	ReverseOnDelete bool
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(st *store.Store, ids domain.IDGenerator, clock domain.Clock) *TransactionService {
	return &TransactionService{
		store:           st,
		ids:             ids,
		clock:           clock,
		ReverseOnDelete: true,
	}
}

// CreateTransactionInput holds the input for recording a transaction
type CreateTransactionInput struct {
	Type      domain.TransactionType
	Amount    decimal.Decimal
	Date      string // YYYY-MM-DD; empty means today
	AccountID *string
	Category  string
	Payee     string
	Note      string
}

// UpdateTransactionInput holds the editable fields of a transaction
type UpdateTransactionInput struct {
	Amount   decimal.Decimal
	Category string
	Payee    string
	Note     string
}

// applyToAccount adds delta to the balance of accountID when that account
// exists and returns the updated account.
func applyToAccount(doc *domain.Document, accountID *string, delta decimal.Decimal) *domain.Account {
	if accountID == nil || *accountID == "" {
		return nil
	}
	i := doc.FindAccount(*accountID)
	if i < 0 {
		return nil
	}
	doc.Accounts[i].Balance = doc.Accounts[i].Balance.Add(delta)
	a := doc.Accounts[i]
	return &a
}

// CreateTransaction records a transaction and adjusts its linked account
func (s *TransactionService) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.TransactionResult, error) {
	if !input.Type.Valid() {
		return nil, domain.ErrInvalidTransactionType
	}
	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	date := domain.Today(s.clock)
	if strings.TrimSpace(input.Date) != "" {
		parsed, err := domain.ParseDate(strings.TrimSpace(input.Date))
		if err != nil {
			return nil, err
		}
		date = parsed
	}

	var accountID *string
	if input.AccountID != nil && strings.TrimSpace(*input.AccountID) != "" {
		id := strings.TrimSpace(*input.AccountID)
		accountID = &id
	}

	createdAt := s.clock.Now().UTC()
	tx := domain.Transaction{
		ID:        s.ids.NewID(),
		Type:      input.Type,
		Amount:    input.Amount,
		Date:      date,
		AccountID: accountID,
		Category:  domain.NormalizeCategory(input.Category),
		Payee:     strings.TrimSpace(input.Payee),
		Note:      strings.TrimSpace(input.Note),
		CreatedAt: &createdAt,
	}

	result := domain.TransactionResult{Transaction: tx}
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		if accountID != nil && doc.FindAccount(*accountID) < 0 {
			return domain.ErrAccountNotFound
		}
		doc.Transactions = append(doc.Transactions, tx)
		result.Account = applyToAccount(doc, accountID, tx.SignedAmount())
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeCreated, websocket.EntityTypeTransaction, result))
	return &result, nil
}

// GetTransactions lists transactions matching filter, newest date first.
// Transactions sharing a date keep their recorded order.
func (s *TransactionService) GetTransactions(filter domain.TransactionFilter) []domain.Transaction {
	doc := s.store.Snapshot()

	matched := make([]domain.Transaction, 0, len(doc.Transactions))
	for _, t := range doc.Transactions {
		if filter.Matches(t) {
			matched = append(matched, t)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date.After(matched[j].Date)
	})
	return matched
}

// GetTransactionByID retrieves a transaction by ID
func (s *TransactionService) GetTransactionByID(id string) (*domain.Transaction, error) {
	var tx *domain.Transaction
	s.store.View(func(doc *domain.Document) {
		if i := doc.FindTransaction(id); i >= 0 {
			t := doc.Transactions[i].Copy()
			tx = &t
		}
	})
	if tx == nil {
		return nil, domain.ErrTransactionNotFound
	}
	return tx, nil
}

// UpdateTransaction edits a transaction. The linked account moves by the
// difference between the old and new contribution, so repeating the same
// edit leaves the balance unchanged.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id string, input UpdateTransactionInput) (*domain.TransactionResult, error) {
	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	var result domain.TransactionResult
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		i := doc.FindTransaction(id)
		if i < 0 {
			return domain.ErrTransactionNotFound
		}

		old := doc.Transactions[i]
		updated := old
		updated.Amount = input.Amount
		updated.Category = domain.NormalizeCategory(input.Category)
		updated.Payee = strings.TrimSpace(input.Payee)
		updated.Note = strings.TrimSpace(input.Note)
		doc.Transactions[i] = updated

		delta := updated.SignedAmount().Sub(old.SignedAmount())
		result.Transaction = updated
		if !delta.IsZero() {
			result.Account = applyToAccount(doc, updated.AccountID, delta)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeUpdated, websocket.EntityTypeTransaction, result))
	return &result, nil
}

// DeleteTransaction removes a transaction. When ReverseOnDelete is set the
// linked account's balance is restored.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id string) (*domain.TransactionResult, error) {
	var result domain.TransactionResult
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		i := doc.FindTransaction(id)
		if i < 0 {
			return domain.ErrTransactionNotFound
		}
		result.Transaction = doc.Transactions[i]
		doc.Transactions = append(doc.Transactions[:i], doc.Transactions[i+1:]...)

		if s.ReverseOnDelete {
			result.Account = applyToAccount(doc, result.Transaction.AccountID, result.Transaction.SignedAmount().Neg())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeDeleted, websocket.EntityTypeTransaction, result))
	return &result, nil
}

// ClearTransactions removes every transaction, following the same balance
// policy as DeleteTransaction. It returns the number removed.
func (s *TransactionService) ClearTransactions(ctx context.Context) (int, error) {
	removed := 0
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		removed = len(doc.Transactions)
		if s.ReverseOnDelete {
			for _, t := range doc.Transactions {
				applyToAccount(doc, t.AccountID, t.SignedAmount().Neg())
			}
		}
		doc.Transactions = []domain.Transaction{}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeCleared, websocket.EntityTypeTransaction, map[string]int{"removed": removed}))
	return removed, nil
}
