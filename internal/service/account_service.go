package service

import (
	"context"
	"strings"

	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/dafibh/pfd/pfd-backend/internal/store"
	"github.com/dafibh/pfd/pfd-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// AccountService handles account-related business logic
type AccountService struct {
	eventSource
	store *store.Store
	ids   domain.IDGenerator
}

// NewAccountService creates a new AccountService
func NewAccountService(st *store.Store, ids domain.IDGenerator) *AccountService {
	return &AccountService{store: st, ids: ids}
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return "", domain.ErrNameTooLong
	}
	return name, nil
}

// CreateAccount creates an account. A balance that is not a valid number
// becomes zero.
func (s *AccountService) CreateAccount(ctx context.Context, name, initialBalance string) (*domain.Account, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	balance, ok := parseAmount(initialBalance)
	if !ok {
		balance = decimal.Zero
	}

	account := domain.Account{
		ID:      s.ids.NewID(),
		Name:    name,
		Balance: balance,
	}

	err = s.store.Update(ctx, func(doc *domain.Document) error {
		doc.Accounts = append(doc.Accounts, account)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeCreated, websocket.EntityTypeAccount, account))
	return &account, nil
}

// GetAccounts retrieves all accounts in creation order
func (s *AccountService) GetAccounts() []domain.Account {
	return s.store.Snapshot().Accounts
}

// GetAccountByID retrieves an account by ID
func (s *AccountService) GetAccountByID(id string) (*domain.Account, error) {
	var account *domain.Account
	s.store.View(func(doc *domain.Document) {
		if i := doc.FindAccount(id); i >= 0 {
			a := doc.Accounts[i]
			account = &a
		}
	})
	if account == nil {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}

// UpdateAccount replaces an account's name and balance. The balance is set
// directly without creating a transaction.
func (s *AccountService) UpdateAccount(ctx context.Context, id, name, balance string) (*domain.Account, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	newBalance, ok := parseAmount(balance)
	if !ok {
		return nil, domain.ErrInvalidBalance
	}

	var updated domain.Account
	err = s.store.Update(ctx, func(doc *domain.Document) error {
		i := doc.FindAccount(id)
		if i < 0 {
			return domain.ErrAccountNotFound
		}
		doc.Accounts[i].Name = name
		doc.Accounts[i].Balance = newBalance
		updated = doc.Accounts[i]
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeUpdated, websocket.EntityTypeAccount, updated))
	return &updated, nil
}

// DeleteAccount removes an account and every transaction linked to it
func (s *AccountService) DeleteAccount(ctx context.Context, id string) (*domain.AccountDeletion, error) {
	var result domain.AccountDeletion
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		i := doc.FindAccount(id)
		if i < 0 {
			return domain.ErrAccountNotFound
		}
		result.Account = doc.Accounts[i]
		doc.Accounts = append(doc.Accounts[:i], doc.Accounts[i+1:]...)

		result.DeletedTransactionIDs = []string{}
		kept := doc.Transactions[:0]
		for _, t := range doc.Transactions {
			if t.AccountID != nil && *t.AccountID == id {
				result.DeletedTransactionIDs = append(result.DeletedTransactionIDs, t.ID)
				continue
			}
			kept = append(kept, t)
		}
		doc.Transactions = kept
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeDeleted, websocket.EntityTypeAccount, result))
	return &result, nil
}
