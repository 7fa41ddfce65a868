package service

import (
	"context"
	"strings"

	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/dafibh/pfd/pfd-backend/internal/store"
	"github.com/dafibh/pfd/pfd-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// BudgetService handles monthly category budgets
type BudgetService struct {
	eventSource
	store *store.Store
	ids   domain.IDGenerator
	clock domain.Clock
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(st *store.Store, ids domain.IDGenerator, clock domain.Clock) *BudgetService {
	return &BudgetService{store: st, ids: ids, clock: clock}
}

func validateBudget(category string, amount decimal.Decimal) (string, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return "", domain.ErrCategoryRequired
	}
	if !amount.IsPositive() {
		return "", domain.ErrInvalidAmount
	}
	return category, nil
}

// CreateBudget creates a budget. Categories are stored lowercase and need
// not be unique.
func (s *BudgetService) CreateBudget(ctx context.Context, category string, amount decimal.Decimal) (*domain.Budget, error) {
	category, err := validateBudget(category, amount)
	if err != nil {
		return nil, err
	}

	budget := domain.Budget{
		ID:       s.ids.NewID(),
		Category: category,
		Amount:   amount,
	}
	err = s.store.Update(ctx, func(doc *domain.Document) error {
		doc.Budgets = append(doc.Budgets, budget)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeCreated, websocket.EntityTypeBudget, budget))
	return &budget, nil
}

// GetBudgets lists budgets with this month's spending
func (s *BudgetService) GetBudgets() []domain.BudgetStatus {
	return BudgetStatuses(s.store.Snapshot(), domain.Today(s.clock))
}

// UpdateBudget replaces a budget's category and amount
func (s *BudgetService) UpdateBudget(ctx context.Context, id, category string, amount decimal.Decimal) (*domain.Budget, error) {
	category, err := validateBudget(category, amount)
	if err != nil {
		return nil, err
	}

	var updated domain.Budget
	err = s.store.Update(ctx, func(doc *domain.Document) error {
		i := doc.FindBudget(id)
		if i < 0 {
			return domain.ErrBudgetNotFound
		}
		doc.Budgets[i].Category = category
		doc.Budgets[i].Amount = amount
		updated = doc.Budgets[i]
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeUpdated, websocket.EntityTypeBudget, updated))
	return &updated, nil
}

// DeleteBudget removes a budget
func (s *BudgetService) DeleteBudget(ctx context.Context, id string) error {
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		i := doc.FindBudget(id)
		if i < 0 {
			return domain.ErrBudgetNotFound
		}
		doc.Budgets = append(doc.Budgets[:i], doc.Budgets[i+1:]...)
		return nil
	})
	if err != nil {
		return err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeDeleted, websocket.EntityTypeBudget, map[string]string{"id": id}))
	return nil
}
