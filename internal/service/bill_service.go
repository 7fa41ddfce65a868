package service

import (
	"context"
	"strings"

	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/dafibh/pfd/pfd-backend/internal/store"
	"github.com/dafibh/pfd/pfd-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// BillService handles bills and their payment
type BillService struct {
	eventSource
	store *store.Store
	ids   domain.IDGenerator
	clock domain.Clock
}

// NewBillService creates a new BillService
func NewBillService(st *store.Store, ids domain.IDGenerator, clock domain.Clock) *BillService {
	return &BillService{store: st, ids: ids, clock: clock}
}

// CreateBill creates a bill. All fields are required.
func (s *BillService) CreateBill(ctx context.Context, name string, amount decimal.Decimal, due string) (*domain.Bill, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	due = strings.TrimSpace(due)
	if due == "" {
		return nil, domain.ErrDueDateRequired
	}
	dueDate, err := domain.ParseDate(due)
	if err != nil {
		return nil, err
	}

	bill := domain.Bill{
		ID:     s.ids.NewID(),
		Name:   name,
		Amount: amount,
		Due:    dueDate,
	}
	err = s.store.Update(ctx, func(doc *domain.Document) error {
		doc.Bills = append(doc.Bills, bill)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeCreated, websocket.EntityTypeBill, bill))
	return &bill, nil
}

// GetBills lists bills in creation order
func (s *BillService) GetBills() []domain.Bill {
	return s.store.Snapshot().Bills
}

// GetUpcomingBills lists bills due within withinDays of today, overdue included
func (s *BillService) GetUpcomingBills(withinDays int) []domain.Bill {
	return UpcomingBills(s.store.Snapshot(), domain.Today(s.clock), withinDays)
}

// MarkPaid settles a bill: it records an expense dated today against the
// first account (or no account when none exist), decrements that account
// and deletes the bill.
func (s *BillService) MarkPaid(ctx context.Context, id string) (*domain.BillPayment, error) {
	now := s.clock.Now()
	createdAt := now.UTC()

	var payment domain.BillPayment
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		i := doc.FindBill(id)
		if i < 0 {
			return domain.ErrBillNotFound
		}
		bill := doc.Bills[i]

		var accountID *string
		if len(doc.Accounts) > 0 {
			first := doc.Accounts[0].ID
			accountID = &first
		}

		tx := domain.Transaction{
			ID:        s.ids.NewID(),
			Type:      domain.TransactionTypeExpense,
			Amount:    bill.Amount,
			Date:      domain.Today(s.clock),
			AccountID: accountID,
			Category:  bill.PaymentCategory(),
			Payee:     bill.Name,
			Note:      domain.BillPaidNote,
			CreatedAt: &createdAt,
		}
		doc.Transactions = append(doc.Transactions, tx)
		doc.Bills = append(doc.Bills[:i], doc.Bills[i+1:]...)

		payment.Bill = bill
		payment.Transaction = tx
		payment.Account = applyToAccount(doc, accountID, tx.SignedAmount())
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypePaid, websocket.EntityTypeBill, payment))
	return &payment, nil
}

// DeleteBill removes a bill without paying it
func (s *BillService) DeleteBill(ctx context.Context, id string) error {
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		i := doc.FindBill(id)
		if i < 0 {
			return domain.ErrBillNotFound
		}
		doc.Bills = append(doc.Bills[:i], doc.Bills[i+1:]...)
		return nil
	})
	if err != nil {
		return err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeDeleted, websocket.EntityTypeBill, map[string]string{"id": id}))
	return nil
}
