package domain

import (
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Bill payment constants
const (
	BillCategoryPrefix = "bill:"
	BillPaidNote       = "Bill paid"

	// DefaultReminderDays is the look-ahead window for upcoming bills
	DefaultReminderDays = 3
)

type Bill struct {
	ID     string          `json:"id" validate:"required"`
	Name   string          `json:"name" validate:"required"`
	Amount decimal.Decimal `json:"amount" validate:"gt=0"`
	Due    civil.Date      `json:"due" validate:"required"`
}

// PaymentCategory is the transaction category recorded when the bill is paid
func (b Bill) PaymentCategory() string {
	return BillCategoryPrefix + strings.ToLower(b.Name)
}

// BillPayment describes every change made by paying a bill
type BillPayment struct {
	Bill        Bill        `json:"bill"`
	Transaction Transaction `json:"transaction"`
	Account     *Account    `json:"account,omitempty"`
}
