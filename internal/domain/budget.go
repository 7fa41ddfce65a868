package domain

import "github.com/shopspring/decimal"

// Budget is a monthly spending limit for one category. Several budgets may
// share a category.
type Budget struct {
	ID       string          `json:"id" validate:"required"`
	Category string          `json:"category" validate:"required"`
	Amount   decimal.Decimal `json:"amount" validate:"gt=0"`
}

// BudgetStatus compares a budget with the current month's spending
type BudgetStatus struct {
	Budget
	Spent    decimal.Decimal `json:"spent"`
	Percent  int             `json:"percent"`
	Exceeded bool            `json:"exceeded"`
}

// BudgetAlert is emitted when spending in a category passes its limit
type BudgetAlert struct {
	BudgetID string          `json:"budgetId"`
	Category string          `json:"category"`
	Spent    decimal.Decimal `json:"spent"`
	Limit    decimal.Decimal `json:"limit"`
}
