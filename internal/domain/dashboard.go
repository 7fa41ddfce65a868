package domain

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// SeriesMonths is the number of months in the dashboard chart series
const SeriesMonths = 6

// MonthlyTotals holds income and expense for one calendar month
type MonthlyTotals struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// MonthPoint is one bucket of the income/expense chart series
type MonthPoint struct {
	Label   string          `json:"label"`
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// CategoryTotal is the all-time expense total for a category
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// RangeTotals aggregates transactions dated within an inclusive range
type RangeTotals struct {
	From    civil.Date      `json:"from"`
	To      civil.Date      `json:"to"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// DashboardSummary contains the headline dashboard metrics
type DashboardSummary struct {
	NetBalance     decimal.Decimal `json:"netBalance"`
	MonthlyIncome  decimal.Decimal `json:"monthlyIncome"`
	MonthlyExpense decimal.Decimal `json:"monthlyExpense"`
	Alerts         []BudgetAlert   `json:"alerts"`
}
