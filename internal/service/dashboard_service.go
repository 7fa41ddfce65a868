package service

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/dafibh/pfd/pfd-backend/internal/store"
	"github.com/shopspring/decimal"
)

// AggregationService computes dashboard views from the current document
type AggregationService struct {
	store *store.Store
	clock domain.Clock
}

// NewAggregationService creates a new AggregationService
func NewAggregationService(st *store.Store, clock domain.Clock) *AggregationService {
	return &AggregationService{store: st, clock: clock}
}

// GetSummary returns net balance, this month's totals and active budget alerts
func (s *AggregationService) GetSummary() *domain.DashboardSummary {
	doc := s.store.Snapshot()
	today := domain.Today(s.clock)
	month := CalculateMonthlyTotals(doc, today.Year, today.Month)

	return &domain.DashboardSummary{
		NetBalance:     NetBalance(doc),
		MonthlyIncome:  month.Income,
		MonthlyExpense: month.Expense,
		Alerts:         BudgetAlerts(doc, today),
	}
}

// GetNetBalance returns the overall net balance
func (s *AggregationService) GetNetBalance() decimal.Decimal {
	return NetBalance(s.store.Snapshot())
}

// GetMonthlyTotals returns income and expense for a month
func (s *AggregationService) GetMonthlyTotals(year int, month time.Month) domain.MonthlyTotals {
	return CalculateMonthlyTotals(s.store.Snapshot(), year, month)
}

// GetCategoryMonthSpend returns this month's expenses in category
func (s *AggregationService) GetCategoryMonthSpend(category string) decimal.Decimal {
	return CategoryMonthSpend(s.store.Snapshot(), category, domain.Today(s.clock))
}

// GetSeries returns the six-month chart series ending at asOf, or today when
// asOf is nil.
func (s *AggregationService) GetSeries(asOf *civil.Date) []domain.MonthPoint {
	date := domain.Today(s.clock)
	if asOf != nil {
		date = *asOf
	}
	return SixMonthSeries(s.store.Snapshot(), date)
}

// GetCategoryTotals returns all-time expense totals per category
func (s *AggregationService) GetCategoryTotals() []domain.CategoryTotal {
	return CategoryTotals(s.store.Snapshot())
}

// GetRangeTotals returns totals for an inclusive date range
func (s *AggregationService) GetRangeTotals(from, to civil.Date) (domain.RangeTotals, error) {
	if from.After(to) {
		return domain.RangeTotals{}, domain.ErrInvalidRange
	}
	return CalculateRangeTotals(s.store.Snapshot(), from, to), nil
}

// Today returns the service clock's current date
func (s *AggregationService) Today() civil.Date {
	return domain.Today(s.clock)
}
