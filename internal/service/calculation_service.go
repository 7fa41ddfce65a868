package service

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/dafibh/pfd/pfd-backend/internal/util"
	"github.com/shopspring/decimal"
)

// The functions in this file are pure views over a document snapshot.

// NetBalance sums account balances plus the signed amounts of transactions
// without an account. Linked transactions are already reflected in balances.
func NetBalance(doc *domain.Document) decimal.Decimal {
	net := decimal.Zero
	for _, a := range doc.Accounts {
		net = net.Add(a.Balance)
	}
	for _, t := range doc.Transactions {
		if !t.HasAccount() {
			net = net.Add(t.SignedAmount())
		}
	}
	return net
}

// CalculateMonthlyTotals sums income and expense dated in the given month
func CalculateMonthlyTotals(doc *domain.Document, year int, month time.Month) domain.MonthlyTotals {
	totals := domain.MonthlyTotals{
		Year:    year,
		Month:   int(month),
		Income:  decimal.Zero,
		Expense: decimal.Zero,
	}
	for _, t := range doc.Transactions {
		if t.Date.Year != year || t.Date.Month != month {
			continue
		}
		switch t.Type {
		case domain.TransactionTypeIncome:
			totals.Income = totals.Income.Add(t.Amount)
		case domain.TransactionTypeExpense:
			totals.Expense = totals.Expense.Add(t.Amount)
		}
	}
	return totals
}

// CategoryMonthSpend sums expenses in category during the month containing today
func CategoryMonthSpend(doc *domain.Document, category string, today civil.Date) decimal.Decimal {
	spent := decimal.Zero
	for _, t := range doc.Transactions {
		if t.Type == domain.TransactionTypeExpense && t.Category == category && util.SameMonth(t.Date, today) {
			spent = spent.Add(t.Amount)
		}
	}
	return spent
}

// SixMonthSeries buckets income and expense into the six calendar months
// ending with the month of asOf, oldest first. Transactions outside that
// window, including future-dated ones, are ignored.
func SixMonthSeries(doc *domain.Document, asOf civil.Date) []domain.MonthPoint {
	points := make([]domain.MonthPoint, domain.SeriesMonths)
	for i := range points {
		y, m := util.AddMonths(asOf.Year, int(asOf.Month), i-(domain.SeriesMonths-1))
		points[i] = domain.MonthPoint{
			Label:   util.MonthLabel(y, m),
			Year:    y,
			Month:   m,
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		}
	}

	for _, t := range doc.Transactions {
		offset := util.MonthOffset(asOf, t.Date)
		if offset < 0 || offset >= domain.SeriesMonths {
			continue
		}
		p := &points[domain.SeriesMonths-1-offset]
		switch t.Type {
		case domain.TransactionTypeIncome:
			p.Income = p.Income.Add(t.Amount)
		case domain.TransactionTypeExpense:
			p.Expense = p.Expense.Add(t.Amount)
		}
	}
	return points
}

// CategoryTotals sums all-time expenses per category in first-seen order
func CategoryTotals(doc *domain.Document) []domain.CategoryTotal {
	totals := []domain.CategoryTotal{}
	index := map[string]int{}
	for _, t := range doc.Transactions {
		if t.Type != domain.TransactionTypeExpense {
			continue
		}
		i, ok := index[t.Category]
		if !ok {
			i = len(totals)
			index[t.Category] = i
			totals = append(totals, domain.CategoryTotal{Category: t.Category, Total: decimal.Zero})
		}
		totals[i].Total = totals[i].Total.Add(t.Amount)
	}
	return totals
}

// CalculateRangeTotals sums transactions dated within [from, to]
func CalculateRangeTotals(doc *domain.Document, from, to civil.Date) domain.RangeTotals {
	totals := domain.RangeTotals{
		From:    from,
		To:      to,
		Income:  decimal.Zero,
		Expense: decimal.Zero,
	}
	for _, t := range doc.Transactions {
		if !util.InRange(t.Date, from, to) {
			continue
		}
		switch t.Type {
		case domain.TransactionTypeIncome:
			totals.Income = totals.Income.Add(t.Amount)
		case domain.TransactionTypeExpense:
			totals.Expense = totals.Expense.Add(t.Amount)
		}
	}
	totals.Net = totals.Income.Sub(totals.Expense)
	return totals
}

// BudgetAlerts returns one alert per budget whose category spend this month
// is strictly greater than its limit.
func BudgetAlerts(doc *domain.Document, today civil.Date) []domain.BudgetAlert {
	alerts := []domain.BudgetAlert{}
	for _, b := range doc.Budgets {
		spent := CategoryMonthSpend(doc, b.Category, today)
		if spent.GreaterThan(b.Amount) {
			alerts = append(alerts, domain.BudgetAlert{
				BudgetID: b.ID,
				Category: b.Category,
				Spent:    spent,
				Limit:    b.Amount,
			})
		}
	}
	return alerts
}

// BudgetStatuses reports this month's spending against every budget
func BudgetStatuses(doc *domain.Document, today civil.Date) []domain.BudgetStatus {
	statuses := make([]domain.BudgetStatus, 0, len(doc.Budgets))
	for _, b := range doc.Budgets {
		spent := CategoryMonthSpend(doc, b.Category, today)
		statuses = append(statuses, domain.BudgetStatus{
			Budget:   b,
			Spent:    spent,
			Percent:  domain.ProgressPercent(spent, b.Amount),
			Exceeded: spent.GreaterThan(b.Amount),
		})
	}
	return statuses
}

// GoalProgress pairs every goal with its clamped completion percentage
func GoalProgress(doc *domain.Document) []domain.GoalProgress {
	progress := make([]domain.GoalProgress, 0, len(doc.Goals))
	for _, g := range doc.Goals {
		progress = append(progress, domain.GoalProgress{
			Goal:    g,
			Percent: domain.ProgressPercent(g.Saved, g.Target),
		})
	}
	return progress
}

// UpcomingBills returns bills due on or before today plus withinDays,
// overdue bills included.
func UpcomingBills(doc *domain.Document, today civil.Date, withinDays int) []domain.Bill {
	limit := today.AddDays(withinDays)
	bills := []domain.Bill{}
	for _, b := range doc.Bills {
		if !b.Due.After(limit) {
			bills = append(bills, b)
		}
	}
	return bills
}
