package domain

import "context"

// Notifier dispatches alert events to an external channel
type Notifier interface {
	NotifyBudgetAlerts(ctx context.Context, alerts []BudgetAlert) error
	NotifyUpcomingBills(ctx context.Context, bills []Bill) error
}
