package notify

import (
	"context"
	"errors"

	"github.com/dafibh/pfd/pfd-backend/internal/domain"
)

// Fanout dispatches to every notifier in turn. A failing notifier does not
// stop the others; their errors are joined.
type Fanout []domain.Notifier

func (f Fanout) NotifyBudgetAlerts(ctx context.Context, alerts []domain.BudgetAlert) error {
	var errs []error
	for _, n := range f {
		if err := n.NotifyBudgetAlerts(ctx, alerts); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f Fanout) NotifyUpcomingBills(ctx context.Context, bills []domain.Bill) error {
	var errs []error
	for _, n := range f {
		if err := n.NotifyUpcomingBills(ctx, bills); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Of returns a Notifier over the non-nil notifiers given, or nil when there
// are none.
func Of(notifiers ...domain.Notifier) domain.Notifier {
	var out Fanout
	for _, n := range notifiers {
		if n != nil {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return nil
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}
