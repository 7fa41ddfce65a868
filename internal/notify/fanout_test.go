package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/dafibh/pfd/pfd-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestFanout_DispatchesToAll(t *testing.T) {
	a, b := testutil.NewMockNotifier(), testutil.NewMockNotifier()
	f := Fanout{a, b}

	alerts := []domain.BudgetAlert{{BudgetID: "b1", Category: "food"}}
	assert.NoError(t, f.NotifyBudgetAlerts(context.Background(), alerts))
	assert.NoError(t, f.NotifyUpcomingBills(context.Background(), []domain.Bill{{ID: "x"}}))

	assert.Equal(t, 1, a.AlertCount())
	assert.Equal(t, 1, b.AlertCount())
	assert.Equal(t, 1, a.BillCount())
	assert.Equal(t, 1, b.BillCount())
}

func TestFanout_ContinuesAfterFailure(t *testing.T) {
	failing := testutil.NewMockNotifier()
	failing.NotifyErr = errors.New("unreachable")
	ok := testutil.NewMockNotifier()

	err := Fanout{failing, ok}.NotifyBudgetAlerts(context.Background(), []domain.BudgetAlert{{BudgetID: "b1"}})
	assert.ErrorContains(t, err, "unreachable")
	assert.Equal(t, 1, ok.AlertCount())
}

func TestOf(t *testing.T) {
	assert.Nil(t, Of())
	assert.Nil(t, Of(nil, nil))

	single := testutil.NewMockNotifier()
	assert.Same(t, single, Of(nil, single))

	assert.Len(t, Of(single, testutil.NewMockNotifier()), 2)
}
