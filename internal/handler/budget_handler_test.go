package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/dafibh/pfd/pfd-backend/internal/service"
	"github.com/shopspring/decimal"
)

func TestCreateBudget_NormalizesCategory(t *testing.T) {
	env := newTestEnv()
	handler := NewBudgetHandler(env.budgets)

	c, rec := env.newRequest(http.MethodPost, "/api/v1/budgets", `{"category": " Food ", "amount": 150}`)

	if err := handler.CreateBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rec.Code)
	}

	var budget domain.Budget
	decodeBody(t, rec, &budget)
	if budget.Category != "food" {
		t.Errorf("Expected category 'food', got %q", budget.Category)
	}
}

func TestCreateBudget_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing category", `{"category": "", "amount": "100"}`},
		{"malformed amount", `{"category": "food", "amount": "abc"}`},
		{"zero amount", `{"category": "food", "amount": "0"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			handler := NewBudgetHandler(env.budgets)

			c, rec := env.newRequest(http.MethodPost, "/api/v1/budgets", tt.body)

			if err := handler.CreateBudget(c); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			expectProblem(t, rec, http.StatusBadRequest, ErrorTypeValidation)
		})
	}
}

func TestGetBudgets_MonthSpending(t *testing.T) {
	env := newTestEnv()
	handler := NewBudgetHandler(env.budgets)
	if _, err := env.budgets.CreateBudget(context.Background(), "food", decimal.NewFromInt(150)); err != nil {
		t.Fatalf("Failed to create budget: %v", err)
	}
	env.mustTransaction(t, service.CreateTransactionInput{
		Type: domain.TransactionTypeExpense, Amount: decimal.NewFromInt(200), Category: "food", Date: "2026-03-02",
	})
	// Last month does not count
	env.mustTransaction(t, service.CreateTransactionInput{
		Type: domain.TransactionTypeExpense, Amount: decimal.NewFromInt(999), Category: "food", Date: "2026-02-28",
	})

	c, rec := env.newRequest(http.MethodGet, "/api/v1/budgets", "")
	if err := handler.GetBudgets(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var statuses []domain.BudgetStatus
	decodeBody(t, rec, &statuses)
	if len(statuses) != 1 {
		t.Fatalf("Expected 1 budget, got %d", len(statuses))
	}
	status := statuses[0]
	if !status.Spent.Equal(decimal.NewFromInt(200)) {
		t.Errorf("Expected spent 200, got %s", status.Spent)
	}
	if !status.Exceeded {
		t.Error("Expected the budget to be exceeded")
	}
	if status.Percent != 100 {
		t.Errorf("Expected percent clamped at 100, got %d", status.Percent)
	}
}

func TestUpdateBudget(t *testing.T) {
	env := newTestEnv()
	handler := NewBudgetHandler(env.budgets)
	budget, _ := env.budgets.CreateBudget(context.Background(), "food", decimal.NewFromInt(150))

	c, rec := env.newRequest(http.MethodPut, "/api/v1/budgets/"+budget.ID, `{"category": "Dining", "amount": "300"}`)
	c.SetParamNames("id")
	c.SetParamValues(budget.ID)
	if err := handler.UpdateBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var updated domain.Budget
	decodeBody(t, rec, &updated)
	if updated.Category != "dining" || !updated.Amount.Equal(decimal.NewFromInt(300)) {
		t.Errorf("Expected dining/300, got %s/%s", updated.Category, updated.Amount)
	}

	c, rec = env.newRequest(http.MethodPut, "/api/v1/budgets/missing", `{"category": "food", "amount": "10"}`)
	c.SetParamNames("id")
	c.SetParamValues("missing")
	if err := handler.UpdateBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	expectProblem(t, rec, http.StatusNotFound, ErrorTypeNotFound)
}

func TestDeleteBudget(t *testing.T) {
	env := newTestEnv()
	handler := NewBudgetHandler(env.budgets)
	budget, _ := env.budgets.CreateBudget(context.Background(), "food", decimal.NewFromInt(150))

	c, rec := env.newRequest(http.MethodDelete, "/api/v1/budgets/"+budget.ID, "")
	c.SetParamNames("id")
	c.SetParamValues(budget.ID)
	if err := handler.DeleteBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}
	if n := len(env.budgets.GetBudgets()); n != 0 {
		t.Errorf("Expected no budgets, got %d", n)
	}
}
