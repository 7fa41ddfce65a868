package handler

import (
	"net/http"

	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/dafibh/pfd/pfd-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// BudgetHandler handles monthly budget HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// BudgetRequest represents the create and update budget request body
type BudgetRequest struct {
	Category string `json:"category"`
	Amount   Amount `json:"amount" swaggertype:"string"`
}

// CreateBudget handles POST /api/v1/budgets
// @Summary Create a budget
// @Description Create a monthly spending limit for a category
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BudgetRequest true "Budget"
// @Success 201 {object} domain.Budget
// @Failure 400 {object} ProblemDetails
// @Router /budgets [post]
func (h *BudgetHandler) CreateBudget(c echo.Context) error {
	var req BudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, ok := parseMoney(string(req.Amount))
	if !ok {
		return handleServiceError(c, domain.ErrInvalidAmount, "")
	}

	budget, err := h.budgetService.CreateBudget(c.Request().Context(), req.Category, amount)
	if err != nil {
		return handleServiceError(c, err, "Failed to create budget")
	}
	return c.JSON(http.StatusCreated, budget)
}

// GetBudgets handles GET /api/v1/budgets
// @Summary List budgets with this month's spending
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.BudgetStatus
// @Router /budgets [get]
func (h *BudgetHandler) GetBudgets(c echo.Context) error {
	return c.JSON(http.StatusOK, h.budgetService.GetBudgets())
}

// UpdateBudget handles PUT /api/v1/budgets/:id
// @Summary Update a budget
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Budget ID"
// @Param request body BudgetRequest true "Budget"
// @Success 200 {object} domain.Budget
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c echo.Context) error {
	var req BudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, ok := parseMoney(string(req.Amount))
	if !ok {
		return handleServiceError(c, domain.ErrInvalidAmount, "")
	}

	budget, err := h.budgetService.UpdateBudget(c.Request().Context(), c.Param("id"), req.Category, amount)
	if err != nil {
		return handleServiceError(c, err, "Failed to update budget")
	}
	return c.JSON(http.StatusOK, budget)
}

// DeleteBudget handles DELETE /api/v1/budgets/:id
// @Summary Delete a budget
// @Tags budgets
// @Security BearerAuth
// @Param id path string true "Budget ID"
// @Success 204 "No Content"
// @Failure 404 {object} ProblemDetails
// @Router /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	if err := h.budgetService.DeleteBudget(c.Request().Context(), c.Param("id")); err != nil {
		return handleServiceError(c, err, "Failed to delete budget")
	}
	return c.NoContent(http.StatusNoContent)
}
