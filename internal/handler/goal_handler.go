package handler

import (
	"net/http"

	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/dafibh/pfd/pfd-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// GoalHandler handles savings goal HTTP requests
type GoalHandler struct {
	goalService *service.GoalService
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// CreateGoalRequest represents the create goal request body
type CreateGoalRequest struct {
	Title  string `json:"title"`
	Target Amount `json:"target" swaggertype:"string"`
}

// AddFundsRequest represents the add funds request body
type AddFundsRequest struct {
	Amount Amount `json:"amount" swaggertype:"string"`
}

// CreateGoal handles POST /api/v1/goals
// @Summary Create a savings goal
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateGoalRequest true "Goal"
// @Success 201 {object} domain.Goal
// @Failure 400 {object} ProblemDetails
// @Router /goals [post]
func (h *GoalHandler) CreateGoal(c echo.Context) error {
	var req CreateGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	target, ok := parseMoney(string(req.Target))
	if !ok {
		return handleServiceError(c, domain.ErrInvalidTarget, "")
	}

	goal, err := h.goalService.CreateGoal(c.Request().Context(), req.Title, target)
	if err != nil {
		return handleServiceError(c, err, "Failed to create goal")
	}
	return c.JSON(http.StatusCreated, goal)
}

// GetGoals handles GET /api/v1/goals
// @Summary List savings goals with progress
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.GoalProgress
// @Router /goals [get]
func (h *GoalHandler) GetGoals(c echo.Context) error {
	return c.JSON(http.StatusOK, h.goalService.GetGoals())
}

// AddFunds handles POST /api/v1/goals/:id/funds
// @Summary Add funds to a goal
// @Description Add to a goal's savings. Non-positive amounts change nothing.
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Param request body AddFundsRequest true "Funds"
// @Success 200 {object} domain.GoalProgress
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /goals/{id}/funds [post]
func (h *GoalHandler) AddFunds(c echo.Context) error {
	var req AddFundsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, ok := parseMoney(string(req.Amount))
	if !ok {
		return invalidAmount(c, "amount")
	}

	progress, err := h.goalService.AddFunds(c.Request().Context(), c.Param("id"), amount)
	if err != nil {
		return handleServiceError(c, err, "Failed to add funds")
	}
	return c.JSON(http.StatusOK, progress)
}

// DeleteGoal handles DELETE /api/v1/goals/:id
// @Summary Delete a goal
// @Tags goals
// @Security BearerAuth
// @Param id path string true "Goal ID"
// @Success 204 "No Content"
// @Failure 404 {object} ProblemDetails
// @Router /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c echo.Context) error {
	if err := h.goalService.DeleteGoal(c.Request().Context(), c.Param("id")); err != nil {
		return handleServiceError(c, err, "Failed to delete goal")
	}
	return c.NoContent(http.StatusNoContent)
}
