package handler

import (
	"net/http"

	"github.com/dafibh/pfd/pfd-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// AlertHandler exposes budget alerts
type AlertHandler struct {
	alertService *service.AlertService
}

// NewAlertHandler creates a new AlertHandler
func NewAlertHandler(alertService *service.AlertService) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

// GetAlerts handles GET /api/v1/alerts
// @Summary List exceeded budgets
// @Tags alerts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.BudgetAlert
// @Router /alerts [get]
func (h *AlertHandler) GetAlerts(c echo.Context) error {
	return c.JSON(http.StatusOK, h.alertService.GetAlerts())
}

// CheckAlerts handles POST /api/v1/alerts/check
// @Summary Run an alert check now
// @Description Dispatch alerts for exceeded budgets to the configured notifiers
// @Tags alerts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.BudgetAlert
// @Router /alerts/check [post]
func (h *AlertHandler) CheckAlerts(c echo.Context) error {
	return c.JSON(http.StatusOK, h.alertService.Check(c.Request().Context()))
}
