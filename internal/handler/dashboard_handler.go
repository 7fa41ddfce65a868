package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/dafibh/pfd/pfd-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// DashboardHandler handles dashboard aggregation requests
type DashboardHandler struct {
	aggregationService *service.AggregationService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(aggregationService *service.AggregationService) *DashboardHandler {
	return &DashboardHandler{aggregationService: aggregationService}
}

// CategorySpendResponse is one category's spending this month
type CategorySpendResponse struct {
	Category string          `json:"category"`
	Spent    decimal.Decimal `json:"spent" swaggertype:"string"`
}

// GetSummary handles GET /api/v1/dashboard/summary
// @Summary Get dashboard summary
// @Description Net balance, this month's income and expense, and exceeded budgets
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.DashboardSummary
// @Router /dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c echo.Context) error {
	return c.JSON(http.StatusOK, h.aggregationService.GetSummary())
}

// GetMonthlyTotals handles GET /api/v1/dashboard/months/:year/:month
// @Summary Get income and expense for a month
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {object} domain.MonthlyTotals
// @Failure 400 {object} ProblemDetails
// @Router /dashboard/months/{year}/{month} [get]
func (h *DashboardHandler) GetMonthlyTotals(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 {
		return NewValidationError(c, "Invalid year", []ValidationError{{Field: "year", Message: "Must be a valid year"}})
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		return NewValidationError(c, "Invalid month", []ValidationError{{Field: "month", Message: "Must be between 1 and 12"}})
	}
	return c.JSON(http.StatusOK, h.aggregationService.GetMonthlyTotals(year, time.Month(month)))
}

// GetCurrentMonthTotals handles GET /api/v1/dashboard/months/current
// @Summary Get income and expense for the current month
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.MonthlyTotals
// @Router /dashboard/months/current [get]
func (h *DashboardHandler) GetCurrentMonthTotals(c echo.Context) error {
	today := h.aggregationService.Today()
	return c.JSON(http.StatusOK, h.aggregationService.GetMonthlyTotals(today.Year, today.Month))
}

// GetSeries handles GET /api/v1/dashboard/series
// @Summary Get the six-month income and expense series
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param asOf query string false "Last month of the series (YYYY-MM-DD), default today"
// @Success 200 {array} domain.MonthPoint
// @Failure 400 {object} ProblemDetails
// @Router /dashboard/series [get]
func (h *DashboardHandler) GetSeries(c echo.Context) error {
	var asOf *civil.Date
	if raw := strings.TrimSpace(c.QueryParam("asOf")); raw != "" {
		d, err := domain.ParseDate(raw)
		if err != nil {
			return handleServiceError(c, err, "")
		}
		asOf = &d
	}
	return c.JSON(http.StatusOK, h.aggregationService.GetSeries(asOf))
}

// GetCategoryTotals handles GET /api/v1/dashboard/categories
// @Summary Get all-time expense totals per category
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.CategoryTotal
// @Router /dashboard/categories [get]
func (h *DashboardHandler) GetCategoryTotals(c echo.Context) error {
	return c.JSON(http.StatusOK, h.aggregationService.GetCategoryTotals())
}

// GetCategorySpend handles GET /api/v1/dashboard/categories/:category/spend
// @Summary Get this month's spending in a category
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param category path string true "Category"
// @Success 200 {object} CategorySpendResponse
// @Router /dashboard/categories/{category}/spend [get]
func (h *DashboardHandler) GetCategorySpend(c echo.Context) error {
	category := domain.NormalizeCategory(c.Param("category"))
	return c.JSON(http.StatusOK, CategorySpendResponse{
		Category: category,
		Spent:    h.aggregationService.GetCategoryMonthSpend(category),
	})
}

// GetRangeTotals handles GET /api/v1/dashboard/range
// @Summary Get totals for an inclusive date range
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} domain.RangeTotals
// @Failure 400 {object} ProblemDetails
// @Router /dashboard/range [get]
func (h *DashboardHandler) GetRangeTotals(c echo.Context) error {
	from, err := domain.ParseDate(c.QueryParam("from"))
	if err != nil {
		return handleServiceError(c, err, "")
	}
	to, err := domain.ParseDate(c.QueryParam("to"))
	if err != nil {
		return handleServiceError(c, err, "")
	}

	totals, err := h.aggregationService.GetRangeTotals(from, to)
	if err != nil {
		return handleServiceError(c, err, "Failed to compute range totals")
	}
	return c.JSON(http.StatusOK, totals)
}
