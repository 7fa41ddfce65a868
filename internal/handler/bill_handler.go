package handler

import (
	"net/http"
	"strconv"

	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/dafibh/pfd/pfd-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// BillHandler handles bill HTTP requests
type BillHandler struct {
	billService  *service.BillService
	reminderDays int
}

// NewBillHandler creates a new BillHandler. reminderDays is the default
// look-ahead window for upcoming bills.
func NewBillHandler(billService *service.BillService, reminderDays int) *BillHandler {
	return &BillHandler{billService: billService, reminderDays: reminderDays}
}

// CreateBillRequest represents the create bill request body
type CreateBillRequest struct {
	Name   string `json:"name"`
	Amount Amount `json:"amount" swaggertype:"string"`
	Due    string `json:"due" example:"2026-03-20"`
}

// CreateBill handles POST /api/v1/bills
// @Summary Create a bill
// @Tags bills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBillRequest true "Bill"
// @Success 201 {object} domain.Bill
// @Failure 400 {object} ProblemDetails
// @Router /bills [post]
func (h *BillHandler) CreateBill(c echo.Context) error {
	var req CreateBillRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, ok := parseMoney(string(req.Amount))
	if !ok {
		return handleServiceError(c, domain.ErrInvalidAmount, "")
	}

	bill, err := h.billService.CreateBill(c.Request().Context(), req.Name, amount, req.Due)
	if err != nil {
		return handleServiceError(c, err, "Failed to create bill")
	}
	return c.JSON(http.StatusCreated, bill)
}

// GetBills handles GET /api/v1/bills
// @Summary List bills
// @Tags bills
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Bill
// @Router /bills [get]
func (h *BillHandler) GetBills(c echo.Context) error {
	return c.JSON(http.StatusOK, h.billService.GetBills())
}

// GetUpcomingBills handles GET /api/v1/bills/upcoming
// @Summary List upcoming bills
// @Description Bills due within the given number of days, overdue bills included
// @Tags bills
// @Produce json
// @Security BearerAuth
// @Param days query int false "Look-ahead window in days"
// @Success 200 {array} domain.Bill
// @Failure 400 {object} ProblemDetails
// @Router /bills/upcoming [get]
func (h *BillHandler) GetUpcomingBills(c echo.Context) error {
	days := h.reminderDays
	if raw := c.QueryParam("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "days", Message: "Must be a non-negative integer"},
			})
		}
		days = n
	}
	return c.JSON(http.StatusOK, h.billService.GetUpcomingBills(days))
}

// PayBill handles POST /api/v1/bills/:id/pay
// @Summary Mark a bill paid
// @Description Record the payment as an expense against the first account and remove the bill
// @Tags bills
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bill ID"
// @Success 200 {object} domain.BillPayment
// @Failure 404 {object} ProblemDetails
// @Router /bills/{id}/pay [post]
func (h *BillHandler) PayBill(c echo.Context) error {
	payment, err := h.billService.MarkPaid(c.Request().Context(), c.Param("id"))
	if err != nil {
		return handleServiceError(c, err, "Failed to pay bill")
	}

	log.Info().
		Str("bill_id", payment.Bill.ID).
		Str("transaction_id", payment.Transaction.ID).
		Msg("Bill paid")
	return c.JSON(http.StatusOK, payment)
}

// DeleteBill handles DELETE /api/v1/bills/:id
// @Summary Delete a bill without paying it
// @Tags bills
// @Security BearerAuth
// @Param id path string true "Bill ID"
// @Success 204 "No Content"
// @Failure 404 {object} ProblemDetails
// @Router /bills/{id} [delete]
func (h *BillHandler) DeleteBill(c echo.Context) error {
	if err := h.billService.DeleteBill(c.Request().Context(), c.Param("id")); err != nil {
		return handleServiceError(c, err, "Failed to delete bill")
	}
	return c.NoContent(http.StatusNoContent)
}
