package handler

import (
	"net/http"

	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/dafibh/pfd/pfd-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the create transaction request body
type CreateTransactionRequest struct {
	Type      string  `json:"type" example:"expense"`
	Amount    Amount  `json:"amount" swaggertype:"string" example:"150.00"`
	Date      string  `json:"date,omitempty" example:"2026-03-15"`
	AccountID *string `json:"accountId,omitempty"`
	Category  string  `json:"category,omitempty"`
	Payee     string  `json:"payee,omitempty"`
	Note      string  `json:"note,omitempty"`
}

// UpdateTransactionRequest represents the update transaction request body
type UpdateTransactionRequest struct {
	Amount   Amount `json:"amount" swaggertype:"string"`
	Category string `json:"category"`
	Payee    string `json:"payee"`
	Note     string `json:"note"`
}

// ClearTransactionsResponse reports how many transactions were removed
type ClearTransactionsResponse struct {
	Deleted int `json:"deleted"`
}

// CreateTransaction handles POST /api/v1/transactions
// @Summary Create a transaction
// @Description Record an income or expense. A linked account's balance moves by the signed amount.
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTransactionRequest true "Transaction creation request"
// @Success 201 {object} domain.TransactionResult
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, ok := parseMoney(string(req.Amount))
	if !ok {
		return invalidAmount(c, "amount")
	}

	result, err := h.transactionService.CreateTransaction(c.Request().Context(), service.CreateTransactionInput{
		Type:      domain.TransactionType(req.Type),
		Amount:    amount,
		Date:      req.Date,
		AccountID: req.AccountID,
		Category:  req.Category,
		Payee:     req.Payee,
		Note:      req.Note,
	})
	if err != nil {
		return handleServiceError(c, err, "Failed to create transaction")
	}

	log.Info().
		Str("transaction_id", result.Transaction.ID).
		Str("type", string(result.Transaction.Type)).
		Str("amount", result.Transaction.Amount.StringFixed(2)).
		Msg("Transaction created")
	return c.JSON(http.StatusCreated, result)
}

// GetTransactions handles GET /api/v1/transactions
// @Summary List transactions
// @Description List transactions newest first with optional filters
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param accountId query string false "Filter by account ID, or all"
// @Param type query string false "income, expense or all"
// @Param q query string false "Case-insensitive search over category, payee and note"
// @Success 200 {array} domain.Transaction
// @Router /transactions [get]
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	filter := domain.TransactionFilter{
		AccountID: c.QueryParam("accountId"),
		Type:      c.QueryParam("type"),
		Query:     c.QueryParam("q"),
	}
	return c.JSON(http.StatusOK, h.transactionService.GetTransactions(filter))
}

// GetTransaction handles GET /api/v1/transactions/:id
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} domain.Transaction
// @Failure 404 {object} ProblemDetails
// @Router /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	tx, err := h.transactionService.GetTransactionByID(c.Param("id"))
	if err != nil {
		return handleServiceError(c, err, "Failed to get transaction")
	}
	return c.JSON(http.StatusOK, tx)
}

// UpdateTransaction handles PUT /api/v1/transactions/:id
// @Summary Update a transaction
// @Description Edit amount, category, payee and note. The linked account moves by the difference.
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Param request body UpdateTransactionRequest true "Transaction update request"
// @Success 200 {object} domain.TransactionResult
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	var req UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, ok := parseMoney(string(req.Amount))
	if !ok {
		return invalidAmount(c, "amount")
	}

	result, err := h.transactionService.UpdateTransaction(c.Request().Context(), c.Param("id"), service.UpdateTransactionInput{
		Amount:   amount,
		Category: req.Category,
		Payee:    req.Payee,
		Note:     req.Note,
	})
	if err != nil {
		return handleServiceError(c, err, "Failed to update transaction")
	}
	return c.JSON(http.StatusOK, result)
}

// DeleteTransaction handles DELETE /api/v1/transactions/:id
// @Summary Delete a transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} domain.TransactionResult
// @Failure 404 {object} ProblemDetails
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	result, err := h.transactionService.DeleteTransaction(c.Request().Context(), c.Param("id"))
	if err != nil {
		return handleServiceError(c, err, "Failed to delete transaction")
	}
	return c.JSON(http.StatusOK, result)
}

// ClearTransactions handles DELETE /api/v1/transactions
// @Summary Clear all transactions
// @Description Remove every transaction, reversing account balances when delete reversal is enabled
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ClearTransactionsResponse
// @Router /transactions [delete]
func (h *TransactionHandler) ClearTransactions(c echo.Context) error {
	n, err := h.transactionService.ClearTransactions(c.Request().Context())
	if err != nil {
		return handleServiceError(c, err, "Failed to clear transactions")
	}

	log.Info().Int("deleted", n).Msg("Transactions cleared")
	return c.JSON(http.StatusOK, ClearTransactionsResponse{Deleted: n})
}
