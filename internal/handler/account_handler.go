package handler

import (
	"net/http"

	"github.com/dafibh/pfd/pfd-backend/internal/middleware"
	"github.com/dafibh/pfd/pfd-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// AccountRequest represents the create and update account request body
type AccountRequest struct {
	Name    string `json:"name"`
	Balance Amount `json:"balance" swaggertype:"string"`
}

// CreateAccount handles POST /api/v1/accounts
// @Summary Create an account
// @Description Create an account. A missing or malformed balance starts at zero.
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AccountRequest true "Account"
// @Success 201 {object} domain.Account
// @Failure 400 {object} ProblemDetails
// @Router /accounts [post]
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	var req AccountRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	account, err := h.accountService.CreateAccount(c.Request().Context(), req.Name, string(req.Balance))
	if err != nil {
		return handleServiceError(c, err, "Failed to create account")
	}

	log.Info().Str("subject", middleware.GetSubject(c)).Str("account_id", account.ID).Str("name", account.Name).Msg("Account created")
	return c.JSON(http.StatusCreated, account)
}

// GetAccounts handles GET /api/v1/accounts
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Account
// @Router /accounts [get]
func (h *AccountHandler) GetAccounts(c echo.Context) error {
	return c.JSON(http.StatusOK, h.accountService.GetAccounts())
}

// GetAccount handles GET /api/v1/accounts/:id
// @Summary Get an account
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 200 {object} domain.Account
// @Failure 404 {object} ProblemDetails
// @Router /accounts/{id} [get]
func (h *AccountHandler) GetAccount(c echo.Context) error {
	account, err := h.accountService.GetAccountByID(c.Param("id"))
	if err != nil {
		return handleServiceError(c, err, "Failed to get account")
	}
	return c.JSON(http.StatusOK, account)
}

// UpdateAccount handles PUT /api/v1/accounts/:id
// @Summary Update an account
// @Description Replace an account's name and balance
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Param request body AccountRequest true "Account"
// @Success 200 {object} domain.Account
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /accounts/{id} [put]
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	var req AccountRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	account, err := h.accountService.UpdateAccount(c.Request().Context(), c.Param("id"), req.Name, string(req.Balance))
	if err != nil {
		return handleServiceError(c, err, "Failed to update account")
	}
	return c.JSON(http.StatusOK, account)
}

// DeleteAccount handles DELETE /api/v1/accounts/:id
// @Summary Delete an account
// @Description Delete an account and every transaction linked to it
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 200 {object} domain.AccountDeletion
// @Failure 404 {object} ProblemDetails
// @Router /accounts/{id} [delete]
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	deletion, err := h.accountService.DeleteAccount(c.Request().Context(), c.Param("id"))
	if err != nil {
		return handleServiceError(c, err, "Failed to delete account")
	}

	log.Info().
		Str("account_id", deletion.Account.ID).
		Int("transactions_deleted", len(deletion.DeletedTransactionIDs)).
		Msg("Account deleted")
	return c.JSON(http.StatusOK, deletion)
}
