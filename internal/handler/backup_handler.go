package handler

import (
	"io"
	"net/http"

	"github.com/dafibh/pfd/pfd-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// MaxImportSize bounds the accepted import body
const MaxImportSize = 32 << 20

// BackupHandler handles export, import and reset of the whole ledger
type BackupHandler struct {
	backupService *service.BackupService
}

// NewBackupHandler creates a new BackupHandler
func NewBackupHandler(backupService *service.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// ImportResponse reports the record counts after an import
type ImportResponse struct {
	Accounts     int `json:"accounts"`
	Transactions int `json:"transactions"`
	Goals        int `json:"goals"`
	Budgets      int `json:"budgets"`
	Bills        int `json:"bills"`
}

// Export handles GET /api/v1/backup/export
// @Summary Export all data
// @Description Download the full ledger as JSON. When a backup sink is configured the export is archived and its link returned in X-Backup-Url.
// @Tags backup
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Document
// @Router /backup/export [get]
func (h *BackupHandler) Export(c echo.Context) error {
	backup, err := h.backupService.Export(c.Request().Context())
	if err != nil {
		return handleServiceError(c, err, "Failed to export data")
	}

	header := c.Response().Header()
	header.Set(echo.HeaderContentDisposition, `attachment; filename="`+backup.Filename+`"`)
	if backup.Location != "" {
		header.Set("X-Backup-Location", backup.Location)
	}
	if backup.URL != "" {
		header.Set("X-Backup-Url", backup.URL)
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, backup.Data)
}

// Import handles POST /api/v1/backup/import
// @Summary Import data
// @Description Replace all data with an exported document. Missing keys become empty; anything but a JSON object is rejected.
// @Tags backup
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.Document true "Exported document"
// @Success 200 {object} ImportResponse
// @Failure 400 {object} ProblemDetails
// @Router /backup/import [post]
func (h *BackupHandler) Import(c echo.Context) error {
	data, err := io.ReadAll(io.LimitReader(c.Request().Body, MaxImportSize))
	if err != nil {
		return NewValidationError(c, "Failed to read request body", nil)
	}

	doc, err := h.backupService.Import(c.Request().Context(), data)
	if err != nil {
		return handleServiceError(c, err, "Failed to import data")
	}

	resp := ImportResponse{
		Accounts:     len(doc.Accounts),
		Transactions: len(doc.Transactions),
		Goals:        len(doc.Goals),
		Budgets:      len(doc.Budgets),
		Bills:        len(doc.Bills),
	}
	log.Info().
		Int("accounts", resp.Accounts).
		Int("transactions", resp.Transactions).
		Msg("Data imported")
	return c.JSON(http.StatusOK, resp)
}

// Reset handles POST /api/v1/backup/reset
// @Summary Reset all data
// @Tags backup
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /backup/reset [post]
func (h *BackupHandler) Reset(c echo.Context) error {
	if err := h.backupService.Reset(c.Request().Context()); err != nil {
		return handleServiceError(c, err, "Failed to reset data")
	}

	log.Warn().Msg("All data reset")
	return c.NoContent(http.StatusNoContent)
}
