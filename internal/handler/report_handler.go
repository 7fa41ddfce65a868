package handler

import (
	"net/http"

	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/dafibh/pfd/pfd-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// ReportHandler handles report generation and download
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GenerateReportRequest represents the generate report request body
type GenerateReportRequest struct {
	Range string `json:"range" example:"monthly" enums:"monthly,quarter,year,custom"`
	From  string `json:"from,omitempty" example:"2026-01-01"`
	To    string `json:"to,omitempty" example:"2026-01-31"`
}

// GenerateReport handles POST /api/v1/reports
// @Summary Generate a report
// @Description Compute income, expense and net for a range preset or custom dates
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GenerateReportRequest true "Report range"
// @Success 200 {object} domain.Report
// @Failure 400 {object} ProblemDetails
// @Router /reports [post]
func (h *ReportHandler) GenerateReport(c echo.Context) error {
	var req GenerateReportRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	report, err := h.reportService.GenerateReport(domain.ReportRange(req.Range), req.From, req.To)
	if err != nil {
		return handleServiceError(c, err, "Failed to generate report")
	}
	return c.JSON(http.StatusOK, report)
}

// GetLatestReport handles GET /api/v1/reports/latest
// @Summary Get the latest report
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Report
// @Failure 404 {object} ProblemDetails
// @Router /reports/latest [get]
func (h *ReportHandler) GetLatestReport(c echo.Context) error {
	report := h.reportService.GetLatestReport()
	if report == nil {
		return NewNotFoundError(c, domain.EmptyReportText)
	}
	return c.JSON(http.StatusOK, report)
}

// DownloadReport handles GET /api/v1/reports/latest/download
// @Summary Download the latest report as text
// @Tags reports
// @Produce plain
// @Security BearerAuth
// @Success 200 {string} string
// @Router /reports/latest/download [get]
func (h *ReportHandler) DownloadReport(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+h.reportService.Filename()+`"`)
	return c.String(http.StatusOK, h.reportService.RenderText())
}
