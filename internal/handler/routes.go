package handler

import (
	"net/http"

	"github.com/dafibh/pfd/pfd-backend/internal/middleware"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Handlers groups every API handler for route registration
type Handlers struct {
	Account     *AccountHandler
	Transaction *TransactionHandler
	Goal        *GoalHandler
	Budget      *BudgetHandler
	Bill        *BillHandler
	Dashboard   *DashboardHandler
	Alert       *AlertHandler
	Report      *ReportHandler
	Backup      *BackupHandler
	WebSocket   *WebSocketHandler
}

// RegisterRoutes sets up all API routes. rateLimiter may be nil.
func RegisterRoutes(e *echo.Echo, auth *middleware.DualAuthMiddleware, rateLimiter *middleware.RateLimiter, h Handlers) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// API docs
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/openapi.json", ServeOpenAPI3Spec)

	// WebSocket authenticates through its token query parameter
	if h.WebSocket != nil {
		e.GET("/ws", h.WebSocket.HandleWS)
	}

	// API version 1
	api := e.Group("/api/v1")
	api.Use(auth.Authenticate())
	if rateLimiter != nil {
		api.Use(middleware.RateLimitMiddleware(rateLimiter))
	}

	accounts := api.Group("/accounts")
	accounts.POST("", h.Account.CreateAccount)
	accounts.GET("", h.Account.GetAccounts)
	accounts.GET("/:id", h.Account.GetAccount)
	accounts.PUT("/:id", h.Account.UpdateAccount)
	accounts.DELETE("/:id", h.Account.DeleteAccount)

	transactions := api.Group("/transactions")
	transactions.POST("", h.Transaction.CreateTransaction)
	transactions.GET("", h.Transaction.GetTransactions)
	transactions.DELETE("", h.Transaction.ClearTransactions)
	transactions.GET("/:id", h.Transaction.GetTransaction)
	transactions.PUT("/:id", h.Transaction.UpdateTransaction)
	transactions.DELETE("/:id", h.Transaction.DeleteTransaction)

	goals := api.Group("/goals")
	goals.POST("", h.Goal.CreateGoal)
	goals.GET("", h.Goal.GetGoals)
	goals.POST("/:id/funds", h.Goal.AddFunds)
	goals.DELETE("/:id", h.Goal.DeleteGoal)

	budgets := api.Group("/budgets")
	budgets.POST("", h.Budget.CreateBudget)
	budgets.GET("", h.Budget.GetBudgets)
	budgets.PUT("/:id", h.Budget.UpdateBudget)
	budgets.DELETE("/:id", h.Budget.DeleteBudget)

	bills := api.Group("/bills")
	bills.POST("", h.Bill.CreateBill)
	bills.GET("", h.Bill.GetBills)
	bills.GET("/upcoming", h.Bill.GetUpcomingBills)
	bills.POST("/:id/pay", h.Bill.PayBill)
	bills.DELETE("/:id", h.Bill.DeleteBill)

	dashboard := api.Group("/dashboard")
	dashboard.GET("/summary", h.Dashboard.GetSummary)
	dashboard.GET("/months/current", h.Dashboard.GetCurrentMonthTotals)
	dashboard.GET("/months/:year/:month", h.Dashboard.GetMonthlyTotals)
	dashboard.GET("/series", h.Dashboard.GetSeries)
	dashboard.GET("/categories", h.Dashboard.GetCategoryTotals)
	dashboard.GET("/categories/:category/spend", h.Dashboard.GetCategorySpend)
	dashboard.GET("/range", h.Dashboard.GetRangeTotals)

	alerts := api.Group("/alerts")
	alerts.GET("", h.Alert.GetAlerts)
	alerts.POST("/check", h.Alert.CheckAlerts)

	reports := api.Group("/reports")
	reports.POST("", h.Report.GenerateReport)
	reports.GET("/latest", h.Report.GetLatestReport)
	reports.GET("/latest/download", h.Report.DownloadReport)

	backup := api.Group("/backup")
	backup.GET("/export", h.Backup.Export)
	backup.POST("/import", h.Backup.Import)
	backup.POST("/reset", h.Backup.Reset)
}
