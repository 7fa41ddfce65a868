package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dafibh/pfd/pfd-backend/internal/config"
	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/dafibh/pfd/pfd-backend/internal/handler"
	"github.com/dafibh/pfd/pfd-backend/internal/middleware"
	"github.com/dafibh/pfd/pfd-backend/internal/notify"
	"github.com/dafibh/pfd/pfd-backend/internal/service"
	"github.com/dafibh/pfd/pfd-backend/internal/store"
	"github.com/dafibh/pfd/pfd-backend/internal/websocket"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// @title PFD API
// @version 1.0
// @description Personal finance ledger: accounts, transactions, goals, budgets, bills and reports.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Auth0 JWT or pfd_ API token, as "Bearer <token>"
func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Persistence
	persist, err := openPersistence(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open store backend")
	}
	defer persist.Close()

	st := store.New(persist.blob, cfg.StoreKey, log.Logger)
	if err := st.Load(ctx); err != nil {
		// The default document is installed; keep serving
		log.Error().Err(err).Msg("Failed to load ledger, starting empty")
	}

	// Notifiers
	var notifiers []domain.Notifier
	if cfg.AMQP.URL != "" {
		publisher, err := notify.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue, log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to AMQP broker")
		}
		defer publisher.Close()
		notifiers = append(notifiers, publisher)
		log.Info().Str("queue", cfg.AMQP.Queue).Msg("Publishing alerts to AMQP")
	}
	notifier := notify.Of(notifiers...)

	// Initialize services
	clock := domain.SystemClock{}
	ids := domain.UUIDGenerator{}

	accountService := service.NewAccountService(st, ids)
	transactionService := service.NewTransactionService(st, ids, clock)
	transactionService.ReverseOnDelete = cfg.ReverseOnDelete
	goalService := service.NewGoalService(st, ids)
	budgetService := service.NewBudgetService(st, ids, clock)
	billService := service.NewBillService(st, ids, clock)
	aggregationService := service.NewAggregationService(st, clock)
	alertService := service.NewAlertService(st, clock, notifier, log.Logger, cfg.AlertCooldown)
	reportService := service.NewReportService(st, clock)
	backupService := service.NewBackupService(st, clock, persist.archive, log.Logger)
	reminderWorker := service.NewReminderWorker(billService, alertService, notifier, log.Logger, service.ReminderWorkerConfig{
		Interval:   cfg.ReminderInterval,
		WithinDays: cfg.BillReminderDays,
	})

	st.OnCommit(alertService.OnCommit())

	// Initialize WebSocket hub and wire it into services
	hub := websocket.NewHub()
	accountService.SetEventPublisher(hub)
	transactionService.SetEventPublisher(hub)
	goalService.SetEventPublisher(hub)
	budgetService.SetEventPublisher(hub)
	billService.SetEventPublisher(hub)
	alertService.SetEventPublisher(hub)
	backupService.SetEventPublisher(hub)
	reminderWorker.SetEventPublisher(hub)

	// Initialize auth middleware
	var jwtAuth *middleware.AuthMiddleware
	var wsValidators websocket.AnyValidator
	if cfg.Auth0Enabled() {
		jwtAuth, err = middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create auth middleware")
		}
		wsJWT, err := websocket.NewAuth0JWTValidator(cfg.Auth0Domain, cfg.Auth0Audience)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create WebSocket JWT validator")
		}
		wsValidators = append(wsValidators, wsJWT)
	}
	var apiTokenAuth *middleware.APITokenAuthMiddleware
	if cfg.APIToken != "" {
		apiTokenAuth = middleware.NewAPITokenAuthMiddleware(cfg.APIToken)
		wsValidators = append(wsValidators, websocket.NewStaticTokenValidator(cfg.APIToken))
	}
	dualAuth := middleware.NewDualAuthMiddleware(jwtAuth, apiTokenAuth)
	if dualAuth.Open() {
		log.Warn().Msg("No authentication configured, API is open to local use")
	}

	var wsValidator websocket.TokenValidator
	if len(wsValidators) > 0 {
		wsValidator = wsValidators
	}

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitPerMinute > 0 {
		rateLimiter = middleware.NewRateLimiterWithConfig(cfg.RateLimitPerMinute, middleware.DefaultBurstSize)
		defer rateLimiter.Stop()
	}

	// Initialize handlers
	handlers := handler.Handlers{
		Account:     handler.NewAccountHandler(accountService),
		Transaction: handler.NewTransactionHandler(transactionService),
		Goal:        handler.NewGoalHandler(goalService),
		Budget:      handler.NewBudgetHandler(budgetService),
		Bill:        handler.NewBillHandler(billService, cfg.BillReminderDays),
		Dashboard:   handler.NewDashboardHandler(aggregationService),
		Alert:       handler.NewAlertHandler(alertService),
		Report:      handler.NewReportHandler(reportService),
		Backup:      handler.NewBackupHandler(backupService),
		WebSocket:   handler.NewWebSocketHandler(hub, wsValidator, cfg.CORSOrigins),
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders:    []string{"X-Backup-Location", "X-Backup-Url", echo.HeaderContentDisposition},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Register API routes
	handler.RegisterRoutes(e, dualAuth, rateLimiter, handlers)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		reminderWorker.Start(gctx)
		<-gctx.Done()
		reminderWorker.Stop()
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server stopped with error")
	}

	// Flush anything written after the last commit
	saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := st.Save(saveCtx); err != nil {
		log.Error().Err(err).Msg("Failed to save ledger on shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
