package service

import (
	"context"
	"sync"
	"time"

	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/dafibh/pfd/pfd-backend/internal/websocket"
	"github.com/rs/zerolog"
)

// ReminderWorker is a background worker that periodically reports upcoming
// bills and runs a budget alert check
type ReminderWorker struct {
	eventSource
	billService  *BillService
	alertService *AlertService
	notifier     domain.Notifier
	logger       zerolog.Logger
	interval     time.Duration
	withinDays   int
	stopCh       chan struct{}
	doneCh       chan struct{}
	mu           sync.Mutex
	running      bool
}

// ReminderWorkerConfig holds configuration for the reminder worker
type ReminderWorkerConfig struct {
	Interval   time.Duration // How often to check
	WithinDays int           // Look-ahead window for upcoming bills
}

// DefaultReminderWorkerConfig returns sensible defaults
func DefaultReminderWorkerConfig() ReminderWorkerConfig {
	return ReminderWorkerConfig{
		Interval:   1 * time.Hour,
		WithinDays: domain.DefaultReminderDays,
	}
}

// ReminderResult is the outcome of one reminder cycle
type ReminderResult struct {
	UpcomingBills []domain.Bill
	Alerts        []domain.BudgetAlert
}

// NewReminderWorker creates a new reminder worker. notifier may be nil.
func NewReminderWorker(
	billService *BillService,
	alertService *AlertService,
	notifier domain.Notifier,
	logger zerolog.Logger,
	config ReminderWorkerConfig,
) *ReminderWorker {
	if config.Interval <= 0 {
		config.Interval = 1 * time.Hour
	}
	if config.WithinDays < 0 {
		config.WithinDays = domain.DefaultReminderDays
	}

	return &ReminderWorker{
		billService:  billService,
		alertService: alertService,
		notifier:     notifier,
		logger:       logger.With().Str("component", "reminder_worker").Logger(),
		interval:     config.Interval,
		withinDays:   config.WithinDays,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
}

// Start begins the background reminder loop
func (w *ReminderWorker) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	w.logger.Info().
		Dur("interval", w.interval).
		Int("within_days", w.withinDays).
		Msg("Starting reminder worker")

	go w.run(ctx)
}

// Stop gracefully stops the reminder worker
func (w *ReminderWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	w.logger.Info().Msg("Stopping reminder worker")
	close(w.stopCh)
	<-w.doneCh
	w.logger.Info().Msg("Reminder worker stopped")
}

// run is the main loop for the reminder worker
func (w *ReminderWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	// Run immediately on startup
	w.RunOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			w.running = false
			w.mu.Unlock()
			return
		case <-w.stopCh:
			w.mu.Lock()
			w.running = false
			w.mu.Unlock()
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single reminder cycle
func (w *ReminderWorker) RunOnce(ctx context.Context) ReminderResult {
	startTime := time.Now()
	result := ReminderResult{
		UpcomingBills: w.billService.GetUpcomingBills(w.withinDays),
	}

	if len(result.UpcomingBills) > 0 {
		for _, b := range result.UpcomingBills {
			w.logger.Info().
				Str("bill_id", b.ID).
				Str("name", b.Name).
				Str("due", b.Due.String()).
				Str("amount", b.Amount.StringFixed(2)).
				Msg("Upcoming bill")
		}
		if w.notifier != nil {
			if err := w.notifier.NotifyUpcomingBills(ctx, result.UpcomingBills); err != nil {
				w.logger.Error().Err(err).Msg("Failed to dispatch bill reminders")
			}
		}
		w.publishEvent(websocket.BillsUpcoming(result.UpcomingBills))
	}

	if w.alertService != nil {
		result.Alerts = w.alertService.Check(ctx)
	}

	w.logger.Debug().
		Int("upcoming_bills", len(result.UpcomingBills)).
		Int("alerts", len(result.Alerts)).
		Dur("elapsed", time.Since(startTime)).
		Msg("Completed reminder check")
	return result
}

// IsRunning returns whether the worker is currently running
func (w *ReminderWorker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
