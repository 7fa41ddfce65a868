package service

import (
	"context"
	"sync"
	"time"

	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/dafibh/pfd/pfd-backend/internal/store"
	"github.com/dafibh/pfd/pfd-backend/internal/websocket"
	"github.com/rs/zerolog"
)

// AlertService detects budgets whose monthly spending has passed the limit
// and dispatches them. With a zero cooldown every check re-emits every
// exceeded budget; otherwise a budget is re-emitted only after the cooldown.
type AlertService struct {
	eventSource
	store    *store.Store
	clock    domain.Clock
	notifier domain.Notifier
	logger   zerolog.Logger
	cooldown time.Duration

	mu          sync.Mutex
	lastAlerted map[string]time.Time
}

// NewAlertService creates a new AlertService. notifier may be nil.
func NewAlertService(st *store.Store, clock domain.Clock, notifier domain.Notifier, logger zerolog.Logger, cooldown time.Duration) *AlertService {
	return &AlertService{
		store:       st,
		clock:       clock,
		notifier:    notifier,
		logger:      logger.With().Str("component", "alert_service").Logger(),
		cooldown:    cooldown,
		lastAlerted: make(map[string]time.Time),
	}
}

// GetAlerts returns the currently exceeded budgets without dispatching
func (s *AlertService) GetAlerts() []domain.BudgetAlert {
	return BudgetAlerts(s.store.Snapshot(), domain.Today(s.clock))
}

// Check runs one alert cycle against the current document
func (s *AlertService) Check(ctx context.Context) []domain.BudgetAlert {
	return s.CheckDocument(ctx, s.store.Snapshot())
}

// OnCommit returns a store listener that runs a check after every change
func (s *AlertService) OnCommit() store.CommitListener {
	return func(ctx context.Context, doc *domain.Document) {
		s.CheckDocument(ctx, doc)
	}
}

// CheckDocument runs one alert cycle against doc and returns the alerts
// that were dispatched.
func (s *AlertService) CheckDocument(ctx context.Context, doc *domain.Document) []domain.BudgetAlert {
	now := s.clock.Now()
	alerts := s.filterCooldown(BudgetAlerts(doc, domain.Today(s.clock)), now)
	if len(alerts) == 0 {
		return alerts
	}

	for _, a := range alerts {
		s.logger.Info().
			Str("budget_id", a.BudgetID).
			Str("category", a.Category).
			Str("spent", a.Spent.StringFixed(2)).
			Str("limit", a.Limit.StringFixed(2)).
			Msg("Budget exceeded")
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyBudgetAlerts(ctx, alerts); err != nil {
			s.logger.Error().Err(err).Int("alerts", len(alerts)).Msg("Failed to dispatch budget alerts")
		}
	}
	s.publishEvent(websocket.BudgetExceeded(alerts))
	return alerts
}

func (s *AlertService) filterCooldown(alerts []domain.BudgetAlert, now time.Time) []domain.BudgetAlert {
	if s.cooldown <= 0 {
		return alerts
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	active := make(map[string]bool, len(alerts))
	due := []domain.BudgetAlert{}
	for _, a := range alerts {
		active[a.BudgetID] = true
		if last, ok := s.lastAlerted[a.BudgetID]; ok && now.Sub(last) < s.cooldown {
			continue
		}
		s.lastAlerted[a.BudgetID] = now
		due = append(due, a)
	}

	// Budgets back under their limit may alert again as soon as they exceed it
	for id := range s.lastAlerted {
		if !active[id] {
			delete(s.lastAlerted, id)
		}
	}
	return due
}
