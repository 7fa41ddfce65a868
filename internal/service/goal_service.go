package service

import (
	"context"
	"strings"

	"github.com/dafibh/pfd/pfd-backend/internal/domain"
	"github.com/dafibh/pfd/pfd-backend/internal/store"
	"github.com/dafibh/pfd/pfd-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// GoalService handles savings goals
type GoalService struct {
	eventSource
	store *store.Store
	ids   domain.IDGenerator
}

// NewGoalService creates a new GoalService
func NewGoalService(st *store.Store, ids domain.IDGenerator) *GoalService {
	return &GoalService{store: st, ids: ids}
}

// CreateGoal creates a goal with nothing saved yet
func (s *GoalService) CreateGoal(ctx context.Context, title string, target decimal.Decimal) (*domain.Goal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.ErrTitleRequired
	}
	if len(title) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}
	if !target.IsPositive() {
		return nil, domain.ErrInvalidTarget
	}

	goal := domain.Goal{
		ID:     s.ids.NewID(),
		Title:  title,
		Target: target,
		Saved:  decimal.Zero,
	}
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		doc.Goals = append(doc.Goals, goal)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeCreated, websocket.EntityTypeGoal, goal))
	return &goal, nil
}

// GetGoals lists goals with their progress
func (s *GoalService) GetGoals() []domain.GoalProgress {
	return GoalProgress(s.store.Snapshot())
}

// AddFunds adds amount to a goal's savings. Non-positive amounts change
// nothing. Savings may exceed the target.
func (s *GoalService) AddFunds(ctx context.Context, id string, amount decimal.Decimal) (*domain.GoalProgress, error) {
	if !amount.IsPositive() {
		var goal *domain.Goal
		s.store.View(func(doc *domain.Document) {
			if i := doc.FindGoal(id); i >= 0 {
				g := doc.Goals[i]
				goal = &g
			}
		})
		if goal == nil {
			return nil, domain.ErrGoalNotFound
		}
		return &domain.GoalProgress{Goal: *goal, Percent: domain.ProgressPercent(goal.Saved, goal.Target)}, nil
	}

	var updated domain.Goal
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		i := doc.FindGoal(id)
		if i < 0 {
			return domain.ErrGoalNotFound
		}
		doc.Goals[i].Saved = doc.Goals[i].Saved.Add(amount)
		updated = doc.Goals[i]
		return nil
	})
	if err != nil {
		return nil, err
	}

	progress := domain.GoalProgress{Goal: updated, Percent: domain.ProgressPercent(updated.Saved, updated.Target)}
	s.publishEvent(websocket.NewEvent(websocket.EventTypeFunded, websocket.EntityTypeGoal, progress))
	return &progress, nil
}

// DeleteGoal removes a goal
func (s *GoalService) DeleteGoal(ctx context.Context, id string) error {
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		i := doc.FindGoal(id)
		if i < 0 {
			return domain.ErrGoalNotFound
		}
		doc.Goals = append(doc.Goals[:i], doc.Goals[i+1:]...)
		return nil
	})
	if err != nil {
		return err
	}

	s.publishEvent(websocket.NewEvent(websocket.EventTypeDeleted, websocket.EntityTypeGoal, map[string]string{"id": id}))
	return nil
}
