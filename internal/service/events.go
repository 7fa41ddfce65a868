package service

import (
	"strings"

	"github.com/dafibh/pfd/pfd-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// eventSource gives a service optional real-time event publishing
type eventSource struct {
	eventPublisher websocket.EventPublisher
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *eventSource) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *eventSource) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// parseAmount parses user-entered numeric text
func parseAmount(raw string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
