package notify

import (
	"encoding/json"
	"time"

	"github.com/dafibh/pfd/pfd-backend/internal/domain"
)

// Message kinds published to the broker
const (
	MessageBudgetExceeded = "budget.exceeded"
	MessageBillsUpcoming  = "bill.upcoming"
)

// Message is the body of every published notification
type Message struct {
	Type      string               `json:"type"`
	Timestamp time.Time            `json:"timestamp"`
	Alerts    []domain.BudgetAlert `json:"alerts,omitempty"`
	Bills     []domain.Bill        `json:"bills,omitempty"`
}

func (m Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// MessageFromJSON decodes a published message
func MessageFromJSON(data []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
