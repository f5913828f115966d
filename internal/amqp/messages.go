package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// LedgerEventMessage is published after every ledger mutation so external
// consumers can re-render without polling the store.
type LedgerEventMessage struct {
	ID          string    `json:"id"`
	Op          string    `json:"op"` // income, expense, reset
	AmountCents int64     `json:"amount_cents"`
	TotalCents  int64     `json:"total_cents"`
	TodayCents  int64     `json:"today_cents"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewLedgerEventMessage(op string, amountCents, totalCents, todayCents int64, description string) *LedgerEventMessage {
	return &LedgerEventMessage{
		ID:          uuid.NewString(),
		Op:          op,
		AmountCents: amountCents,
		TotalCents:  totalCents,
		TodayCents:  todayCents,
		Description: description,
		Timestamp:   time.Now(),
	}
}

func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
