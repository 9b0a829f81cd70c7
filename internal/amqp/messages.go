package amqp

import (
	"encoding/json"
	"time"

	"ledgerd/internal/core"
)

// EventMessage is the wire form of one ledger event. It carries ids and
// the event kind; consumers needing full rows read them back from their
// own copy of the data.
type EventMessage struct {
	EventID    int64     `json:"event_id"`
	Kind       string    `json:"kind"`
	ExpenseID  int64     `json:"expense_id"`
	AccountID  string    `json:"account_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewEventMessage(e core.Event) *EventMessage {
	return &EventMessage{
		EventID:    e.ID,
		Kind:       e.Kind,
		ExpenseID:  e.ExpenseID,
		AccountID:  e.AccountID,
		OccurredAt: e.OccurredAt,
	}
}

// ToJSON converts the message to JSON bytes.
func (m *EventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// EventMessageFromJSON parses a message from JSON bytes.
func EventMessageFromJSON(data []byte) (*EventMessage, error) {
	var msg EventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
