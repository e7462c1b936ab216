package amqp

import (
	"encoding/json"
	"time"

	"ledgerd/internal/core"
)

// ExpenseSavedMessage carries a fully materialized record to the archive
// worker, so the worker never has to read the primary store back.
type ExpenseSavedMessage struct {
	Ref         string    `json:"ref"`
	Date        string    `json:"date"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	AmountCents int64     `json:"amount_cents"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewExpenseSavedMessage builds a message from a stored record and its ref.
func NewExpenseSavedMessage(ref string, e core.Expense) *ExpenseSavedMessage {
	return &ExpenseSavedMessage{
		Ref:         ref,
		Date:        e.Date.String(),
		Category:    e.Category.String(),
		Description: e.Description,
		AmountCents: e.Amount.Cents,
		Timestamp:   time.Now(),
	}
}

// Expense reconstructs the domain record carried by the message.
func (m *ExpenseSavedMessage) Expense() (core.Expense, error) {
	date, err := core.ParseDate(m.Date)
	if err != nil {
		return core.Expense{}, err
	}
	cat, err := core.ParseCategory(m.Category)
	if err != nil {
		return core.Expense{}, err
	}
	return core.Expense{
		Date:        date,
		Category:    cat,
		Description: m.Description,
		Amount:      core.Money{Cents: m.AmountCents},
	}, nil
}

// ToJSON converts the message to JSON bytes.
func (m *ExpenseSavedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseSavedMessageFromJSON creates a message from JSON bytes.
func ExpenseSavedMessageFromJSON(data []byte) (*ExpenseSavedMessage, error) {
	var msg ExpenseSavedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
