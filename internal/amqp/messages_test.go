package amqp

import (
	"testing"

	"ledgerd/internal/core"
)

func TestExpenseSavedMessageRoundTrip(t *testing.T) {
	e := core.Expense{
		Date:        core.NewDate(2024, 1, 15),
		Category:    core.Food,
		Description: "lunch",
		Amount:      core.Money{Cents: 1250},
	}

	msg := NewExpenseSavedMessage("json:7", e)
	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := ExpenseSavedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Ref != "json:7" || got.AmountCents != 1250 || got.Category != "Food" {
		t.Fatalf("unexpected message: %+v", got)
	}

	back, err := got.Expense()
	if err != nil {
		t.Fatalf("expense: %v", err)
	}
	if back.Description != e.Description || back.Amount.Cents != e.Amount.Cents ||
		back.Category != e.Category || back.Date.String() != e.Date.String() {
		t.Fatalf("record mismatch: got %+v want %+v", back, e)
	}
}

func TestExpenseMessageRejectsBadPayload(t *testing.T) {
	if _, err := ExpenseSavedMessageFromJSON([]byte("{broken")); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}

	msg := &ExpenseSavedMessage{Ref: "json:1", Date: "2024-01-15", Category: "Groceries", AmountCents: 100, Description: "x"}
	if _, err := msg.Expense(); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}
