package http

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"

	"ledgerd/internal/core"
)

// htmx event payloads carried in the HX-Trigger header
type triggerEvents struct {
	ExpenseCreated *expenseCreatedEvent `json:"expense:created,omitempty"`
	Notify         *notifyEvent         `json:"ledgerd:notify,omitempty"`
}

type expenseCreatedEvent struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

type notifyEvent struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

func setTriggerHeader(w http.ResponseWriter, events triggerEvents) {
	payload, err := json.Marshal(events)
	if err != nil {
		return
	}
	w.Header().Set("HX-Trigger", string(payload))
}

// respondExpenseSaved writes the success fragment swapped into the form target.
func respondExpenseSaved(w http.ResponseWriter, e core.Expense) {
	setTriggerHeader(w, triggerEvents{
		ExpenseCreated: &expenseCreatedEvent{
			Category: string(e.Category),
			Amount:   formatDollars(e.Amount.Cents),
		},
		Notify: &notifyEvent{
			Level:   "success",
			Message: "Expense saved.",
		},
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `<div class="form-result form-result-ok">Saved %s for %s</div>`,
		formatDollars(e.Amount.Cents), html.EscapeString(string(e.Category)))
}

// respondValidationError writes a 422 with an inline error fragment.
func respondValidationError(w http.ResponseWriter, err error) {
	setTriggerHeader(w, triggerEvents{
		Notify: &notifyEvent{
			Level:   "error",
			Message: err.Error(),
		},
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusUnprocessableEntity)
	fmt.Fprintf(w, `<div class="form-result form-result-error">%s</div>`, html.EscapeString(err.Error()))
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, `<div class="form-result form-result-error">%s</div>`, html.EscapeString(message))
}
