package report

import (
	"encoding/json"
	"fmt"
	"io"

	"ledgerd/internal/core"
)

type jsonReport struct {
	Total      float64            `json:"total"`
	ByCategory map[string]float64 `json:"by_category"`
	Expenses   []jsonExpense      `json:"expenses,omitempty"`
}

type jsonExpense struct {
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// WriteJSON emits the report in a machine-readable shape.
func WriteJSON(w io.Writer, summary core.Summary, expenses []core.Expense, opts Options) error {
	out := jsonReport{
		Total:      summary.Total.Dollars(),
		ByCategory: make(map[string]float64, len(summary.ByCategory)),
	}
	for _, ct := range summary.ByCategory {
		if !opts.ShowEmpty && ct.Amount.Cents == 0 {
			continue
		}
		out.ByCategory[string(ct.Category)] = ct.Amount.Dollars()
	}
	if opts.ShowItems {
		for _, e := range expenses {
			out.Expenses = append(out.Expenses, jsonExpense{
				Date:        e.Date.String(),
				Category:    string(e.Category),
				Description: e.Description,
				Amount:      e.Amount.Dollars(),
			})
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}
