package store

import (
	"context"

	"ledgerd/internal/core"
)

// Ports for the record store. Presentation code and workers depend on these
// narrow interfaces, never on a concrete container.
type (
	ExpenseWriter interface {
		// Append validates the expense, appends it to the ledger and makes
		// it durable before returning. The returned ref identifies the
		// record within its backend.
		Append(ctx context.Context, e core.Expense) (ref string, err error)
	}

	ExpenseLister interface {
		// ListExpenses returns every record in insertion order.
		ListExpenses(ctx context.Context) ([]core.Expense, error)
	}

	// SummaryReader provides the aggregate view over the whole ledger.
	SummaryReader interface {
		// ReadSummary returns the grand total plus one bucket per category
		// of the fixed set, zero-valued where no record exists.
		ReadSummary(ctx context.Context) (core.Summary, error)
	}
)
