package core

// CategoryTotal represents an amount aggregated under one category label.
type CategoryTotal struct {
	Category Category
	Amount   Money
}

// Summary is the aggregate view over the whole ledger: the grand total and
// one bucket per category in the fixed set, zero-valued when no record
// carries that label.
type Summary struct {
	Total      Money
	ByCategory []CategoryTotal
}

// Summarize computes the summary for an ordered sequence of expenses.
// Every category of the fixed set appears exactly once, in display order.
func Summarize(expenses []Expense) Summary {
	byCat := make(map[Category]int64, len(expenses))
	var total int64
	for _, e := range expenses {
		total += e.Amount.Cents
		byCat[e.Category] += e.Amount.Cents
	}

	s := Summary{Total: Money{Cents: total}}
	for _, c := range Categories() {
		s.ByCategory = append(s.ByCategory, CategoryTotal{
			Category: c,
			Amount:   Money{Cents: byCat[c]},
		})
	}
	return s
}
