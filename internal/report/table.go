package report

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"ledgerd/internal/core"
)

// RenderSummary writes the per-category totals table to w.
func RenderSummary(w io.Writer, summary core.Summary, opts Options) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetTitle(opts.Title)

	t.AppendHeader(table.Row{"Category", "Spent"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Spent", Align: text.AlignRight, AlignFooter: text.AlignRight},
	})

	for _, ct := range summary.ByCategory {
		if !opts.ShowEmpty && ct.Amount.Cents == 0 {
			continue
		}
		t.AppendRow(table.Row{string(ct.Category), formatAmount(opts.Currency, ct.Amount.Cents)})
	}

	t.AppendFooter(table.Row{"Total", formatAmount(opts.Currency, summary.Total.Cents)})
	t.Render()
}

// RenderExpenses writes the expense listing table to w.
func RenderExpenses(w io.Writer, expenses []core.Expense, opts Options) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"#", "Date", "Category", "Description", "Amount"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Amount", Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Name: "Description", WidthMax: 48},
	})

	var total int64
	for i, e := range expenses {
		total += e.Amount.Cents
		t.AppendRow(table.Row{
			i + 1,
			e.Date.String(),
			string(e.Category),
			e.Description,
			formatAmount(opts.Currency, e.Amount.Cents),
		})
	}

	t.AppendFooter(table.Row{"", "", "", "Total", formatAmount(opts.Currency, total)})
	t.Render()
}
