package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"ledgerd/internal/core"
	"ledgerd/internal/log"
)

const ledgerCacheKey = "ledger"

type indexPage struct {
	Categories  []core.Category
	DefaultDate string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page := indexPage{
		Categories:  core.Categories(),
		DefaultDate: core.Today().String(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", page); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render index", log.FieldError, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	parser := NewRequestBodyParser(r)
	input, err := parser.ParseExpenseInput()
	if err != nil {
		slog.WarnContext(r.Context(), "Rejected expense input",
			log.FieldOperation, log.OpAppend,
			log.FieldError, err)
		respondValidationError(w, err)
		return
	}

	expense := core.Expense{
		Date:        input.Date,
		Category:    input.Category,
		Description: input.Description,
		Amount:      core.Money{Cents: input.AmountCents},
	}

	ref, err := s.expWriter.Append(r.Context(), expense)
	if err != nil {
		if isValidationError(err) {
			respondValidationError(w, err)
			return
		}
		slog.ErrorContext(r.Context(), "Failed to save expense",
			log.FieldOperation, log.OpAppend,
			log.FieldError, err)
		respondError(w, http.StatusInternalServerError, "Could not save the expense. Please try again.")
		return
	}

	// A new row invalidates every whole-ledger view.
	s.summaryCache.Delete(ledgerCacheKey)
	s.itemsCache.Delete(ledgerCacheKey)

	slog.InfoContext(r.Context(), "Expense saved",
		log.FieldOperation, log.OpAppend,
		log.FieldRef, ref,
		log.FieldCategory, string(expense.Category),
		log.FieldAmountCents, expense.Amount.Cents)

	respondExpenseSaved(w, expense)
}

func isValidationError(err error) bool {
	return errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrInvalidDate) ||
		errors.Is(err, core.ErrEmptyDescription) ||
		errors.Is(err, core.ErrUnknownCategory)
}

type summaryPage struct {
	Total      string
	Categories []categoryRow
	Items      []expenseRow
	Empty      bool
}

type categoryRow struct {
	Name    string
	Amount  string
	Percent int
}

type expenseRow struct {
	Date        string
	Category    string
	Description string
	Amount      string
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	summary, ok := s.summaryCache.Get(ledgerCacheKey)
	if !ok {
		var err error
		summary, err = s.sumReader.ReadSummary(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "Failed to read summary",
				log.FieldOperation, log.OpSummary,
				log.FieldError, err)
			respondError(w, http.StatusInternalServerError, "Could not load the summary.")
			return
		}
		s.summaryCache.Set(ledgerCacheKey, summary)
	}

	items, ok := s.itemsCache.Get(ledgerCacheKey)
	if !ok {
		var err error
		items, err = s.expLister.ListExpenses(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "Failed to list expenses",
				log.FieldOperation, log.OpList,
				log.FieldError, err)
			respondError(w, http.StatusInternalServerError, "Could not load the expenses.")
			return
		}
		s.itemsCache.Set(ledgerCacheKey, items)
	}

	page := buildSummaryPage(summary, items)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "summary.html", page); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render summary", log.FieldError, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func buildSummaryPage(summary core.Summary, items []core.Expense) summaryPage {
	var maxCents int64
	for _, ct := range summary.ByCategory {
		if ct.Amount.Cents > maxCents {
			maxCents = ct.Amount.Cents
		}
	}

	page := summaryPage{
		Total: formatDollars(summary.Total.Cents),
		Empty: len(items) == 0,
	}

	for _, ct := range summary.ByCategory {
		percent := 0
		if maxCents > 0 {
			percent = int(ct.Amount.Cents * 100 / maxCents)
		}
		page.Categories = append(page.Categories, categoryRow{
			Name:    string(ct.Category),
			Amount:  formatDollars(ct.Amount.Cents),
			Percent: percent,
		})
	}

	// Most recent first
	for i := len(items) - 1; i >= 0; i-- {
		e := items[i]
		page.Items = append(page.Items, expenseRow{
			Date:        e.Date.String(),
			Category:    string(e.Category),
			Description: e.Description,
			Amount:      formatDollars(e.Amount.Cents),
		})
	}

	return page
}

// formatDollars renders cents as "$1,234.56".
func formatDollars(cents int64) string {
	negative := cents < 0
	if negative {
		cents = -cents
	}

	whole := cents / 100
	frac := cents % 100

	digits := fmt.Sprintf("%d", whole)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%s$%s.%02d", sign, b.String(), frac)
}
