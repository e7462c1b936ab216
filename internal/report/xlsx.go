package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"ledgerd/internal/core"
)

const (
	expensesSheet = "Expenses"
	summarySheet  = "Summary"
)

// WriteWorkbook exports the ledger as an xlsx workbook with an expense
// sheet and a summary sheet.
func WriteWorkbook(path string, expenses []core.Expense, summary core.Summary) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", expensesSheet); err != nil {
		return fmt.Errorf("naming expense sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}

	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return fmt.Errorf("creating money style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if err := writeExpenseSheet(f, expenses, moneyStyle, headerStyle); err != nil {
		return err
	}
	if err := writeSummarySheet(f, summary, moneyStyle, headerStyle); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

func writeExpenseSheet(f *excelize.File, expenses []core.Expense, moneyStyle, headerStyle int) error {
	headers := []any{"Date", "Category", "Description", "Amount"}
	if err := f.SetSheetRow(expensesSheet, "A1", &headers); err != nil {
		return fmt.Errorf("writing expense header: %w", err)
	}
	if err := f.SetCellStyle(expensesSheet, "A1", "D1", headerStyle); err != nil {
		return fmt.Errorf("styling expense header: %w", err)
	}

	for i, e := range expenses {
		row := []any{
			e.Date.String(),
			string(e.Category),
			e.Description,
			e.Amount.Dollars(),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(expensesSheet, cell, &row); err != nil {
			return fmt.Errorf("writing expense row %d: %w", i+1, err)
		}
	}

	if len(expenses) > 0 {
		last := fmt.Sprintf("D%d", len(expenses)+1)
		if err := f.SetCellStyle(expensesSheet, "D2", last, moneyStyle); err != nil {
			return fmt.Errorf("styling amount column: %w", err)
		}
	}

	_ = f.SetColWidth(expensesSheet, "A", "A", 12)
	_ = f.SetColWidth(expensesSheet, "B", "B", 16)
	_ = f.SetColWidth(expensesSheet, "C", "C", 40)
	_ = f.SetColWidth(expensesSheet, "D", "D", 12)
	return nil
}

func writeSummarySheet(f *excelize.File, summary core.Summary, moneyStyle, headerStyle int) error {
	headers := []any{"Category", "Spent"}
	if err := f.SetSheetRow(summarySheet, "A1", &headers); err != nil {
		return fmt.Errorf("writing summary header: %w", err)
	}
	if err := f.SetCellStyle(summarySheet, "A1", "B1", headerStyle); err != nil {
		return fmt.Errorf("styling summary header: %w", err)
	}

	rowIdx := 2
	for _, ct := range summary.ByCategory {
		row := []any{string(ct.Category), ct.Amount.Dollars()}
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", rowIdx), &row); err != nil {
			return fmt.Errorf("writing summary row for %s: %w", ct.Category, err)
		}
		rowIdx++
	}

	totalRow := []any{"Total", summary.Total.Dollars()}
	if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", rowIdx), &totalRow); err != nil {
		return fmt.Errorf("writing summary total: %w", err)
	}
	if err := f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", rowIdx), fmt.Sprintf("B%d", rowIdx), headerStyle); err != nil {
		return fmt.Errorf("styling summary total: %w", err)
	}
	if err := f.SetCellStyle(summarySheet, "B2", fmt.Sprintf("B%d", rowIdx), moneyStyle); err != nil {
		return fmt.Errorf("styling summary amounts: %w", err)
	}

	_ = f.SetColWidth(summarySheet, "A", "A", 16)
	_ = f.SetColWidth(summarySheet, "B", "B", 12)
	return nil
}
