package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"ledgerd/internal/core"
)

func expense(date string, cat core.Category, desc string, cents int64) core.Expense {
	d, _ := core.ParseDate(date)
	return core.Expense{Date: d, Category: cat, Description: desc, Amount: core.Money{Cents: cents}}
}

func TestMissingFileYieldsEmptyLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	s, err := New(path)
	if err != nil {
		t.Fatalf("expected ok for missing file, got %v", err)
	}
	items, err := s.ListExpenses(context.Background())
	if err != nil || len(items) != 0 {
		t.Fatalf("expected empty ledger, got %d items (err=%v)", len(items), err)
	}
}

func TestAppendAndTotals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	s, err := New(path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ctx := context.Background()
	if _, err := s.Append(ctx, expense("2024-01-15", core.Food, "lunch", 1250)); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := s.Append(ctx, expense("2024-01-16", core.Bills, "electric", 4000)); err != nil {
		t.Fatalf("append: %v", err)
	}

	sum, err := s.ReadSummary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Total.Cents != 5250 {
		t.Fatalf("expected total 5250, got %d", sum.Total.Cents)
	}
	byCat := map[core.Category]int64{}
	for _, ct := range sum.ByCategory {
		byCat[ct.Category] = ct.Amount.Cents
	}
	if byCat[core.Food] != 1250 || byCat[core.Transportation] != 0 {
		t.Fatalf("unexpected buckets: %v", byCat)
	}
}

func TestInvalidInsertLeavesLedgerUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	s, err := New(path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ctx := context.Background()
	bads := []core.Expense{
		expense("2024-01-15", core.Food, "negative", -500),
		expense("2024-01-15", core.Food, "zero", 0),
		expense("2024-01-15", "Groceries", "unknown category", 100),
		expense("2024-01-15", core.Food, "", 100),
	}
	for i, e := range bads {
		if _, err := s.Append(ctx, e); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}

	items, _ := s.ListExpenses(ctx)
	if len(items) != 0 {
		t.Fatalf("expected 0 items after rejected inserts, got %d", len(items))
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("no file should exist before a successful append")
	}
}

func TestRoundTripAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	s, err := New(path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ctx := context.Background()
	want := []core.Expense{
		expense("2024-01-15", core.Food, "lunch", 1250),
		expense("2024-01-16", core.Bills, "electric", 4000),
		expense("2024-02-01", core.Other, "misc", 999),
	}
	for _, e := range want {
		if _, err := s.Append(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	// Simulate process restart
	s2, err := New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := s2.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Description != want[i].Description ||
			got[i].Category != want[i].Category ||
			got[i].Amount.Cents != want[i].Amount.Cents ||
			got[i].Date.String() != want[i].Date.String() {
			t.Fatalf("item %d mismatch: got %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	s, err := New(path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := s.Append(context.Background(), expense("2024-01-15", core.Food, "lunch", 1250)); err != nil {
		t.Fatalf("append: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("file is not a JSON array: %v", err)
	}
	if len(raw) != 1 {
		t.Fatalf("expected 1 element, got %d", len(raw))
	}
	r := raw[0]
	if r["amount"] != 12.5 || r["category"] != "Food" || r["description"] != "lunch" || r["date"] != "2024-01-15" {
		t.Fatalf("unexpected record shape: %v", r)
	}
}

func TestMalformedFileFailsRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := New(path); err == nil {
		t.Fatalf("expected error for malformed file")
	}

	// The fallback store starts empty and stays usable.
	s := Empty(path)
	items, err := s.ListExpenses(context.Background())
	if err != nil || len(items) != 0 {
		t.Fatalf("expected empty fallback store, got %d items (err=%v)", len(items), err)
	}
}

func TestNoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "expenses.json")
	s, err := New(path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for i := 0; i < 5; i++ {
		if _, err := s.Append(context.Background(), expense("2024-01-15", core.Food, "x", 100)); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "expenses.json" {
		t.Fatalf("unexpected directory contents: %v", entries)
	}
}

func TestReloadPicksUpExternalWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	ctx := context.Background()

	reader, err := New(path)
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	writer, err := New(path)
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}

	if _, err := writer.Append(ctx, expense("2024-01-15", core.Food, "lunch", 1250)); err != nil {
		t.Fatalf("append: %v", err)
	}

	items, err := reader.ListExpenses(ctx)
	if err != nil || len(items) != 0 {
		t.Fatalf("snapshot should not see the external write yet, got %d (err=%v)", len(items), err)
	}

	if err := reader.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	items, err = reader.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].Description != "lunch" {
		t.Fatalf("expected the external write after reload, got %+v", items)
	}
}

func TestReloadKeepsSnapshotOnMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	s, err := New(path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := s.Append(context.Background(), expense("2024-01-15", core.Food, "lunch", 1250)); err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt file: %v", err)
	}
	if err := s.Reload(); err == nil {
		t.Fatalf("expected reload error for malformed file")
	}

	items, err := s.ListExpenses(context.Background())
	if err != nil || len(items) != 1 {
		t.Fatalf("snapshot must survive a failed reload, got %d items (err=%v)", len(items), err)
	}
}
