package memory

import (
	"context"
	"testing"

	"ledgerd/internal/core"
)

func TestMemoryStoreAppendAndList(t *testing.T) {
	s := New()
	ctx := context.Background()

	ref, err := s.Append(ctx, core.Expense{
		Date:        core.NewDate(2024, 1, 15),
		Category:    core.Food,
		Description: "lunch",
		Amount:      core.Money{Cents: 1250},
	})
	if err != nil || ref != "mem:1" {
		t.Fatalf("unexpected append: ref=%q err=%v", ref, err)
	}

	items, err := s.ListExpenses(ctx)
	if err != nil || len(items) != 1 {
		t.Fatalf("unexpected list: items=%v err=%v", items, err)
	}

	// Mutating the returned slice must not affect the store.
	items[0].Description = "changed"
	again, _ := s.ListExpenses(ctx)
	if again[0].Description != "lunch" {
		t.Fatalf("store exposed its internal slice")
	}
}

func TestMemoryStoreRejectsInvalid(t *testing.T) {
	s := New()
	_, err := s.Append(context.Background(), core.Expense{
		Date:        core.NewDate(2024, 1, 15),
		Category:    core.Food,
		Description: "bad",
		Amount:      core.Money{Cents: -5},
	})
	if err == nil {
		t.Fatalf("expected error for negative amount")
	}
	items, _ := s.ListExpenses(context.Background())
	if len(items) != 0 {
		t.Fatalf("expected empty store after rejection")
	}
}
