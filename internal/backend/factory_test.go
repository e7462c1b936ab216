package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"ledgerd/internal/core"
)

func TestCreateJSONBackend(t *testing.T) {
	f := NewFactory(nil)
	res, err := f.Create(Config{
		Type:         JSONBackend,
		JSONFilePath: filepath.Join(t.TempDir(), "expenses.json"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer res.Cleanup()

	ref, err := res.Backend.Append(context.Background(), core.Expense{
		Date:        core.NewDate(2024, 1, 15),
		Category:    core.Food,
		Description: "lunch",
		Amount:      core.Money{Cents: 1250},
	})
	if err != nil || ref == "" {
		t.Fatalf("append through backend: ref=%q err=%v", ref, err)
	}

	sum, err := res.Backend.ReadSummary(context.Background())
	if err != nil || sum.Total.Cents != 1250 {
		t.Fatalf("summary through backend: %+v err=%v", sum, err)
	}
}

func TestCreateJSONBackendSurvivesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	f := NewFactory(nil)
	res, err := f.Create(Config{Type: JSONBackend, JSONFilePath: path})
	if err != nil {
		t.Fatalf("corrupt file must not fail backend creation: %v", err)
	}
	defer res.Cleanup()

	items, err := res.Backend.ListExpenses(context.Background())
	if err != nil || len(items) != 0 {
		t.Fatalf("expected empty ledger after failed restore, got %d (err=%v)", len(items), err)
	}
}

func TestCreateMemoryBackend(t *testing.T) {
	f := NewFactory(nil)
	res, err := f.Create(Config{Type: MemoryBackend})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res.Backend == nil {
		t.Fatalf("expected backend")
	}
}

func TestInvalidBackendType(t *testing.T) {
	f := NewFactory(nil)
	if _, err := f.Create(Config{Type: "cloud"}); err == nil {
		t.Fatalf("expected error for invalid backend type")
	}
}
