// Package memory implements an ephemeral ledger backend used by tests and
// throwaway runs. It honors the same ports as the durable backends but
// keeps records only for the process lifetime.
package memory

import (
	"context"
	"fmt"
	"sync"

	"ledgerd/internal/core"
)

type Store struct {
	mu    sync.Mutex
	items []core.Expense
}

func New() *Store {
	return &Store{}
}

// Append stores the expense and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, e core.Expense) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, e)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

// ListExpenses returns a copy of the records in insertion order.
func (s *Store) ListExpenses(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, len(s.items))
	copy(out, s.items)
	return out, nil
}

// Reload is a no-op: memory has no backing file to go stale against.
func (s *Store) Reload() error {
	return nil
}

// ReadSummary computes category totals over the current records.
func (s *Store) ReadSummary(_ context.Context) (core.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.Summarize(s.items), nil
}
