// Package jsonfile implements the default ledger backend: a single JSON
// array file in the data directory, fully rewritten on every append and
// read once at startup.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"ledgerd/internal/core"
)

// record is the on-disk shape of one expense. The amount travels as a
// decimal number, the date as a YYYY-MM-DD string.
type record struct {
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

type Store struct {
	mu    sync.Mutex
	path  string
	items []core.Expense
}

// New opens the store backed by the given file path, restoring any prior
// contents. A missing file is not an error and yields an empty ledger;
// a malformed or unreadable file is.
func New(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	s := &Store{path: path}
	if err := s.restore(); err != nil {
		return nil, err
	}

	slog.Info("Ledger restored from file", "path", s.path, "records", len(s.items))
	return s, nil
}

// Empty returns a store at the given path without reading prior contents.
// It is the fallback after a failed restore: the ledger starts empty, as it
// was before the attempt, and the next successful append rewrites the file.
func Empty(path string) *Store {
	return &Store{path: path}
}

func (s *Store) restore() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.items = nil
			return nil
		}
		return fmt.Errorf("read ledger file: %w", err)
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("decode ledger file %s: %w", s.path, err)
	}

	items := make([]core.Expense, 0, len(records))
	for i, r := range records {
		e, err := fromRecord(r)
		if err != nil {
			return fmt.Errorf("decode ledger record %d: %w", i, err)
		}
		items = append(items, e)
	}
	s.items = items
	return nil
}

// Reload re-reads the backing file, replacing the in-memory ledger with
// whatever is on disk. Readers that share the file with another process
// (the archive worker's reconciliation pass) call this before listing;
// the in-memory snapshot from construction time goes stale otherwise.
// On failure the previous snapshot is kept.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.items
	if err := s.restore(); err != nil {
		s.items = prev
		return err
	}

	slog.Debug("Ledger reloaded from file", "path", s.path, "records", len(s.items))
	return nil
}

// Append validates the expense, appends it in memory and rewrites the
// backing file. The in-memory append is rolled back when persistence fails
// so that memory and disk never diverge.
func (s *Store) Append(_ context.Context, e core.Expense) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, e)
	if err := s.persistLocked(); err != nil {
		s.items = s.items[:len(s.items)-1]
		return "", fmt.Errorf("persist ledger: %w", err)
	}
	return "json:" + strconv.Itoa(len(s.items)), nil
}

// ListExpenses returns a copy of the ledger in insertion order.
func (s *Store) ListExpenses(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, len(s.items))
	copy(out, s.items)
	return out, nil
}

// ReadSummary computes the aggregate view over the whole ledger.
func (s *Store) ReadSummary(_ context.Context) (core.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.Summarize(s.items), nil
}

// persistLocked rewrites the whole backing file. The write goes to a temp
// file in the same directory followed by a rename, so a crash mid-write
// cannot truncate the ledger. Callers must hold s.mu.
func (s *Store) persistLocked() error {
	records := make([]record, len(s.items))
	for i, e := range s.items {
		records[i] = toRecord(e)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

func toRecord(e core.Expense) record {
	return record{
		Amount:      e.Amount.Dollars(),
		Category:    e.Category.String(),
		Description: e.Description,
		Date:        e.Date.String(),
	}
}

func fromRecord(r record) (core.Expense, error) {
	date, err := core.ParseDate(r.Date)
	if err != nil {
		return core.Expense{}, fmt.Errorf("date %q: %w", r.Date, err)
	}
	cat, err := core.ParseCategory(r.Category)
	if err != nil {
		return core.Expense{}, fmt.Errorf("category %q: %w", r.Category, err)
	}
	return core.Expense{
		Date:        date,
		Category:    cat,
		Description: r.Description,
		Amount:      core.Money{Cents: core.CentsFromFloat(r.Amount)},
	}, nil
}
