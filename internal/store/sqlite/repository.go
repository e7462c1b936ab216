// Package sqlite implements a durable ledger backend on SQLite. It serves
// both as an alternative to the JSON file store and as the archive target
// for the async mirror worker.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"ledgerd/internal/core"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db *sql.DB
}

func New(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements store.ExpenseWriter.
func (r *Repository) Append(ctx context.Context, e core.Expense) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (date, category, description, amount_cents) VALUES (?, ?, ?, ?)`,
		e.Date.String(), e.Category.String(), e.Description, e.Amount.Cents)
	if err != nil {
		return "", fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved to SQLite",
		"id", id,
		"description", e.Description,
		"amount_cents", e.Amount.Cents,
		"category", e.Category.String())

	return strconv.FormatInt(id, 10), nil
}

// ListExpenses implements store.ExpenseLister.
func (r *Repository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, category, description, amount_cents FROM expenses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		var (
			dateStr string
			catStr  string
			desc    string
			cents   int64
		)
		if err := rows.Scan(&dateStr, &catStr, &desc, &cents); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		date, err := core.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("stored date %q: %w", dateStr, err)
		}
		cat, err := core.ParseCategory(catStr)
		if err != nil {
			return nil, fmt.Errorf("stored category %q: %w", catStr, err)
		}
		out = append(out, core.Expense{
			Date:        date,
			Category:    cat,
			Description: desc,
			Amount:      core.Money{Cents: cents},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}

// ReadSummary implements store.SummaryReader. Aggregation happens in SQL;
// categories without records are filled in as zero buckets afterwards.
func (r *Repository) ReadSummary(ctx context.Context) (core.Summary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, SUM(amount_cents) FROM expenses GROUP BY category`)
	if err != nil {
		return core.Summary{}, fmt.Errorf("query category sums: %w", err)
	}
	defer rows.Close()

	byCat := make(map[core.Category]int64)
	var total int64
	for rows.Next() {
		var (
			catStr string
			cents  int64
		)
		if err := rows.Scan(&catStr, &cents); err != nil {
			return core.Summary{}, fmt.Errorf("scan category sum: %w", err)
		}
		byCat[core.Category(catStr)] = cents
		total += cents
	}
	if err := rows.Err(); err != nil {
		return core.Summary{}, fmt.Errorf("iterate category sums: %w", err)
	}

	s := core.Summary{Total: core.Money{Cents: total}}
	for _, c := range core.Categories() {
		s.ByCategory = append(s.ByCategory, core.CategoryTotal{
			Category: c,
			Amount:   core.Money{Cents: byCat[c]},
		})
	}
	return s, nil
}

// Archive mirrors a record that originated in another backend, keyed by its
// source ref so redelivered messages and reconciliation passes stay
// idempotent.
func (r *Repository) Archive(ctx context.Context, sourceRef string, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO expenses (date, category, description, amount_cents, source_ref)
		 VALUES (?, ?, ?, ?, ?)`,
		e.Date.String(), e.Category.String(), e.Description, e.Amount.Cents, sourceRef)
	if err != nil {
		return fmt.Errorf("archive expense %s: %w", sourceRef, err)
	}
	return nil
}

// CountExpenses returns the number of archived records.
func (r *Repository) CountExpenses(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expenses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count expenses: %w", err)
	}
	return n, nil
}
