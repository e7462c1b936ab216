// Package worker mirrors ledger records into the SQLite archive. Records
// normally arrive as record-saved events; a periodic reconciliation pass
// re-reads the primary store and backfills anything the bus missed.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"ledgerd/internal/amqp"
	"ledgerd/internal/core"
	"ledgerd/internal/store"
)

// Archiver is the archive-side store contract.
type Archiver interface {
	Archive(ctx context.Context, sourceRef string, e core.Expense) error
	CountExpenses(ctx context.Context) (int64, error)
}

// Consumer delivers record-saved messages.
type Consumer interface {
	ConsumeExpenseSaved(ctx context.Context, handler func(*amqp.ExpenseSavedMessage) error) error
}

// Source is the read side of the primary ledger. The ledger file belongs to
// the server process, so Reload must pick up records appended since the
// previous pass before ListExpenses is consulted.
type Source interface {
	store.ExpenseLister
	Reload() error
}

type ArchiveWorker struct {
	archive  Archiver
	source   Source
	interval time.Duration
}

func NewArchiveWorker(archive Archiver, source Source, interval time.Duration) *ArchiveWorker {
	return &ArchiveWorker{
		archive:  archive,
		source:   source,
		interval: interval,
	}
}

// Run consumes events and reconciles in parallel until the context ends.
func (w *ArchiveWorker) Run(ctx context.Context, consumer Consumer) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := consumer.ConsumeExpenseSaved(ctx, w.HandleSavedMessage)
		if err == context.Canceled {
			return nil
		}
		return err
	})

	g.Go(func() error {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if err := w.Reconcile(ctx); err != nil {
					slog.ErrorContext(ctx, "Reconciliation pass failed", "error", err)
				}
			}
		}
	})

	return g.Wait()
}

// HandleSavedMessage archives a single record carried by an event.
func (w *ArchiveWorker) HandleSavedMessage(msg *amqp.ExpenseSavedMessage) error {
	e, err := msg.Expense()
	if err != nil {
		// The payload can never become valid; archive nothing and ack.
		slog.Error("Dropping undecodable expense message", "ref", msg.Ref, "error", err)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := w.archive.Archive(ctx, msg.Ref, e); err != nil {
		return fmt.Errorf("archive %s: %w", msg.Ref, err)
	}
	return nil
}

// Reconcile re-reads the primary ledger and backfills missing records.
// Refs are positional, matching the refs the JSON store hands out, so the
// pass is idempotent against records already archived via events.
func (w *ArchiveWorker) Reconcile(ctx context.Context) error {
	if err := w.source.Reload(); err != nil {
		return fmt.Errorf("reload primary ledger: %w", err)
	}

	items, err := w.source.ListExpenses(ctx)
	if err != nil {
		return fmt.Errorf("list primary ledger: %w", err)
	}

	before, err := w.archive.CountExpenses(ctx)
	if err != nil {
		return fmt.Errorf("count archive: %w", err)
	}

	for i, e := range items {
		ref := "json:" + strconv.Itoa(i+1)
		if err := w.archive.Archive(ctx, ref, e); err != nil {
			return fmt.Errorf("backfill %s: %w", ref, err)
		}
	}

	after, err := w.archive.CountExpenses(ctx)
	if err != nil {
		return fmt.Errorf("count archive: %w", err)
	}
	if after > before {
		slog.InfoContext(ctx, "Reconciliation backfilled records",
			"backfilled", after-before,
			"primary", len(items),
			"archived", after)
	}
	return nil
}
