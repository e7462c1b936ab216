package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"ledgerd/internal/core"
	"ledgerd/internal/store"
)

// EventPublisher publishes record-saved events for the archive worker.
type EventPublisher interface {
	PublishExpenseSaved(ctx context.Context, ref string, e core.Expense) error
}

// ExpenseService orchestrates expense writes across the primary store and
// the optional event bus. It implements store.ExpenseWriter so it can stand
// in front of any backend.
type ExpenseService struct {
	writer    store.ExpenseWriter
	publisher EventPublisher
}

func NewExpenseService(writer store.ExpenseWriter, publisher EventPublisher) *ExpenseService {
	return &ExpenseService{
		writer:    writer,
		publisher: publisher,
	}
}

// Append saves an expense to the primary store and publishes a saved event.
// The local save decides the outcome; a publish failure is logged and
// swallowed, the archive worker reconciles missed records later.
func (s *ExpenseService) Append(ctx context.Context, e core.Expense) (string, error) {
	ref, err := s.writer.Append(ctx, e)
	if err != nil {
		return "", fmt.Errorf("save expense: %w", err)
	}

	if s.publisher == nil {
		return ref, nil
	}
	if err := s.publisher.PublishExpenseSaved(ctx, ref, e); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense saved message",
			"ref", ref, "error", err)
	}

	return ref, nil
}

// Close closes the underlying store and publisher where they support it.
func (s *ExpenseService) Close() error {
	var errs []error

	if c, ok := s.writer.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}
	if c, ok := s.publisher.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}

	return errors.Join(errs...)
}
