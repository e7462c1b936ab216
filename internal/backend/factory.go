package backend

import (
	"fmt"
	"log/slog"

	"ledgerd/internal/amqp"
	"ledgerd/internal/services"
	"ledgerd/internal/store"
	"ledgerd/internal/store/jsonfile"
	"ledgerd/internal/store/memory"
	"ledgerd/internal/store/sqlite"
)

// Factory creates ledger backends based on configuration.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

func (f *Factory) Create(config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case JSONBackend:
		return f.createJSONBackend(config)
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case MemoryBackend:
		return f.createMemoryBackend()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

// serviceBackend fronts a store with the expense service: writes flow
// through the service (and its event publishing), reads hit the store.
type serviceBackend struct {
	*services.ExpenseService
	store.ExpenseLister
	store.SummaryReader
}

func (f *Factory) createJSONBackend(config Config) (*Result, error) {
	js, err := jsonfile.New(config.JSONFilePath)
	if err != nil {
		// A corrupt or unreadable file must not take the application down:
		// report it and continue with an empty ledger at the same path,
		// exactly as if the file were absent.
		f.logger.Error("Failed to restore ledger, continuing with empty ledger",
			"path", config.JSONFilePath, "error", err)
		js = jsonfile.Empty(config.JSONFilePath)
	}

	publisher := f.connectPublisher(config)
	svc := services.NewExpenseService(js, publisher)

	f.logger.Info("Initialized JSON file backend",
		"path", config.JSONFilePath,
		"amqp_enabled", publisher != nil)

	return &Result{
		Backend: &serviceBackend{ExpenseService: svc, ExpenseLister: js, SummaryReader: js},
		Cleanup: svc.Close,
	}, nil
}

func (f *Factory) createSQLiteBackend(config Config) (*Result, error) {
	repo, err := sqlite.New(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize sqlite repository: %w", err)
	}

	publisher := f.connectPublisher(config)
	svc := services.NewExpenseService(repo, publisher)

	f.logger.Info("Initialized SQLite backend",
		"db_path", config.SQLiteDBPath,
		"amqp_enabled", publisher != nil)

	return &Result{
		Backend: &serviceBackend{ExpenseService: svc, ExpenseLister: repo, SummaryReader: repo},
		Cleanup: svc.Close,
	}, nil
}

func (f *Factory) createMemoryBackend() (*Result, error) {
	s := memory.New()
	f.logger.Info("Initialized memory backend")
	return &Result{Backend: &serviceBackend{
		ExpenseService: services.NewExpenseService(s, nil),
		ExpenseLister:  s,
		SummaryReader:  s,
	}}, nil
}

// connectPublisher dials the event bus when configured. A broker that is
// down degrades to local-only operation instead of failing startup.
func (f *Factory) connectPublisher(config Config) services.EventPublisher {
	if config.AMQPURL == "" {
		return nil
	}
	client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
	if err != nil {
		f.logger.Warn("Failed to initialize AMQP client, continuing without archive events", "error", err)
		return nil
	}
	f.logger.Info("Initialized AMQP client",
		"exchange", config.AMQPExchange,
		"queue", config.AMQPQueue)
	return client
}
