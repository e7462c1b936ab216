package backend

import (
	"ledgerd/internal/store"
)

// Backend bundles the narrow store ports the presentation layer consumes.
type Backend interface {
	store.ExpenseWriter
	store.ExpenseLister
	store.SummaryReader
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result contains the backend instance and an optional cleanup function.
type Result struct {
	Backend Backend
	Cleanup CleanupFunc
}

// Type selects the ledger backend.
type Type string

const (
	JSONBackend   Type = "json"
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer.
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid.
func (t Type) IsValid() bool {
	switch t {
	case JSONBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Config holds configuration for backend creation.
type Config struct {
	Type Type

	// JSON file backend
	JSONFilePath string

	// SQLite backend
	SQLiteDBPath string

	// Event bus (optional, used by json and sqlite backends)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}
