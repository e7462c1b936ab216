package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldUserAgent   = "user_agent"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldRef         = "ref"
	FieldExpenseDesc = "expense_description"
	FieldAmountCents = "amount_cents"
	FieldCategory    = "category"
	FieldDate        = "date"
	FieldBackend     = "backend"
	FieldLedgerPath  = "ledger_path"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentStore   = "store"
	ComponentBackend = "backend"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentCache   = "cache"
	ComponentReport  = "report"
)

// Operations defines standard operation names
const (
	OpAppend    = "append"
	OpList      = "list"
	OpSummary   = "summary"
	OpPersist   = "persist"
	OpRestore   = "restore"
	OpArchive   = "archive"
	OpReconcile = "reconcile"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
