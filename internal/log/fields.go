package log

// Field names shared across components.
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldAmountCents = "amount_cents"
	FieldTotalCents  = "total_cents"
	FieldTodayCents  = "today_cents"
	FieldKind        = "kind"
	FieldBucketCount = "bucket_count"
	FieldBackend     = "backend"
)

// Component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
)

// Operation names.
const (
	OpIncome   = "income"
	OpExpense  = "expense"
	OpReset    = "reset"
	OpRestore  = "restore"
	OpReport   = "report"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
