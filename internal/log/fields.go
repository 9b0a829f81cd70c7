package log

// Common field names for structured logging.
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldClientIP  = "client_ip"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status_code"
	FieldDuration  = "duration_ms"
	FieldError     = "error"
	FieldTool      = "tool"
	FieldAccountID = "account_id"
	FieldExpenseID = "expense_id"
	FieldEventID   = "event_id"
	FieldEventKind = "event_kind"
	FieldBatchSize = "batch_size"
)

// Standard component names.
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentStorage  = "storage"
	ComponentAccounts = "accounts"
	ComponentLedger   = "ledger"
	ComponentAuth     = "auth"
	ComponentTools    = "tools"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
)
