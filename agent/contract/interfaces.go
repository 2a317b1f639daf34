package contract

import "context"

// Notifier pushes a short message to the site owner. Implementations must be
// safe to call with missing credentials (no-op).
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// ToolGateway executes model-requested function calls.
type ToolGateway interface {
	Execute(ctx context.Context, reqs []ToolRequest) ([]ToolResult, error)
}

// RecordReader exposes the in-memory ledger of recorded contacts and
// unanswered questions.
type RecordReader interface {
	Contacts() []ContactRequest
	UnknownQuestions() []UnknownQuestion
}
