package contract

import "time"

// ToolRequest is a structured function call requested by the model.
type ToolRequest struct {
	CallID string         `json:"call_id,omitempty"`
	Tool   string         `json:"tool"`
	Args   map[string]any `json:"args,omitempty"`
}

// ToolResult is what gets serialized back to the model for one call.
type ToolResult struct {
	CallID string `json:"call_id,omitempty"`
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ContactRequest is a visitor who asked to get in touch.
type ContactRequest struct {
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Notes      string    `json:"notes"`
	RecordedAt time.Time `json:"recorded_at"`
}

// UnknownQuestion is a question the concierge could not answer.
type UnknownQuestion struct {
	Question   string    `json:"question"`
	RecordedAt time.Time `json:"recorded_at"`
}
