package llm

import "context"

// Roles in a chat transcript.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Finish reasons reported by the model.
const (
	FinishStop      = "stop"
	FinishToolCalls = "tool_calls"
)

// Message is one entry in a chat transcript. Assistant messages may carry
// tool calls; tool messages echo the call ID they answer.
type Message struct {
	Role       string
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
}

// ToolCall is the model's request to invoke one tool. Arguments is the raw
// JSON object string exactly as the model produced it.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// ToolDefinition describes one tool offered to the model. Parameters is a
// JSON Schema object.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// CompletionRequest is one model invocation.
type CompletionRequest struct {
	Messages []Message
	Tools    []ToolDefinition
}

// Completion is the model's reply to a CompletionRequest.
type Completion struct {
	Message      Message
	FinishReason string
}

// Client produces chat completions. Implementations must be safe for
// concurrent use.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
}
