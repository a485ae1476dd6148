// Package llm is a thin model client built on gollm
// (github.com/teilomillet/gollm). It exposes just enough surface for
// the agent loop: a message history in, a completion with optional tool
// calls out, with retry and error classification in between.
package llm

import "encoding/json"

// Role identifies who produced a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is a model-requested tool invocation.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ToolResult carries a tool's textual output back to the model.
type ToolResult struct {
	ToolCallID string `json:"tool_call_id"`
	Content    string `json:"content"`
	IsError    bool   `json:"is_error"`
}

// ToolDefinition describes a callable tool to the model.
type ToolDefinition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

// Message is one entry of a conversation sent to the model.
type Message struct {
	Role       Role        `json:"role"`
	Content    string      `json:"content"`
	ToolCalls  []ToolCall  `json:"tool_calls,omitempty"`
	ToolResult *ToolResult `json:"tool_result,omitempty"`
}

// SystemMessage builds a system message.
func SystemMessage(text string) Message {
	return Message{Role: RoleSystem, Content: text}
}

// UserMessage builds a user message.
func UserMessage(text string) Message {
	return Message{Role: RoleUser, Content: text}
}

// AssistantMessage builds an assistant message with optional tool calls.
func AssistantMessage(text string, calls []ToolCall) Message {
	return Message{Role: RoleAssistant, Content: text, ToolCalls: calls}
}

// ToolResultMessage builds a tool result message.
func ToolResultMessage(callID, content string, isError bool) Message {
	return Message{
		Role:       RoleTool,
		ToolResult: &ToolResult{ToolCallID: callID, Content: content, IsError: isError},
	}
}

// Request is one completion request.
type Request struct {
	Model       string           `json:"model,omitempty"`
	Messages    []Message        `json:"messages"`
	Tools       []ToolDefinition `json:"tools,omitempty"`
	MaxTokens   int              `json:"max_tokens,omitempty"`
	Temperature *float64         `json:"temperature,omitempty"`
}

// Usage is an approximate token accounting for one completion. gollm
// does not expose provider-reported usage, so counts are estimated.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Response is the model's reply to a Request.
type Response struct {
	ID        string     `json:"id"`
	Model     string     `json:"model"`
	Text      string     `json:"text"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
	Usage     Usage      `json:"usage"`
}

// HasToolCalls reports whether the model requested any tool execution.
func (r *Response) HasToolCalls() bool {
	return len(r.ToolCalls) > 0
}
