package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/teilomillet/gollm"
)

// Client wraps a gollm.LLM instance for one provider.
type Client struct {
	provider string
	model    string
	llm      gollm.LLM
	retry    RetryPolicy
}

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

type clientConfig struct {
	apiKey      string
	maxTokens   int
	temperature float64
	retry       RetryPolicy
}

// WithAPIKey sets the provider API key. When empty, gollm reads it from
// the provider's conventional environment variable.
func WithAPIKey(key string) ClientOption {
	return func(c *clientConfig) { c.apiKey = key }
}

// WithMaxTokens sets the default completion token budget.
func WithMaxTokens(n int) ClientOption {
	return func(c *clientConfig) { c.maxTokens = n }
}

// WithTemperature sets the default sampling temperature.
func WithTemperature(t float64) ClientOption {
	return func(c *clientConfig) { c.temperature = t }
}

// WithRetryPolicy overrides the default retry policy.
func WithRetryPolicy(p RetryPolicy) ClientOption {
	return func(c *clientConfig) { c.retry = p }
}

// NewClient creates a Client for the given provider and model.
func NewClient(provider, model string, opts ...ClientOption) (*Client, error) {
	cfg := &clientConfig{
		maxTokens:   8192,
		temperature: 0.7,
		retry:       DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	gollmOpts := []gollm.ConfigOption{
		gollm.SetProvider(provider),
		gollm.SetModel(model),
		gollm.SetMaxTokens(cfg.maxTokens),
		gollm.SetTemperature(cfg.temperature),
		gollm.SetMaxRetries(0), // retries are handled here, not by gollm
		gollm.SetLogLevel(gollm.LogLevelWarn),
	}
	if cfg.apiKey != "" {
		gollmOpts = append(gollmOpts, gollm.SetAPIKey(cfg.apiKey))
	}

	backend, err := gollm.NewLLM(gollmOpts...)
	if err != nil {
		return nil, fmt.Errorf("llm: create %s client: %w", provider, err)
	}

	return &Client{
		provider: provider,
		model:    model,
		llm:      backend,
		retry:    cfg.retry,
	}, nil
}

// Provider returns the provider identifier.
func (c *Client) Provider() string { return c.provider }

// Model returns the configured model identifier.
func (c *Client) Model() string { return c.model }

// Complete sends the request and returns the full response, retrying
// transient provider failures.
func (c *Client) Complete(ctx context.Context, req Request) (*Response, error) {
	prompt := c.buildPrompt(req)

	if req.Model != "" {
		c.llm.SetOption("model", req.Model)
	}
	if req.Temperature != nil {
		c.llm.SetOption("temperature", *req.Temperature)
	}

	text, err := Retry(ctx, c.retry, func(ctx context.Context) (string, error) {
		out, genErr := c.llm.Generate(ctx, prompt)
		if genErr != nil {
			return "", classifyError(c.provider, genErr)
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	return c.buildResponse(req, text), nil
}

// buildPrompt flattens the message history into a gollm Prompt. gollm
// takes a single prompt string, so prior turns are inlined with role
// markers the way the underlying providers expect transcript context.
func (c *Client) buildPrompt(req Request) *gollm.Prompt {
	var system strings.Builder
	var parts []string

	for _, msg := range req.Messages {
		switch msg.Role {
		case RoleSystem:
			system.WriteString(msg.Content)
			system.WriteString("\n")
		case RoleUser:
			parts = append(parts, msg.Content)
		case RoleAssistant:
			if msg.Content != "" {
				parts = append(parts, "[Assistant]: "+msg.Content)
			}
			for _, tc := range msg.ToolCalls {
				parts = append(parts, fmt.Sprintf("[Assistant tool call %s]: %s(%s)", tc.ID, tc.Name, tc.Arguments))
			}
		case RoleTool:
			if msg.ToolResult != nil {
				prefix := "[Tool result]"
				if msg.ToolResult.IsError {
					prefix = "[Tool error]"
				}
				parts = append(parts, prefix+": "+msg.ToolResult.Content)
			}
		}
	}

	promptText := strings.Join(parts, "\n")
	if promptText == "" {
		promptText = "Hello"
	}

	var opts []gollm.PromptOption
	if system.Len() > 0 {
		opts = append(opts, gollm.WithSystemPrompt(strings.TrimSpace(system.String()), gollm.CacheTypeEphemeral))
	}
	if req.MaxTokens > 0 {
		opts = append(opts, gollm.WithMaxLength(req.MaxTokens))
	}
	if len(req.Tools) > 0 {
		tools := make([]gollm.Tool, 0, len(req.Tools))
		for _, t := range req.Tools {
			tools = append(tools, gollm.Tool{
				Type: "function",
				Function: gollm.Function{
					Name:        t.Name,
					Description: t.Description,
					Parameters:  t.Parameters,
				},
			})
		}
		opts = append(opts, gollm.WithTools(tools))
		opts = append(opts, gollm.WithToolChoice("auto"))
	}

	return gollm.NewPrompt(promptText, opts...)
}

// buildResponse assembles a Response from generated text, splitting out
// any tool calls the model embedded as JSON.
func (c *Client) buildResponse(req Request, text string) *Response {
	model := req.Model
	if model == "" {
		model = c.model
	}

	calls := parseToolCalls(text)

	input := 0
	for _, msg := range req.Messages {
		input += len(msg.Content) / 4
	}
	output := len(text) / 4

	return &Response{
		ID:        "resp_" + uuid.New().String()[:8],
		Model:     model,
		Text:      stripToolCallJSON(text, calls),
		ToolCalls: calls,
		Usage: Usage{
			InputTokens:  input,
			OutputTokens: output,
			TotalTokens:  input + output,
		},
	}
}

// toolCallMarkers are the text prefixes gollm providers use when
// returning tool calls inline in the completion text.
var toolCallMarkers = []string{`{"tool_calls"`, `[{"name"`}

// parseToolCalls extracts tool calls embedded in the completion text.
func parseToolCalls(text string) []ToolCall {
	start := -1
	for _, marker := range toolCallMarkers {
		if idx := strings.Index(text, marker); idx != -1 {
			start = idx
			break
		}
	}
	if start == -1 {
		return nil
	}

	var raw []struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	remaining := []byte(text[start:])
	if err := json.Unmarshal(remaining, &raw); err != nil {
		// Object form: {"tool_calls": [...]}.
		var wrapper struct {
			ToolCalls json.RawMessage `json:"tool_calls"`
		}
		if err := json.Unmarshal(remaining, &wrapper); err != nil {
			return nil
		}
		if err := json.Unmarshal(wrapper.ToolCalls, &raw); err != nil {
			return nil
		}
	}

	calls := make([]ToolCall, 0, len(raw))
	for _, rc := range raw {
		calls = append(calls, ToolCall{
			ID:        "call_" + uuid.New().String()[:8],
			Name:      rc.Name,
			Arguments: rc.Arguments,
		})
	}
	return calls
}

// stripToolCallJSON removes parsed tool call JSON from the reply text.
func stripToolCallJSON(text string, calls []ToolCall) string {
	if len(calls) == 0 {
		return text
	}
	for _, marker := range toolCallMarkers {
		if idx := strings.Index(text, marker); idx != -1 {
			text = text[:idx]
		}
	}
	return strings.TrimSpace(text)
}
