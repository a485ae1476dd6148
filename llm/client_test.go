package llm

import (
	"strings"
	"testing"
)

func TestParseToolCallsArrayForm(t *testing.T) {
	text := `I'll read the file first.
[{"name": "read_file", "arguments": {"file_path": "main.go"}}]`

	calls := parseToolCalls(text)
	if len(calls) != 1 {
		t.Fatalf("parsed %d calls, want 1", len(calls))
	}
	if calls[0].Name != "read_file" {
		t.Errorf("name = %q", calls[0].Name)
	}
	if !strings.Contains(string(calls[0].Arguments), "main.go") {
		t.Errorf("arguments = %s", calls[0].Arguments)
	}
	if !strings.HasPrefix(calls[0].ID, "call_") {
		t.Errorf("id = %q", calls[0].ID)
	}
}

func TestParseToolCallsObjectForm(t *testing.T) {
	text := `{"tool_calls": [{"name": "shell", "arguments": {"command": "ls"}}, {"name": "read_file", "arguments": {"file_path": "x"}}]}`

	calls := parseToolCalls(text)
	if len(calls) != 2 {
		t.Fatalf("parsed %d calls, want 2", len(calls))
	}
	if calls[0].Name != "shell" || calls[1].Name != "read_file" {
		t.Errorf("names = %q, %q", calls[0].Name, calls[1].Name)
	}
}

func TestParseToolCallsPlainText(t *testing.T) {
	if calls := parseToolCalls("All done, the tests pass."); calls != nil {
		t.Errorf("parsed %d calls from plain text", len(calls))
	}
}

func TestParseToolCallsMalformedJSON(t *testing.T) {
	if calls := parseToolCalls(`[{"name": "shell", "arguments":`); calls != nil {
		t.Errorf("parsed %d calls from malformed JSON", len(calls))
	}
}

func TestStripToolCallJSON(t *testing.T) {
	text := `Running the build now.
[{"name": "shell", "arguments": {"command": "make"}}]`
	calls := parseToolCalls(text)

	stripped := stripToolCallJSON(text, calls)
	if stripped != "Running the build now." {
		t.Errorf("stripped = %q", stripped)
	}

	// Without calls the text passes through untouched.
	if got := stripToolCallJSON(text, nil); got != text {
		t.Errorf("text modified with no calls: %q", got)
	}
}

func TestBuildPromptFlattensHistory(t *testing.T) {
	c := &Client{provider: "anthropic", model: "test-model"}
	req := Request{
		Messages: []Message{
			SystemMessage("You are a coding agent."),
			UserMessage("Fix the bug"),
			AssistantMessage("Looking now.", nil),
			ToolResultMessage("call_1", "found it", false),
			ToolResultMessage("call_2", "permission denied", true),
		},
	}

	prompt := c.buildPrompt(req)
	for _, want := range []string{"Fix the bug", "[Assistant]: Looking now.", "[Tool result]: found it", "[Tool error]: permission denied"} {
		if !strings.Contains(prompt.Input, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt.Input)
		}
	}
	if !strings.Contains(prompt.SystemPrompt, "coding agent") {
		t.Errorf("system prompt = %q", prompt.SystemPrompt)
	}
}

func TestBuildResponseUsageEstimate(t *testing.T) {
	c := &Client{provider: "openai", model: "test-model"}
	req := Request{Messages: []Message{UserMessage(strings.Repeat("a", 400))}}

	resp := c.buildResponse(req, strings.Repeat("b", 200))
	if resp.Usage.InputTokens != 100 || resp.Usage.OutputTokens != 50 {
		t.Errorf("usage = %+v", resp.Usage)
	}
	if resp.Usage.TotalTokens != 150 {
		t.Errorf("total = %d", resp.Usage.TotalTokens)
	}
	if resp.Model != "test-model" {
		t.Errorf("model = %q", resp.Model)
	}
	if resp.HasToolCalls() {
		t.Error("unexpected tool calls")
	}
}
