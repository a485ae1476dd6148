package agent

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/Fim98/fimcode/llm"
	"github.com/Fim98/fimcode/skills"
	"github.com/Fim98/fimcode/tasklist"
)

// Session drives one conversation: it owns the history, the tool
// registry, the task list, and the event stream. Sessions are
// independent; run one per conversation.
type Session struct {
	id       string
	client   *llm.Client
	env      Environment
	registry *Registry
	todos    *tasklist.Manager
	skills   *skills.Library
	emitter  *Emitter
	config   Config
	depth    int

	mu      sync.Mutex
	history []llm.Message
	closed  bool
}

// NewSession creates a session with the full toolset registered. A nil
// config uses DefaultConfig.
func NewSession(client *llm.Client, env Environment, config *Config) *Session {
	cfg := DefaultConfig()
	if config != nil {
		cfg = *config
	}
	return newSession(client, env, cfg, 0)
}

func newSession(client *llm.Client, env Environment, cfg Config, depth int) *Session {
	id := uuid.New().String()
	s := &Session{
		id:       id,
		client:   client,
		env:      env,
		registry: NewRegistry(),
		todos:    tasklist.NewManager(),
		emitter:  NewEmitter(id, 256),
		config:   cfg,
		depth:    depth,
	}

	skillDirs := cfg.SkillDirs
	if len(skillDirs) == 0 {
		skillDirs = []string{filepath.Join(env.WorkingDirectory(), ".fimcode", "skills")}
	}
	lib, err := skills.NewLibrary(skillDirs...)
	if err != nil {
		s.emitter.Emit(EventWarning, map[string]interface{}{
			"message": fmt.Sprintf("skill loading failed: %v", err),
		})
		lib, _ = skills.NewLibrary()
	}
	s.skills = lib

	registerFileTools(s.registry)
	registerShellTool(s.registry, cfg.CommandTimeout)
	registerTodoTool(s.registry, s.todos)
	if lib.Count() > 0 {
		registerSkillTool(s.registry, lib)
	}
	if depth < cfg.MaxSubagents {
		registerSubagentTool(s.registry, s)
	}

	return s
}

// spawnChild creates a nested session sharing this session's client and
// environment but nothing else.
func (s *Session) spawnChild(config *Config) (*Session, error) {
	if s.depth >= s.config.MaxSubagents {
		return nil, fmt.Errorf("maximum subagent depth (%d) reached", s.config.MaxSubagents)
	}
	cfg := s.config
	if config != nil {
		cfg = *config
	}
	return newSession(s.client, s.env, cfg, s.depth+1), nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Todos returns the session's task list manager.
func (s *Session) Todos() *tasklist.Manager { return s.todos }

// Events returns the event channel for the host application.
func (s *Session) Events() <-chan Event { return s.emitter.Events() }

// History returns a copy of the conversation history.
func (s *Session) History() []llm.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := make([]llm.Message, len(s.history))
	copy(h, s.history)
	return h
}

// Close ends the session and closes the event stream.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.emitter.Emit(EventSessionEnd, nil)
	s.emitter.Close()
}

// Submit runs the agentic loop for one user input and returns the
// model's final answer.
func (s *Session) Submit(ctx context.Context, input string) (string, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return "", fmt.Errorf("session is closed")
	}
	s.history = append(s.history, llm.UserMessage(input))
	s.mu.Unlock()
	s.emitter.Emit(EventUserInput, map[string]interface{}{"content": input})

	systemPrompt := buildSystemPrompt(s.env, s.registry, s.skills, s.config.SystemPromptAdd)
	lastText := ""

	for round := 0; ; round++ {
		if round >= s.config.MaxToolRounds {
			s.emitter.Emit(EventRoundLimit, map[string]interface{}{"round": round})
			return lastText, nil
		}
		if err := ctx.Err(); err != nil {
			s.emitter.Emit(EventError, map[string]interface{}{"error": err.Error()})
			return lastText, err
		}

		req := llm.Request{
			Messages: append([]llm.Message{llm.SystemMessage(systemPrompt)}, s.History()...),
			Tools:    s.registry.Definitions(),
		}

		resp, err := s.client.Complete(ctx, req)
		if err != nil {
			s.emitter.Emit(EventError, map[string]interface{}{"error": err.Error()})
			return lastText, fmt.Errorf("model call failed: %w", err)
		}

		s.mu.Lock()
		s.history = append(s.history, llm.AssistantMessage(resp.Text, resp.ToolCalls))
		s.mu.Unlock()
		if resp.Text != "" {
			lastText = resp.Text
			s.emitter.Emit(EventAssistantText, map[string]interface{}{"text": resp.Text})
		}

		// Natural completion: the model answered without tools.
		if !resp.HasToolCalls() {
			return resp.Text, nil
		}

		for _, call := range resp.ToolCalls {
			result := s.executeToolCall(call)
			s.mu.Lock()
			s.history = append(s.history, llm.ToolResultMessage(result.ToolCallID, result.Content, result.IsError))
			s.mu.Unlock()
		}
	}
}

// executeToolCall dispatches one call through the registry. Failures
// become error-flagged tool results so the model can correct itself;
// they never abort the loop.
func (s *Session) executeToolCall(call llm.ToolCall) llm.ToolResult {
	s.emitter.Emit(EventToolCallStart, map[string]interface{}{
		"tool_name": call.Name,
		"call_id":   call.ID,
	})

	tool, ok := s.registry.Get(call.Name)
	if !ok {
		msg := fmt.Sprintf("Unknown tool: %s", call.Name)
		s.emitter.Emit(EventToolCallEnd, map[string]interface{}{"call_id": call.ID, "error": msg})
		return llm.ToolResult{ToolCallID: call.ID, Content: msg, IsError: true}
	}

	output, err := tool.Run(call.Arguments, s.env)
	if err != nil {
		msg := fmt.Sprintf("Tool error (%s): %v", call.Name, err)
		s.emitter.Emit(EventToolCallEnd, map[string]interface{}{"call_id": call.ID, "error": msg})
		return llm.ToolResult{ToolCallID: call.ID, Content: msg, IsError: true}
	}

	// The event stream carries the full output; the model sees the
	// truncated version.
	s.emitter.Emit(EventToolCallEnd, map[string]interface{}{"call_id": call.ID, "output": output})
	return llm.ToolResult{
		ToolCallID: call.ID,
		Content:    truncateOutput(output, call.Name),
	}
}
