package agent

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/Fim98/fimcode/llm"
)

// ToolFunc executes one tool call. It receives the raw JSON arguments
// and the environment the session runs in, and returns the text that
// becomes the tool result.
type ToolFunc func(arguments json.RawMessage, env Environment) (string, error)

// Tool pairs an llm-visible definition with its executor.
type Tool struct {
	Definition llm.ToolDefinition
	Run        ToolFunc
}

// Registry holds the tools available to a session.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds or replaces a tool.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[t.Definition.Name] = t
}

// Get looks up a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Definitions returns all tool definitions sorted by name, for
// inclusion in the model request.
func (r *Registry) Definitions() []llm.ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]llm.ToolDefinition, 0, len(r.tools))
	for _, t := range r.tools {
		defs = append(defs, t.Definition)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// ParseArgs unmarshals tool call arguments into a map.
func ParseArgs(raw json.RawMessage) (map[string]interface{}, error) {
	var args map[string]interface{}
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("invalid tool arguments: %w", err)
	}
	return args, nil
}

// StringArg extracts a string argument.
func StringArg(args map[string]interface{}, key string) (string, bool) {
	s, ok := args[key].(string)
	return s, ok
}

// IntArg extracts an integer argument. JSON numbers decode as float64.
func IntArg(args map[string]interface{}, key string) (int, bool) {
	switch n := args[key].(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}

// BoolArg extracts a boolean argument.
func BoolArg(args map[string]interface{}, key string) (bool, bool) {
	b, ok := args[key].(bool)
	return b, ok
}
