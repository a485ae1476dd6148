package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Fim98/fimcode/llm"
)

// registerSubagentTool adds spawn_agent, which runs a child session to
// completion and returns its final answer. The child gets its own
// history, task list, and tool registry; depth is limited so subagents
// cannot recurse indefinitely.
func registerSubagentTool(reg *Registry, parent *Session) {
	reg.Register(Tool{
		Definition: llm.ToolDefinition{
			Name: "spawn_agent",
			Description: "Delegate a scoped task to a fresh child agent with its own context. " +
				"Blocks until the child finishes and returns its final answer.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"task": map[string]interface{}{
						"type":        "string",
						"description": "Natural-language description of the task to delegate.",
					},
					"max_tool_rounds": map[string]interface{}{
						"type":        "integer",
						"description": "Round budget for the child. Default: 25.",
					},
				},
				"required": []string{"task"},
			},
		},
		Run: func(arguments json.RawMessage, env Environment) (string, error) {
			args, err := ParseArgs(arguments)
			if err != nil {
				return "", err
			}
			task, ok := StringArg(args, "task")
			if !ok || task == "" {
				return "", fmt.Errorf("task is required")
			}

			config := parent.config
			config.MaxToolRounds = 25
			if rounds, ok := IntArg(args, "max_tool_rounds"); ok && rounds > 0 {
				config.MaxToolRounds = rounds
			}

			child, err := parent.spawnChild(&config)
			if err != nil {
				return "", err
			}
			defer child.Close()

			answer, err := child.Submit(context.Background(), task)
			if err != nil {
				return "", fmt.Errorf("subagent failed: %w", err)
			}
			return answer, nil
		},
	})
}
