package agent

import (
	"encoding/json"
	"fmt"

	"github.com/Fim98/fimcode/llm"
	"github.com/Fim98/fimcode/tasklist"
)

// registerTodoTool wires the session's task list manager into the
// registry. The tool takes the complete replacement list on every call;
// validation failures surface as tool errors for the model to correct
// on its next turn, never as loop failures.
func registerTodoTool(reg *Registry, todos *tasklist.Manager) {
	reg.Register(Tool{
		Definition: llm.ToolDefinition{
			Name: "todo_write",
			Description: "Replace the task list with an updated version. Always submit every task, not just the changed ones. " +
				"At most 20 tasks, and at most one may be in_progress. Returns the rendered list.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"items": map[string]interface{}{
						"type":        "array",
						"description": "The full task list, in display order.",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"content": map[string]interface{}{
									"type":        "string",
									"description": "What the task is, e.g. \"Run tests\".",
								},
								"status": map[string]interface{}{
									"type": "string",
									"enum": []string{"pending", "in_progress", "completed"},
								},
								"activeForm": map[string]interface{}{
									"type":        "string",
									"description": "Present-tense form shown while in_progress, e.g. \"Running tests\".",
								},
							},
							"required": []string{"content", "status", "activeForm"},
						},
					},
				},
				"required": []string{"items"},
			},
		},
		Run: func(arguments json.RawMessage, env Environment) (string, error) {
			args, err := ParseArgs(arguments)
			if err != nil {
				return "", err
			}
			items, ok := args["items"].([]interface{})
			if !ok {
				return "", fmt.Errorf("items is required and must be an array")
			}
			return todos.Update(items)
		},
	})
}
