package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Fim98/fimcode/llm"
	"github.com/Fim98/fimcode/skills"
)

func registerSkillTool(reg *Registry, lib *skills.Library) {
	reg.Register(Tool{
		Definition: llm.ToolDefinition{
			Name:        "skill",
			Description: "Load a skill's full instructions by name. The available skills are listed in the system prompt.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": map[string]interface{}{
						"type":        "string",
						"description": "The skill name.",
					},
				},
				"required": []string{"name"},
			},
		},
		Run: func(arguments json.RawMessage, env Environment) (string, error) {
			args, err := ParseArgs(arguments)
			if err != nil {
				return "", err
			}
			name, ok := StringArg(args, "name")
			if !ok || name == "" {
				return "", fmt.Errorf("name is required")
			}

			s, ok := lib.Get(name)
			if !ok {
				names := make([]string, 0, lib.Count())
				for _, known := range lib.List() {
					names = append(names, known.Name)
				}
				return "", fmt.Errorf("unknown skill %q (available: %s)", name, strings.Join(names, ", "))
			}
			return fmt.Sprintf("# Skill: %s\n\n%s", s.Name, s.Instructions), nil
		},
	})
}
