package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Fim98/fimcode/llm"
)

func registerFileTools(reg *Registry) {
	reg.Register(Tool{
		Definition: llm.ToolDefinition{
			Name:        "read_file",
			Description: "Read a file. Returns line-numbered content.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"file_path": map[string]interface{}{
						"type":        "string",
						"description": "Path to the file, absolute or relative to the working directory.",
					},
					"offset": map[string]interface{}{
						"type":        "integer",
						"description": "1-based line number to start from.",
					},
					"limit": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of lines to return. Default: 2000.",
					},
				},
				"required": []string{"file_path"},
			},
		},
		Run: func(arguments json.RawMessage, env Environment) (string, error) {
			args, err := ParseArgs(arguments)
			if err != nil {
				return "", err
			}
			path, ok := StringArg(args, "file_path")
			if !ok || path == "" {
				return "", fmt.Errorf("file_path is required")
			}
			offset, _ := IntArg(args, "offset")
			limit, _ := IntArg(args, "limit")
			if limit <= 0 {
				limit = 2000
			}

			content, err := env.ReadFile(path)
			if err != nil {
				return "", err
			}
			return numberLines(content, offset, limit), nil
		},
	})

	reg.Register(Tool{
		Definition: llm.ToolDefinition{
			Name:        "write_file",
			Description: "Write content to a file, creating it and any parent directories.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"file_path": map[string]interface{}{
						"type":        "string",
						"description": "Path to write to.",
					},
					"content": map[string]interface{}{
						"type":        "string",
						"description": "Full file content.",
					},
				},
				"required": []string{"file_path", "content"},
			},
		},
		Run: func(arguments json.RawMessage, env Environment) (string, error) {
			args, err := ParseArgs(arguments)
			if err != nil {
				return "", err
			}
			path, ok := StringArg(args, "file_path")
			if !ok || path == "" {
				return "", fmt.Errorf("file_path is required")
			}
			content, ok := StringArg(args, "content")
			if !ok {
				return "", fmt.Errorf("content is required")
			}
			if err := env.WriteFile(path, content); err != nil {
				return "", err
			}
			return fmt.Sprintf("Wrote %d bytes to %s", len(content), path), nil
		},
	})

	reg.Register(Tool{
		Definition: llm.ToolDefinition{
			Name:        "edit_file",
			Description: "Replace an exact string in a file. old_string must be unique unless replace_all is true.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"file_path": map[string]interface{}{
						"type":        "string",
						"description": "Path to the file to edit.",
					},
					"old_string": map[string]interface{}{
						"type":        "string",
						"description": "Exact text to find.",
					},
					"new_string": map[string]interface{}{
						"type":        "string",
						"description": "Replacement text.",
					},
					"replace_all": map[string]interface{}{
						"type":        "boolean",
						"description": "Replace every occurrence. Default: false.",
					},
				},
				"required": []string{"file_path", "old_string", "new_string"},
			},
		},
		Run: func(arguments json.RawMessage, env Environment) (string, error) {
			args, err := ParseArgs(arguments)
			if err != nil {
				return "", err
			}
			path, ok := StringArg(args, "file_path")
			if !ok || path == "" {
				return "", fmt.Errorf("file_path is required")
			}
			oldString, ok := StringArg(args, "old_string")
			if !ok || oldString == "" {
				return "", fmt.Errorf("old_string is required")
			}
			newString, _ := StringArg(args, "new_string")
			replaceAll, _ := BoolArg(args, "replace_all")

			content, err := env.ReadFile(path)
			if err != nil {
				return "", err
			}

			count := strings.Count(content, oldString)
			if count == 0 {
				return "", fmt.Errorf("old_string not found in %s", path)
			}
			if count > 1 && !replaceAll {
				return "", fmt.Errorf("old_string found %d times in %s; add surrounding context or set replace_all", count, path)
			}

			var edited string
			if replaceAll {
				edited = strings.ReplaceAll(content, oldString, newString)
			} else {
				edited = strings.Replace(content, oldString, newString, 1)
			}
			if err := env.WriteFile(path, edited); err != nil {
				return "", err
			}

			replaced := 1
			if replaceAll {
				replaced = count
			}
			return fmt.Sprintf("Replaced %d occurrence(s) in %s", replaced, path), nil
		},
	})
}

// numberLines formats content as "N | line", applying a 1-based offset
// and a line limit.
func numberLines(content string, offset, limit int) string {
	lines := strings.Split(content, "\n")

	start := 0
	if offset > 0 {
		start = offset - 1
	}
	if start >= len(lines) {
		return ""
	}
	end := len(lines)
	if start+limit < end {
		end = start + limit
	}

	var sb strings.Builder
	for i := start; i < end; i++ {
		fmt.Fprintf(&sb, "%d | %s\n", i+1, lines[i])
	}
	return sb.String()
}
