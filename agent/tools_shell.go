package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Fim98/fimcode/llm"
)

// MaxCommandTimeout caps any model-requested shell timeout.
const MaxCommandTimeout = 10 * time.Minute

func registerShellTool(reg *Registry, defaultTimeout time.Duration) {
	reg.Register(Tool{
		Definition: llm.ToolDefinition{
			Name:        "shell",
			Description: "Execute a shell command in the working directory. Returns combined output and the exit code.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"command": map[string]interface{}{
						"type":        "string",
						"description": "The command to run.",
					},
					"timeout_ms": map[string]interface{}{
						"type":        "integer",
						"description": "Override the default command timeout in milliseconds.",
					},
				},
				"required": []string{"command"},
			},
		},
		Run: func(arguments json.RawMessage, env Environment) (string, error) {
			args, err := ParseArgs(arguments)
			if err != nil {
				return "", err
			}
			command, ok := StringArg(args, "command")
			if !ok || command == "" {
				return "", fmt.Errorf("command is required")
			}

			timeout := defaultTimeout
			if ms, ok := IntArg(args, "timeout_ms"); ok && ms > 0 {
				timeout = time.Duration(ms) * time.Millisecond
			}
			if timeout > MaxCommandTimeout {
				timeout = MaxCommandTimeout
			}

			result, err := env.ExecCommand(context.Background(), command, timeout)
			if err != nil {
				return "", err
			}

			var sb strings.Builder
			sb.WriteString(result.Output())
			if result.TimedOut {
				fmt.Fprintf(&sb, "\n\n[Command timed out after %s. Partial output shown above; retry with a larger timeout_ms if needed.]", timeout)
			} else if result.ExitCode != 0 {
				fmt.Fprintf(&sb, "\n\n[Exit code: %d]", result.ExitCode)
			}
			return sb.String(), nil
		},
	})
}
