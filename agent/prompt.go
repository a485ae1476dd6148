package agent

import (
	"fmt"
	"strings"
	"time"

	"github.com/Fim98/fimcode/skills"
)

const basePrompt = `You are a coding agent. You help with software engineering tasks by reading files, editing code, and running commands, iterating until the task is done.

# Working Style

- Read files before editing them.
- Use edit_file for targeted changes; old_string must match the file exactly and be unique.
- Use write_file only for new files.
- Prefer short-running shell commands and verify changes after making them.
- Track multi-step work with todo_write: submit the full task list on every call, keep exactly one task in_progress, and mark tasks completed as you finish them.

# Error Handling

- If a tool call fails, read the error, adjust, and try again.
- If edit_file reports old_string not found, re-read the file first.`

// buildSystemPrompt assembles the full system prompt: base
// instructions, environment context, available tools and skills, and
// any user-supplied extra instructions.
func buildSystemPrompt(env Environment, reg *Registry, lib *skills.Library, extra string) string {
	var sb strings.Builder
	sb.WriteString(basePrompt)
	sb.WriteString("\n\n")

	sb.WriteString("<environment>\n")
	fmt.Fprintf(&sb, "Working directory: %s\n", env.WorkingDirectory())
	fmt.Fprintf(&sb, "Platform: %s\n", env.Platform())
	fmt.Fprintf(&sb, "Today's date: %s\n", time.Now().Format("2006-01-02"))
	sb.WriteString("</environment>\n\n")

	sb.WriteString("# Available Tools\n\n")
	for _, def := range reg.Definitions() {
		fmt.Fprintf(&sb, "## %s\n%s\n\n", def.Name, def.Description)
	}

	if lib != nil && lib.Count() > 0 {
		sb.WriteString("# Available Skills\n\nLoad a skill with the skill tool when its description matches the task.\n\n")
		for _, s := range lib.List() {
			fmt.Fprintf(&sb, "- %s: %s\n", s.Name, s.Description)
		}
		sb.WriteString("\n")
	}

	if extra != "" {
		sb.WriteString("# Extra Instructions\n\n")
		sb.WriteString(extra)
		sb.WriteString("\n")
	}

	return sb.String()
}
