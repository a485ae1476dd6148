package agent

import "fmt"

// DefaultOutputLimit is the per-tool character budget applied to
// results before they re-enter the conversation.
const DefaultOutputLimit = 30000

// outputLimits overrides the default budget for specific tools.
var outputLimits = map[string]int{
	"read_file":   50000,
	"write_file":  1000,
	"edit_file":   10000,
	"todo_write":  5000,
	"spawn_agent": 20000,
}

// truncateOutput keeps the head and tail of over-budget output, with a
// marker noting how much was removed. The full output still reaches the
// host via the event stream.
func truncateOutput(output string, toolName string) string {
	limit, ok := outputLimits[toolName]
	if !ok {
		limit = DefaultOutputLimit
	}
	if len(output) <= limit {
		return output
	}

	half := limit / 2
	removed := len(output) - limit
	return output[:half] +
		fmt.Sprintf("\n\n[Output truncated: %d characters removed from the middle. Re-run the tool with narrower parameters to see more.]\n\n", removed) +
		output[len(output)-half:]
}
