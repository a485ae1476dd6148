// Package agent implements a small tutorial coding agent.
//
// A Session drives the loop: the conversation history is sent to a
// language model through the llm package, tool calls in the reply are
// executed locally, and their results are appended to the history until
// the model answers without requesting tools. The toolset is fixed:
// shell execution, file read/write/edit, a structured todo list
// (package tasklist), skill loading (package skills), and spawning a
// scoped child agent.
//
// Each Session owns its own state. Nothing is shared between sessions,
// so concurrent conversations simply use separate Session values.
//
// # Quick Start
//
//	client, _ := llm.NewClient("anthropic", "claude-sonnet-4-5")
//	env := agent.NewLocalEnvironment("/path/to/project")
//	session := agent.NewSession(client, env, nil)
//	defer session.Close()
//
//	reply, err := session.Submit(ctx, "Add a --verbose flag")
package agent
