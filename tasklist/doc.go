// Package tasklist implements the agent's structured todo list.
//
// A Manager owns a bounded, ordered list of tasks for a single
// conversation. The model never edits individual entries: every update
// submits the complete replacement list, which is validated as a whole
// and applied atomically or rejected with the prior state intact. The
// sole output is a deterministic plain-text rendering that flows back
// to the model as the tool result.
//
// The list holds at most 20 tasks and at most one task may be
// in_progress at a time, which keeps the agent focused on a single
// piece of work.
package tasklist
