package tasklist

import (
	"errors"
	"fmt"
)

var (
	// ErrTooManyTasks is returned by Update when the submitted list
	// exceeds MaxTasks entries.
	ErrTooManyTasks = errors.New("tasklist: too many tasks")
	// ErrMultipleInProgress is returned by Update when more than one
	// submitted task has status in_progress.
	ErrMultipleInProgress = errors.New("tasklist: multiple tasks in_progress")
)

// MissingFieldError reports a task whose content or activeForm is empty
// after trimming. Index is the 0-based position in the submitted list.
type MissingFieldError struct {
	Index int
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("tasklist: task %d: missing %s", e.Index, e.Field)
}

// InvalidStatusError reports a task whose status is not one of pending,
// in_progress, or completed.
type InvalidStatusError struct {
	Index int
	Value string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("tasklist: task %d: invalid status %q", e.Index, e.Value)
}
