package tasklist

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Status is the lifecycle state of a single task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// MaxTasks is the maximum number of tasks a list may hold.
const MaxTasks = 20

// emptyRendering is returned by Render when the list holds no tasks.
const emptyRendering = "No tasks yet."

// Task is one entry in the managed list.
type Task struct {
	Content    string `json:"content"`
	Status     Status `json:"status"`
	ActiveForm string `json:"activeForm"`
}

// Manager owns the task list for one conversation. Construct one per
// session; instances share no state. The zero value is not usable, use
// NewManager.
type Manager struct {
	mu    sync.Mutex
	tasks []Task
}

// NewManager creates a Manager with an empty task list.
func NewManager() *Manager {
	return &Manager{}
}

// Update validates items as a full replacement for the current list and
// applies it atomically. Each item is an untyped JSON object; fields are
// coerced and validated defensively. On any validation failure the
// stored list is left untouched and a descriptive error is returned.
// On success the stored list is replaced and the fresh rendering of the
// new list is returned.
func (m *Manager) Update(items []interface{}) (string, error) {
	validated := make([]Task, 0, len(items))
	inProgress := 0

	for i, item := range items {
		fields, _ := item.(map[string]interface{})

		content := strings.TrimSpace(coerceString(fields["content"]))
		if content == "" {
			return "", &MissingFieldError{Index: i, Field: "content"}
		}

		status := StatusPending
		if raw, ok := fields["status"]; ok {
			status = Status(strings.ToLower(coerceString(raw)))
		}
		switch status {
		case StatusPending, StatusInProgress, StatusCompleted:
		default:
			return "", &InvalidStatusError{Index: i, Value: string(status)}
		}

		activeForm := strings.TrimSpace(coerceString(fields["activeForm"]))
		if activeForm == "" {
			return "", &MissingFieldError{Index: i, Field: "activeForm"}
		}

		if status == StatusInProgress {
			inProgress++
		}
		validated = append(validated, Task{
			Content:    content,
			Status:     status,
			ActiveForm: activeForm,
		})
	}

	if len(validated) > MaxTasks {
		return "", fmt.Errorf("%w (%d > %d)", ErrTooManyTasks, len(validated), MaxTasks)
	}
	if inProgress > 1 {
		return "", fmt.Errorf("%w (%d)", ErrMultipleInProgress, inProgress)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = validated
	return m.renderLocked(), nil
}

// Render returns the deterministic textual view of the current list.
func (m *Manager) Render() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.renderLocked()
}

func (m *Manager) renderLocked() string {
	if len(m.tasks) == 0 {
		return emptyRendering
	}

	var sb strings.Builder
	completed := 0
	for _, t := range m.tasks {
		switch t.Status {
		case StatusCompleted:
			completed++
			fmt.Fprintf(&sb, "[x] %s\n", t.Content)
		case StatusInProgress:
			fmt.Fprintf(&sb, "[>] %s <- %s\n", t.Content, t.ActiveForm)
		default:
			fmt.Fprintf(&sb, "[ ] %s\n", t.Content)
		}
	}
	fmt.Fprintf(&sb, "\n(%d/%d done)", completed, len(m.tasks))
	return sb.String()
}

// Count returns the number of tasks currently stored.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Tasks returns a copy of the current list.
func (m *Manager) Tasks() []Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Task, len(m.tasks))
	copy(out, m.tasks)
	return out
}

// coerceString converts a decoded JSON value to text. Absent and null
// values become the empty string; scalars are formatted.
func coerceString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprintf("%v", s)
	}
}
