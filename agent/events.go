package agent

import (
	"sync"
	"time"
)

// EventKind identifies the type of a session event.
type EventKind string

const (
	EventUserInput     EventKind = "user_input"
	EventAssistantText EventKind = "assistant_text"
	EventToolCallStart EventKind = "tool_call_start"
	EventToolCallEnd   EventKind = "tool_call_end"
	EventRoundLimit    EventKind = "round_limit"
	EventWarning       EventKind = "warning"
	EventError         EventKind = "error"
	EventSessionEnd    EventKind = "session_end"
)

// Event is one observable step of a session, delivered to the host
// application over a channel.
type Event struct {
	Kind      EventKind              `json:"kind"`
	Timestamp time.Time              `json:"timestamp"`
	SessionID string                 `json:"session_id"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// Emitter delivers events without ever blocking the agent loop: when
// the buffer is full the event is dropped.
type Emitter struct {
	sessionID string
	ch        chan Event
	mu        sync.Mutex
	closed    bool
}

// NewEmitter creates an Emitter with the given channel buffer size.
func NewEmitter(sessionID string, buffer int) *Emitter {
	if buffer <= 0 {
		buffer = 256
	}
	return &Emitter{sessionID: sessionID, ch: make(chan Event, buffer)}
}

// Emit sends an event. Emitting on a closed Emitter is a no-op.
func (e *Emitter) Emit(kind EventKind, data map[string]interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	select {
	case e.ch <- Event{Kind: kind, Timestamp: time.Now(), SessionID: e.sessionID, Data: data}:
	default:
	}
}

// Events returns the read-only event channel.
func (e *Emitter) Events() <-chan Event {
	return e.ch
}

// Close closes the event channel. Safe to call more than once.
func (e *Emitter) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.closed {
		e.closed = true
		close(e.ch)
	}
}
