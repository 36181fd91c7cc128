package core

import (
	"time"

	"github.com/google/uuid"
)

// EventType discriminates the stream event union.
type EventType string

// Stream event types, in the order they typically appear in an invocation.
const (
	EventAgentSelected   EventType = "agent_selected"
	EventAgentDelegation EventType = "agent_delegation"
	EventChunk           EventType = "chunk"
	EventToolCall        EventType = "tool_call"
	EventToolResult      EventType = "tool_result"
	EventComplete        EventType = "complete"
	EventError           EventType = "error"
)

// Event is the typed unit of the streaming protocol. After emission it should
// be treated as immutable. Only the payload fields belonging to the event's
// Type are populated:
//
//	agent_selected:   Personality
//	agent_delegation: To, Task
//	chunk:            Text
//	tool_call:        ToolCallID, Name, Args
//	tool_result:      ToolCallID, Name, Result
//	complete:         (none)
//	error:            Message
//
// Ordering guarantees: a tool_call always precedes the tool_result with the
// same ToolCallID, chunk events of a generation turn precede tool_call events
// discovered in that turn, and exactly one complete terminates every
// top-level invocation.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`

	Personality *AgentPersonality `json:"personality,omitempty"`
	To          string            `json:"to,omitempty"`
	Task        string            `json:"task,omitempty"`
	Text        string            `json:"text,omitempty"`
	Name        string            `json:"name,omitempty"`
	Args        map[string]any    `json:"args,omitempty"`
	ToolCallID  string            `json:"tool_call_id,omitempty"`
	Result      any               `json:"result,omitempty"`
	Message     string            `json:"message,omitempty"`
}

// NewID generates a unique identifier for events and correlation.
func NewID() string { return uuid.NewString() }

func newEvent(t EventType) Event {
	return Event{ID: NewID(), Type: t, Timestamp: time.Now().UTC()}
}

// NewAgentSelectedEvent announces which agent owns the invocation.
func NewAgentSelectedEvent(p AgentPersonality) Event {
	ev := newEvent(EventAgentSelected)
	ev.Personality = &p
	return ev
}

// NewAgentDelegationEvent announces a sub-task handed to another agent.
// Task carries the serialized call arguments the sub-agent will see.
func NewAgentDelegationEvent(to, task string) Event {
	ev := newEvent(EventAgentDelegation)
	ev.To = to
	ev.Task = task
	return ev
}

// NewChunkEvent carries one incremental piece of assistant text.
func NewChunkEvent(text string) Event {
	ev := newEvent(EventChunk)
	ev.Text = text
	return ev
}

// NewToolCallEvent announces the intent to execute a tool.
func NewToolCallEvent(toolCallID, name string, args map[string]any) Event {
	ev := newEvent(EventToolCall)
	ev.ToolCallID = toolCallID
	ev.Name = name
	ev.Args = args
	return ev
}

// NewToolResultEvent records the outcome of a tool execution or delegation,
// keyed to the originating call.
func NewToolResultEvent(toolCallID, name string, result any) Event {
	ev := newEvent(EventToolResult)
	ev.ToolCallID = toolCallID
	ev.Name = name
	ev.Result = result
	return ev
}

// NewCompleteEvent terminates a top-level invocation stream.
func NewCompleteEvent() Event { return newEvent(EventComplete) }

// NewErrorEvent surfaces an internal failure to the caller. The stream still
// ends with a complete event afterwards.
func NewErrorEvent(message string) Event {
	ev := newEvent(EventError)
	ev.Message = message
	return ev
}
