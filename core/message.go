package core

// Conversation roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ToolCall is a model-emitted directive naming a capability and its
// serialized arguments. Tool calls are produced exclusively by model
// adapters; the reasoning loop never constructs one itself.
type ToolCall struct {
	ID        string `json:"id"`                  // Unique within one generation turn
	Name      string `json:"name"`                // Capability name
	Arguments string `json:"arguments,omitempty"` // Serialized JSON argument payload
}

// Message is a single entry in a conversation. Tool-role messages carry the
// ToolCallID of the call they answer; assistant messages additionally record
// the tool calls emitted during that turn so provider adapters can thread
// observations back to their originating call.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
}

// NewSystemMessage creates a system-role message.
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// NewUserMessage creates a user-role message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates an assistant-role message recording the text
// and any tool calls produced in the same generation turn.
func NewAssistantMessage(content string, calls ...ToolCall) Message {
	m := Message{Role: RoleAssistant, Content: content}
	if len(calls) > 0 {
		m.ToolCalls = make([]ToolCall, len(calls))
		copy(m.ToolCalls, calls)
	}
	return m
}

// NewToolMessage creates a tool-role observation keyed to the call it answers.
func NewToolMessage(toolCallID, content string) Message {
	return Message{Role: RoleTool, Content: content, ToolCallID: toolCallID}
}

// Conversation is an ordered, append-only message sequence. Each loop run
// exclusively owns its conversation; a delegated sub-agent always gets a
// fresh instance and never shares message slices with its parent.
type Conversation struct {
	messages []Message
}

// NewConversation creates a conversation seeded with the given messages.
// The input slice is copied so callers cannot mutate history afterwards.
func NewConversation(messages ...Message) *Conversation {
	c := &Conversation{messages: make([]Message, len(messages))}
	copy(c.messages, messages)
	return c
}

// Append adds a message to the end of the conversation.
func (c *Conversation) Append(m Message) {
	c.messages = append(c.messages, m)
}

// Messages returns a copy of the message sequence for safe iteration.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages in the conversation.
func (c *Conversation) Len() int { return len(c.messages) }

// LastAssistantText returns the content of the most recent non-empty
// assistant message, or "" if none exists.
func (c *Conversation) LastAssistantText() string {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role == RoleAssistant && c.messages[i].Content != "" {
			return c.messages[i].Content
		}
	}
	return ""
}
