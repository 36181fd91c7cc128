package model

import (
	"context"

	"github.com/careerate/agentcore/core"
)

// ToolDefinition declaratively exposes a callable capability to the model.
// Parameters is a JSON Schema object (minimal subset expected).
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Request captures the normalized model input produced by the reasoning loop.
type Request struct {
	Instructions string           `json:"instructions"` // System prompt for the model
	Messages     []core.Message   `json:"messages"`     // Ordered conversation history
	Tools        []ToolDefinition `json:"tools,omitempty"`
	Stream       bool             `json:"stream,omitempty"`
}

// Response is a (partial or final) chunk emitted by a streaming model.
// Partial responses carry incremental text in ContentDelta; the final
// response of a turn carries any fully assembled tool calls and the
// provider's finish reason.
type Response struct {
	ContentDelta string          `json:"content_delta,omitempty"`
	ToolCalls    []core.ToolCall `json:"tool_calls,omitempty"`
	Partial      bool            `json:"partial"`
	FinishReason string          `json:"finish_reason,omitempty"` // "stop", "tool_calls", etc.
}

// Info contains metadata about a model implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"` // "openai", "anthropic", "scripted", etc.
	SupportsTools bool   `json:"supports_tools"`
}

// Model is the minimal interface required to drive generation. Generate
// returns a response channel that is closed when the turn completes and an
// error channel carrying at most one terminal error. Implementations must
// respect context cancellation at every send.
type Model interface {
	Generate(ctx context.Context, req Request) (<-chan Response, <-chan error)

	// Info returns information about the model implementation.
	Info() Info
}
