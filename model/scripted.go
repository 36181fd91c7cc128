package model

import (
	"context"
	"strings"
	"sync"

	"github.com/careerate/agentcore/core"
)

// ScriptedTurn is one canned generation turn for a ScriptedModel.
type ScriptedTurn struct {
	Text  string
	Calls []core.ToolCall
}

// ScriptedModel is a lightweight in-memory Model useful for tests and
// examples. Each Generate call consumes the next scripted turn; when the
// script is exhausted it emits an empty final turn, or repeats the last turn
// forever if RepeatLastTurn was set (useful to exercise iteration caps).
type ScriptedModel struct {
	mu         sync.Mutex
	turns      []ScriptedTurn
	next       int
	repeatLast bool
	generates  int
}

// NewScriptedModel constructs a ScriptedModel playing the given turns in order.
func NewScriptedModel(turns ...ScriptedTurn) *ScriptedModel {
	return &ScriptedModel{turns: turns}
}

// RepeatLastTurn makes the model replay its final scripted turn indefinitely
// once the script is exhausted. Tool call IDs are freshened on each replay so
// ids stay unique per generation turn.
func (m *ScriptedModel) RepeatLastTurn() *ScriptedModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.repeatLast = true
	return m
}

// Generates reports how many generation turns have been requested.
func (m *ScriptedModel) Generates() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generates
}

func (m *ScriptedModel) take() ScriptedTurn {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.generates++
	if m.next < len(m.turns) {
		t := m.turns[m.next]
		m.next++
		return t
	}
	if m.repeatLast && len(m.turns) > 0 {
		t := m.turns[len(m.turns)-1]
		calls := make([]core.ToolCall, len(t.Calls))
		copy(calls, t.Calls)
		for i := range calls {
			calls[i].ID = ""
		}
		return ScriptedTurn{Text: t.Text, Calls: calls}
	}
	return ScriptedTurn{}
}

// Generate implements Model; emits streaming word chunks then a final
// response carrying the turn's tool calls.
func (m *ScriptedModel) Generate(ctx context.Context, req Request) (<-chan Response, <-chan error) {
	respCh := make(chan Response, 16)
	errCh := make(chan error, 1)

	turn := m.take()

	go func() {
		defer close(respCh)
		defer close(errCh)

		if req.Stream && turn.Text != "" {
			for _, word := range strings.SplitAfter(turn.Text, " ") {
				select {
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				case respCh <- Response{Partial: true, ContentDelta: word}:
				}
			}
		}

		final := Response{FinishReason: "stop"}
		if !req.Stream {
			final.ContentDelta = turn.Text
		}
		if len(turn.Calls) > 0 {
			final.FinishReason = "tool_calls"
			final.ToolCalls = make([]core.ToolCall, len(turn.Calls))
			copy(final.ToolCalls, turn.Calls)
			for i := range final.ToolCalls {
				if final.ToolCalls[i].ID == "" {
					final.ToolCalls[i].ID = core.NewID()
				}
			}
		}

		select {
		case <-ctx.Done():
			errCh <- ctx.Err()
		case respCh <- final:
		}
	}()

	return respCh, errCh
}

// Info implements the Model interface.
func (m *ScriptedModel) Info() Info {
	return Info{Name: "scripted", Provider: "scripted", SupportsTools: true}
}
