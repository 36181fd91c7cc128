package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/careerate/agentcore/capability"
	"github.com/careerate/agentcore/core"
	"github.com/careerate/agentcore/model"
	"github.com/careerate/agentcore/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPersonality(name string) core.AgentPersonality {
	return core.AgentPersonality{Name: name, SystemPrompt: "You are " + name + "."}
}

func echoRegistry(t *testing.T) *capability.Registry {
	t.Helper()
	echo := tool.NewFunctionTool("echo", "echoes its input",
		map[string]any{
			"type":       "object",
			"properties": map[string]any{"text": map[string]any{"type": "string"}},
			"required":   []string{"text"},
		},
		func(_ context.Context, args map[string]any) (any, error) {
			return args["text"], nil
		},
	)
	reg, err := capability.New(capability.NewToolEntry(echo))
	require.NoError(t, err)
	return reg
}

func collectEvents() (*[]core.Event, EmitFunc) {
	events := &[]core.Event{}
	return events, func(ev core.Event) { *events = append(*events, ev) }
}

func TestNew_RequiresCollaborators(t *testing.T) {
	reg, err := capability.New()
	require.NoError(t, err)

	_, err = New(testPersonality("A"), nil, reg)
	assert.Error(t, err)

	_, err = New(testPersonality("A"), model.NewScriptedModel(), nil)
	assert.Error(t, err)
}

func TestNew_DerivesName(t *testing.T) {
	reg, err := capability.New()
	require.NoError(t, err)

	a, err := New(core.AgentPersonality{Name: "Site Reliability"}, model.NewScriptedModel(), reg)
	require.NoError(t, err)
	assert.Equal(t, "site_reliability", a.Name())
}

func TestRun_NoCallsSingleTurn(t *testing.T) {
	llm := model.NewScriptedModel(model.ScriptedTurn{Text: "plain answer"})
	a, err := New(testPersonality("A"), llm, echoRegistry(t))
	require.NoError(t, err)

	events, emit := collectEvents()
	conv := core.NewConversation(core.NewUserMessage("hi"))
	answer, err := a.Run(context.Background(), conv, emit)
	require.NoError(t, err)

	assert.Equal(t, "plain answer", answer)
	assert.Equal(t, 1, llm.Generates(), "no tool calls means exactly one generation turn")

	for _, ev := range *events {
		assert.Equal(t, core.EventChunk, ev.Type)
	}
	// Assistant message is appended even though no tool ran.
	msgs := conv.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, core.RoleAssistant, msgs[1].Role)
}

func TestRun_ToolCallEventOrdering(t *testing.T) {
	llm := model.NewScriptedModel(
		model.ScriptedTurn{
			Text:  "let me check",
			Calls: []core.ToolCall{{ID: "call-1", Name: "echo", Arguments: `{"text":"pong"}`}},
		},
		model.ScriptedTurn{Text: "it said pong"},
	)
	a, err := New(testPersonality("A"), llm, echoRegistry(t))
	require.NoError(t, err)

	events, emit := collectEvents()
	conv := core.NewConversation(core.NewUserMessage("ping the echo tool"))
	answer, err := a.Run(context.Background(), conv, emit)
	require.NoError(t, err)
	assert.Equal(t, "it said pong", answer)

	var callIdx, resultIdx, lastChunkBeforeCall int
	callIdx, resultIdx = -1, -1
	for i, ev := range *events {
		switch ev.Type {
		case core.EventToolCall:
			callIdx = i
			assert.Equal(t, "call-1", ev.ToolCallID)
			assert.Equal(t, "echo", ev.Name)
			assert.Equal(t, "pong", ev.Args["text"])
		case core.EventToolResult:
			resultIdx = i
			assert.Equal(t, "call-1", ev.ToolCallID)
			assert.Equal(t, "pong", ev.Result)
		case core.EventChunk:
			if callIdx == -1 {
				lastChunkBeforeCall = i
			}
		}
	}
	require.NotEqual(t, -1, callIdx)
	require.NotEqual(t, -1, resultIdx)
	assert.Less(t, callIdx, resultIdx, "tool_call must precede its tool_result")
	assert.Less(t, lastChunkBeforeCall, callIdx, "turn chunks precede the turn's tool calls")

	// The observation is threaded back as a tool-role message.
	msgs := conv.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, core.RoleTool, msgs[2].Role)
	assert.Equal(t, "call-1", msgs[2].ToolCallID)
	assert.Equal(t, "pong", msgs[2].Content)
}

func TestRun_UnknownCapability(t *testing.T) {
	llm := model.NewScriptedModel(
		model.ScriptedTurn{Calls: []core.ToolCall{{ID: "call-1", Name: "nonexistent"}}},
		model.ScriptedTurn{Text: "recovered"},
	)
	a, err := New(testPersonality("A"), llm, echoRegistry(t))
	require.NoError(t, err)

	events, emit := collectEvents()
	answer, err := a.Run(context.Background(), core.NewConversation(core.NewUserMessage("go")), emit)
	require.NoError(t, err)
	assert.Equal(t, "recovered", answer)

	var sawResult bool
	for _, ev := range *events {
		if ev.Type == core.EventToolResult {
			sawResult = true
			assert.Contains(t, ev.Result, "not found")
		}
	}
	assert.True(t, sawResult)
}

func TestRun_FailingToolNeverCrashesLoop(t *testing.T) {
	failing := tool.NewFunctionTool("broken", "always fails",
		map[string]any{"type": "object", "properties": map[string]any{}},
		func(context.Context, map[string]any) (any, error) {
			return nil, errors.New("backend unavailable")
		},
	)
	reg, err := capability.New(capability.NewToolEntry(failing))
	require.NoError(t, err)

	llm := model.NewScriptedModel(
		model.ScriptedTurn{Calls: []core.ToolCall{{ID: "call-1", Name: "broken"}}},
		model.ScriptedTurn{Text: "noted the failure"},
	)
	a, err := New(testPersonality("A"), llm, reg)
	require.NoError(t, err)

	events, emit := collectEvents()
	answer, err := a.Run(context.Background(), core.NewConversation(core.NewUserMessage("go")), emit)
	require.NoError(t, err)
	assert.Equal(t, "noted the failure", answer)

	var sawError bool
	for _, ev := range *events {
		if ev.Type == core.EventToolResult {
			if text, ok := ev.Result.(string); ok {
				assert.Contains(t, text, "Error:")
				sawError = true
			}
		}
	}
	assert.True(t, sawError)
}

func TestRun_IterationCap(t *testing.T) {
	llm := model.NewScriptedModel(model.ScriptedTurn{
		Text:  "still working",
		Calls: []core.ToolCall{{Name: "echo", Arguments: `{"text":"again"}`}},
	}).RepeatLastTurn()

	a, err := New(testPersonality("A"), llm, echoRegistry(t))
	require.NoError(t, err)

	answer, err := a.Run(context.Background(), core.NewConversation(core.NewUserMessage("loop")), DiscardEvents)
	require.NoError(t, err, "reaching the cap is a soft cutoff, not an error")
	assert.Equal(t, DefaultMaxIterations, llm.Generates())
	assert.Equal(t, "still working", answer, "best-effort answer from the last turn")
}

func TestRun_Delegation(t *testing.T) {
	subLLM := model.NewScriptedModel(model.ScriptedTurn{Text: "sub answer"})
	sub, err := New(testPersonality("Specialist"), subLLM, echoRegistry(t))
	require.NoError(t, err)

	reg, err := capability.New(capability.NewAgentEntry(sub))
	require.NoError(t, err)

	parentLLM := model.NewScriptedModel(
		model.ScriptedTurn{Calls: []core.ToolCall{
			{ID: "call-1", Name: "specialist", Arguments: `{"task":"investigate the alert"}`},
		}},
		model.ScriptedTurn{Text: "relaying the result"},
	)
	parent, err := New(testPersonality("Coordinator"), parentLLM, reg)
	require.NoError(t, err)

	events, emit := collectEvents()
	conv := core.NewConversation(core.NewUserMessage("handle this"))
	answer, err := parent.Run(context.Background(), conv, emit)
	require.NoError(t, err)
	assert.Equal(t, "relaying the result", answer)

	delegationIdx, resultIdx := -1, -1
	for i, ev := range *events {
		switch ev.Type {
		case core.EventAgentDelegation:
			delegationIdx = i
			assert.Equal(t, "specialist", ev.To)
			assert.Equal(t, "investigate the alert", ev.Task)
		case core.EventToolResult:
			resultIdx = i
			assert.Equal(t, "call-1", ev.ToolCallID)
			assert.Equal(t, "sub answer", ev.Result)
		}
	}
	require.NotEqual(t, -1, delegationIdx)
	require.NotEqual(t, -1, resultIdx)
	// The sub-agent's own events are discarded: nothing appears between the
	// delegation announcement and its result.
	assert.Equal(t, delegationIdx+1, resultIdx)

	// The sub-agent never saw the parent's history; the parent conversation
	// gained only the assistant and tool messages.
	msgs := conv.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, core.RoleTool, msgs[2].Role)
	assert.Equal(t, "sub answer", msgs[2].Content)
}

func TestRun_Cancellation(t *testing.T) {
	llm := model.NewScriptedModel(model.ScriptedTurn{Text: "never delivered"})
	a, err := New(testPersonality("A"), llm, echoRegistry(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = a.Run(ctx, core.NewConversation(core.NewUserMessage("hi")), DiscardEvents)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunTask_IsolatedConversation(t *testing.T) {
	llm := model.NewScriptedModel(model.ScriptedTurn{Text: "task done"})
	a, err := New(testPersonality("Specialist"), llm, echoRegistry(t))
	require.NoError(t, err)

	answer, err := a.RunTask(context.Background(), "check the logs")
	require.NoError(t, err)
	assert.Equal(t, "task done", answer)
}
