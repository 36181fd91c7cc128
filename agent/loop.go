package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/careerate/agentcore/capability"
	"github.com/careerate/agentcore/core"
	"github.com/careerate/agentcore/model"
	"github.com/careerate/agentcore/tool"
)

// Run executes the reasoning loop on conv until the model stops requesting
// capabilities or the iteration cap is reached, emitting events along the way.
// It returns the final assistant text. Model failures are returned as errors;
// everything that goes wrong inside a capability is captured as an observation
// and the loop continues.
func (a *Agent) Run(ctx context.Context, conv *core.Conversation, emit EmitFunc) (string, error) {
	if emit == nil {
		emit = DiscardEvents
	}

	definitions := a.registry.Definitions()

	for iteration := 1; iteration <= a.maxIterations; iteration++ {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		a.logger.Debug("generation turn starting",
			"agent", a.name, "iteration", iteration, "messages", conv.Len())

		text, calls, err := a.generate(ctx, conv, definitions, emit)
		if err != nil {
			return "", err
		}

		conv.Append(core.NewAssistantMessage(text, calls...))

		if len(calls) == 0 {
			a.logger.Debug("loop terminated naturally", "agent", a.name, "iteration", iteration)
			return text, nil
		}

		for _, call := range calls {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			observation := a.dispatch(ctx, call, emit)
			conv.Append(core.NewToolMessage(call.ID, observation))
		}
	}

	a.logger.Info("iteration cap reached, using best-effort answer",
		"agent", a.name, "cap", a.maxIterations)
	return conv.LastAssistantText(), nil
}

// generate runs one model turn, forwarding content deltas as chunk events
// while accumulating the full text and any tool-call directives.
func (a *Agent) generate(ctx context.Context, conv *core.Conversation, definitions []model.ToolDefinition, emit EmitFunc) (string, []core.ToolCall, error) {
	req := model.Request{
		Instructions: a.personality.SystemPrompt,
		Messages:     conv.Messages(),
		Tools:        definitions,
		Stream:       true,
	}

	respCh, errCh := a.llm.Generate(ctx, req)

	var text strings.Builder
	var calls []core.ToolCall

	for resp := range respCh {
		if resp.ContentDelta != "" {
			text.WriteString(resp.ContentDelta)
			emit(core.NewChunkEvent(resp.ContentDelta))
		}
		if !resp.Partial {
			calls = append(calls, resp.ToolCalls...)
		}
	}

	if err := <-errCh; err != nil {
		return "", nil, fmt.Errorf("model generation failed: %w", err)
	}

	return text.String(), calls, nil
}

// dispatch resolves one tool call against the registry and executes it,
// emitting the intent and outcome events. It never fails: unknown names,
// validation errors, execution errors and timeouts all come back as
// observation text the model can react to.
func (a *Agent) dispatch(ctx context.Context, call core.ToolCall, emit EmitFunc) string {
	entry, ok := a.registry.Resolve(call.Name)
	if !ok {
		a.logger.Warn("capability not found", "agent", a.name, "capability", call.Name)
		observation := fmt.Sprintf("Error: capability %q not found", call.Name)
		emit(core.NewToolResultEvent(call.ID, call.Name, observation))
		return observation
	}

	switch e := entry.(type) {
	case capability.AgentEntry:
		return a.delegate(ctx, call, e.Agent, emit)
	case capability.ToolEntry:
		return a.execute(ctx, call, e.Tool, emit)
	default:
		observation := fmt.Sprintf("Error: capability %q not found", call.Name)
		emit(core.NewToolResultEvent(call.ID, call.Name, observation))
		return observation
	}
}

// execute runs a tool under the always-resolve contract.
func (a *Agent) execute(ctx context.Context, call core.ToolCall, t tool.Tool, emit EmitFunc) string {
	args, err := parseArgs(call.Arguments)
	if err != nil {
		observation := fmt.Sprintf("Error: invalid arguments for %s: %v", call.Name, err)
		emit(core.NewToolCallEvent(call.ID, call.Name, nil))
		emit(core.NewToolResultEvent(call.ID, call.Name, observation))
		return observation
	}

	emit(core.NewToolCallEvent(call.ID, call.Name, args))
	a.logger.Info("executing tool", "agent", a.name, "tool", call.Name, "call_id", call.ID)

	result := tool.Invoke(ctx, t, args, a.toolTimeout, a.logger)
	emit(core.NewToolResultEvent(call.ID, call.Name, result))

	return renderResult(result)
}

// delegate hands a task to another agent's full loop. The sub-agent runs on
// an isolated conversation with its internal events discarded; only its final
// text is observed.
func (a *Agent) delegate(ctx context.Context, call core.ToolCall, sub capability.Delegable, emit EmitFunc) string {
	task := delegationTask(call.Arguments)

	emit(core.NewAgentDelegationEvent(sub.Name(), task))
	a.logger.Info("delegating task", "agent", a.name, "to", sub.Name(), "call_id", call.ID)

	answer, err := sub.RunTask(ctx, task)
	if err != nil {
		answer = fmt.Sprintf("Error: delegation to %s failed: %v", sub.Name(), err)
	}

	emit(core.NewToolResultEvent(call.ID, call.Name, answer))
	return answer
}

// parseArgs decodes the serialized call arguments. Empty arguments decode to
// an empty map so schema validation still runs.
func parseArgs(raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, err
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

// delegationTask extracts the task text from the call arguments. A "task"
// field is used directly when present; otherwise the serialized arguments
// stand in as the task.
func delegationTask(raw string) string {
	if args, err := parseArgs(raw); err == nil {
		if task, ok := args["task"].(string); ok && task != "" {
			return task
		}
	}
	return raw
}

// renderResult normalizes a tool result into observation text for the next
// generation turn.
func renderResult(result any) string {
	switch v := result.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		if data, err := json.Marshal(v); err == nil {
			return string(data)
		}
		return fmt.Sprintf("%v", v)
	}
}
