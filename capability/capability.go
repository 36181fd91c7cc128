// Package capability provides the immutable name-indexed registry that maps
// capability names to tools or delegable agents. The registry is built once
// and never mutated afterwards, so it can be shared across goroutines without
// locking.
package capability

import (
	"context"
	"fmt"

	"github.com/careerate/agentcore/core"
	"github.com/careerate/agentcore/model"
	"github.com/careerate/agentcore/tool"
)

// Delegable is an agent that can receive a task from another agent and run it
// to completion on an isolated conversation.
type Delegable interface {
	// Name returns the unique capability name used for delegation routing.
	Name() string

	// Description returns a short summary exposed to the delegating model.
	Description() string

	// Personality returns the agent's presentation metadata.
	Personality() core.AgentPersonality

	// RunTask executes the given task in isolation and returns the final
	// answer text.
	RunTask(ctx context.Context, task string) (string, error)
}

// Capability is the closed union of things a registry can hold: a tool or a
// delegable agent.
type Capability interface {
	isCapability()
	capabilityName() string
}

// ToolEntry wraps a tool as a registry capability.
type ToolEntry struct {
	Tool tool.Tool
}

func (ToolEntry) isCapability() {}

func (e ToolEntry) capabilityName() string { return e.Tool.Name() }

// AgentEntry wraps a delegable agent as a registry capability.
type AgentEntry struct {
	Agent Delegable
}

func (AgentEntry) isCapability() {}

func (e AgentEntry) capabilityName() string { return e.Agent.Name() }

// NewToolEntry wraps a tool for registration.
func NewToolEntry(t tool.Tool) ToolEntry { return ToolEntry{Tool: t} }

// NewAgentEntry wraps a delegable agent for registration.
func NewAgentEntry(a Delegable) AgentEntry { return AgentEntry{Agent: a} }

// definition renders a capability as a model-facing tool declaration. Agents
// are declared with a single required task string so the model delegates by
// describing the work in natural language.
func definition(c Capability) model.ToolDefinition {
	switch e := c.(type) {
	case ToolEntry:
		return model.ToolDefinition{
			Name:        e.Tool.Name(),
			Description: e.Tool.Description(),
			Parameters:  e.Tool.Parameters(),
		}
	case AgentEntry:
		desc := e.Agent.Description()
		if expertise := e.Agent.Personality().Expertise; expertise != "" {
			desc = fmt.Sprintf("%s Expertise: %s.", desc, expertise)
		}
		return model.ToolDefinition{
			Name:        e.Agent.Name(),
			Description: desc,
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"task": map[string]any{
						"type":        "string",
						"description": "The task to delegate, described in natural language with all necessary context.",
					},
				},
				"required": []string{"task"},
			},
		}
	default:
		return model.ToolDefinition{}
	}
}
