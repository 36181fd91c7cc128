package capability

import (
	"fmt"
	"sort"

	"github.com/careerate/agentcore/model"
)

// Registry is an immutable mapping from capability name to tool or agent.
// Names are unique across both variants; construction fails on a collision.
type Registry struct {
	agents []AgentEntry
	tools  []ToolEntry
	byName map[string]Capability
}

// New builds a registry from the given capabilities. Duplicate names, whether
// between two entries of the same variant or across variants, are rejected.
func New(entries ...Capability) (*Registry, error) {
	r := &Registry{byName: make(map[string]Capability, len(entries))}

	for _, entry := range entries {
		name := entry.capabilityName()
		if name == "" {
			return nil, fmt.Errorf("capability with empty name")
		}
		if _, exists := r.byName[name]; exists {
			return nil, fmt.Errorf("duplicate capability name %q", name)
		}
		r.byName[name] = entry

		switch e := entry.(type) {
		case ToolEntry:
			r.tools = append(r.tools, e)
		case AgentEntry:
			r.agents = append(r.agents, e)
		}
	}

	return r, nil
}

// Resolve looks up a capability by name. Agents shadow tools in the resolve
// order, though construction-time uniqueness means a name maps to exactly one
// entry in practice.
func (r *Registry) Resolve(name string) (Capability, bool) {
	for _, a := range r.agents {
		if a.Agent.Name() == name {
			return a, true
		}
	}
	for _, t := range r.tools {
		if t.Tool.Name() == name {
			return t, true
		}
	}
	c, ok := r.byName[name]
	return c, ok
}

// Definitions renders every capability as a model-facing tool declaration,
// agents first, in registration order within each variant.
func (r *Registry) Definitions() []model.ToolDefinition {
	out := make([]model.ToolDefinition, 0, len(r.agents)+len(r.tools))
	for _, a := range r.agents {
		out = append(out, definition(a))
	}
	for _, t := range r.tools {
		out = append(out, definition(t))
	}
	return out
}

// ToolsOnly returns a new registry holding only the tool entries. Sub-agents
// receive this view so delegation never nests.
func (r *Registry) ToolsOnly() *Registry {
	out := &Registry{byName: make(map[string]Capability, len(r.tools))}
	for _, t := range r.tools {
		out.tools = append(out.tools, t)
		out.byName[t.Tool.Name()] = t
	}
	return out
}

// Len returns the number of registered capabilities.
func (r *Registry) Len() int {
	return len(r.agents) + len(r.tools)
}

// Names returns all capability names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
