package capability

import (
	"context"
	"testing"

	"github.com/careerate/agentcore/core"
	"github.com/careerate/agentcore/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoTool(name string) tool.Tool {
	return tool.NewFunctionTool(name, "echoes its input",
		map[string]any{
			"type":       "object",
			"properties": map[string]any{"text": map[string]any{"type": "string"}},
		},
		func(_ context.Context, args map[string]any) (any, error) {
			return args["text"], nil
		},
	)
}

type stubAgent struct {
	name string
}

func (s *stubAgent) Name() string        { return s.name }
func (s *stubAgent) Description() string { return "a stub specialist" }
func (s *stubAgent) Personality() core.AgentPersonality {
	return core.AgentPersonality{Name: s.name, Expertise: "stubbing"}
}
func (s *stubAgent) RunTask(_ context.Context, task string) (string, error) {
	return "done: " + task, nil
}

func TestRegistry_New(t *testing.T) {
	reg, err := New(
		NewToolEntry(echoTool("echo")),
		NewAgentEntry(&stubAgent{name: "specialist"}),
	)
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, []string{"echo", "specialist"}, reg.Names())
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	_, err := New(NewToolEntry(echoTool("echo")), NewToolEntry(echoTool("echo")))
	assert.Error(t, err)

	// Collisions across variants are also rejected.
	_, err = New(NewToolEntry(echoTool("echo")), NewAgentEntry(&stubAgent{name: "echo"}))
	assert.Error(t, err)

	_, err = New(NewAgentEntry(&stubAgent{name: ""}))
	assert.Error(t, err)
}

func TestRegistry_Resolve(t *testing.T) {
	reg, err := New(
		NewToolEntry(echoTool("echo")),
		NewAgentEntry(&stubAgent{name: "specialist"}),
	)
	require.NoError(t, err)

	entry, ok := reg.Resolve("specialist")
	require.True(t, ok)
	_, isAgent := entry.(AgentEntry)
	assert.True(t, isAgent)

	entry, ok = reg.Resolve("echo")
	require.True(t, ok)
	_, isTool := entry.(ToolEntry)
	assert.True(t, isTool)

	_, ok = reg.Resolve("missing")
	assert.False(t, ok)
}

func TestRegistry_Definitions(t *testing.T) {
	reg, err := New(
		NewToolEntry(echoTool("echo")),
		NewAgentEntry(&stubAgent{name: "specialist"}),
	)
	require.NoError(t, err)

	defs := reg.Definitions()
	require.Len(t, defs, 2)

	// Agents come first and are declared with a single required task string.
	assert.Equal(t, "specialist", defs[0].Name)
	assert.Contains(t, defs[0].Description, "stubbing")
	props := defs[0].Parameters["properties"].(map[string]any)
	assert.Contains(t, props, "task")
	assert.Equal(t, []string{"task"}, defs[0].Parameters["required"])

	assert.Equal(t, "echo", defs[1].Name)
	assert.Equal(t, "echoes its input", defs[1].Description)
}

func TestRegistry_ToolsOnly(t *testing.T) {
	reg, err := New(
		NewToolEntry(echoTool("echo")),
		NewAgentEntry(&stubAgent{name: "specialist"}),
	)
	require.NoError(t, err)

	sub := reg.ToolsOnly()
	assert.Equal(t, 1, sub.Len())

	_, ok := sub.Resolve("specialist")
	assert.False(t, ok, "tools-only registries must exclude agents")
	_, ok = sub.Resolve("echo")
	assert.True(t, ok)
}
