package core

import (
	"encoding/json"
	"testing"
)

func TestEvent_Constructors(t *testing.T) {
	sel := NewAgentSelectedEvent(AgentPersonality{Name: "Coordinator", Icon: "🧭"})
	if sel.Type != EventAgentSelected || sel.ID == "" || sel.Timestamp.IsZero() {
		t.Fatalf("agent_selected event malformed: %+v", sel)
	}
	if sel.Personality == nil || sel.Personality.Name != "Coordinator" {
		t.Fatalf("agent_selected personality missing: %+v", sel)
	}

	del := NewAgentDelegationEvent("infrastructure", "review the terraform plan")
	if del.Type != EventAgentDelegation || del.To != "infrastructure" || del.Task == "" {
		t.Fatalf("agent_delegation event malformed: %+v", del)
	}

	chunk := NewChunkEvent("hello")
	if chunk.Type != EventChunk || chunk.Text != "hello" {
		t.Fatalf("chunk event malformed: %+v", chunk)
	}

	call := NewToolCallEvent("call-1", "shell", map[string]any{"command": "ls"})
	if call.Type != EventToolCall || call.ToolCallID != "call-1" || call.Name != "shell" {
		t.Fatalf("tool_call event malformed: %+v", call)
	}

	result := NewToolResultEvent("call-1", "shell", "ok")
	if result.Type != EventToolResult || result.ToolCallID != call.ToolCallID {
		t.Fatalf("tool_result must pair with its call id: %+v", result)
	}

	if done := NewCompleteEvent(); done.Type != EventComplete {
		t.Fatalf("complete event malformed: %+v", done)
	}
	if fail := NewErrorEvent("boom"); fail.Type != EventError || fail.Message != "boom" {
		t.Fatalf("error event malformed: %+v", fail)
	}
}

func TestEvent_UniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		ev := NewChunkEvent("x")
		if seen[ev.ID] {
			t.Fatalf("duplicate event id %s", ev.ID)
		}
		seen[ev.ID] = true
	}
}

func TestEvent_JSONOmitsEmptyPayload(t *testing.T) {
	data, err := json.Marshal(NewCompleteEvent())
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{"personality", "to", "task", "text", "name", "args", "tool_call_id", "result", "message"} {
		if _, present := decoded[field]; present {
			t.Errorf("complete event should not carry payload field %q", field)
		}
	}
	if decoded["type"] != string(EventComplete) {
		t.Errorf("expected type complete, got %v", decoded["type"])
	}
}
