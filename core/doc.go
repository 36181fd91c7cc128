// Package core defines the shared data model of the reasoning core:
// conversation messages, model-emitted tool calls, agent personalities and
// the typed stream events consumed by transport adapters. It has no
// dependencies on the other agentcore packages so every layer can share it.
package core
