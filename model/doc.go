// Package model defines the provider-agnostic model session contract: given
// an ordered conversation and capability schemas, a Model produces an
// incremental stream of content deltas and structured tool-call directives.
// Concrete providers live in the openai and anthropic subpackages; a
// ScriptedModel is provided for tests and examples.
package model
