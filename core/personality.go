package core

// AgentPersonality is the immutable identity configuration of an agent,
// baked in at construction. Expertise is the short capability summary
// advertised to the coordinator; SystemPrompt steers the agent's own model.
type AgentPersonality struct {
	Name         string `json:"name"`
	Icon         string `json:"icon,omitempty"`
	Expertise    string `json:"expertise"`
	SystemPrompt string `json:"-"`
}
