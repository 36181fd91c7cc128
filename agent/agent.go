// Package agent implements the bounded reason-act-observe loop that drives a
// model session through iterative generation, tool execution and delegation.
// An Agent owns its personality and capability registry; each Run works on an
// exclusively owned conversation and reports progress through an emit callback.
package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/careerate/agentcore/capability"
	"github.com/careerate/agentcore/core"
	"github.com/careerate/agentcore/logging"
	"github.com/careerate/agentcore/model"
)

// DefaultMaxIterations bounds the reasoning loop. Reaching the cap is a soft
// cutoff, not an error.
const DefaultMaxIterations = 5

// EmitFunc receives stream events as the loop produces them. Implementations
// must not block indefinitely; the loop calls it synchronously.
type EmitFunc func(core.Event)

// DiscardEvents is an EmitFunc that drops every event. Sub-agent loops run
// with it because only their final text is observed by the parent.
func DiscardEvents(core.Event) {}

// Options configures an Agent beyond its required collaborators.
type Options struct {
	// Name overrides the capability name used for delegation routing.
	// Defaults to the personality name lowercased with spaces replaced by
	// underscores.
	Name string

	// Description is the summary exposed to a delegating model.
	Description string

	// MaxIterations bounds the reasoning loop. Defaults to DefaultMaxIterations.
	MaxIterations int

	// ToolTimeout is the hard wall-clock limit per tool execution.
	ToolTimeout time.Duration

	// Logger receives loop progress. Defaults to a no-op logger.
	Logger logging.Logger
}

// Agent drives one bounded reasoning session per Run. It is immutable after
// construction and safe for concurrent Runs, each on its own conversation.
type Agent struct {
	name          string
	description   string
	personality   core.AgentPersonality
	llm           model.Model
	registry      *capability.Registry
	maxIterations int
	toolTimeout   time.Duration
	logger        logging.Logger
}

// New creates an agent from a personality, a model and a capability registry.
// A nil model or registry is a configuration error.
func New(personality core.AgentPersonality, llm model.Model, registry *capability.Registry, optFns ...func(o *Options)) (*Agent, error) {
	if llm == nil {
		return nil, fmt.Errorf("agent %s: model must not be nil", personality.Name)
	}
	if registry == nil {
		return nil, fmt.Errorf("agent %s: capability registry must not be nil", personality.Name)
	}

	opts := Options{
		MaxIterations: DefaultMaxIterations,
		ToolTimeout:   30 * time.Second,
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	name := opts.Name
	if name == "" {
		name = strings.ToLower(strings.ReplaceAll(personality.Name, " ", "_"))
	}
	description := opts.Description
	if description == "" {
		description = fmt.Sprintf("Delegate a task to the %s agent.", personality.Name)
	}

	return &Agent{
		name:          name,
		description:   description,
		personality:   personality,
		llm:           llm,
		registry:      registry,
		maxIterations: opts.MaxIterations,
		toolTimeout:   opts.ToolTimeout,
		logger:        opts.Logger,
	}, nil
}

// Name returns the capability name used for delegation routing.
func (a *Agent) Name() string { return a.name }

// Description returns the summary exposed to a delegating model.
func (a *Agent) Description() string { return a.description }

// Personality returns the agent's presentation metadata.
func (a *Agent) Personality() core.AgentPersonality { return a.personality }

// RunTask implements capability.Delegable. The task runs on an isolated
// single-message conversation and the sub-loop's events are discarded; only
// the final text reaches the delegating parent.
func (a *Agent) RunTask(ctx context.Context, task string) (string, error) {
	conv := core.NewConversation(core.NewUserMessage(task))
	return a.Run(ctx, conv, DiscardEvents)
}
