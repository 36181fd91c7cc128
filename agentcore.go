// Package agentcore provides a high-level façade over the reasoning core:
// a fixed DevOps coordinator agent, three specialist agents it can delegate
// to, and the built-in shell and web search tools, all wired into an
// orchestrator. Most applications interact with this package by:
//  1. Creating a model (model/openai, model/anthropic, or via NewFromConfig)
//  2. Calling New() with optional config, logger and extra tools
//  3. Consuming the event stream from Invoke or the final text from InvokeSync
//
// Defaults are safe for local use; production deployments typically supply a
// config file and a structured logger.
package agentcore

import (
	"fmt"
	"strings"

	"github.com/careerate/agentcore/agent"
	"github.com/careerate/agentcore/capability"
	"github.com/careerate/agentcore/config"
	"github.com/careerate/agentcore/core"
	"github.com/careerate/agentcore/logging"
	"github.com/careerate/agentcore/model"
	"github.com/careerate/agentcore/model/anthropic"
	"github.com/careerate/agentcore/model/openai"
	"github.com/careerate/agentcore/orchestrator"
	"github.com/careerate/agentcore/tool"
)

// Options configures the façade.
type Options struct {
	// Config supplies loop, tool and logging settings. Defaults to
	// config.Default().
	Config *config.Config

	// Logger receives structured progress from every layer. Defaults to a
	// logger built from Config.Logging.
	Logger logging.Logger

	// Tools are additional capabilities registered alongside the built-in
	// shell and web search tools.
	Tools []tool.Tool
}

// New wires the default DevOps agent team around the given model and returns
// the orchestrator that runs it. The coordinator sees the three specialists
// plus every tool; specialists see tools only, so delegation never nests.
func New(llm model.Model, optFns ...func(o *Options)) (*orchestrator.Orchestrator, error) {
	opts := Options{Config: config.Default()}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	cfg := opts.Config

	logger := opts.Logger
	if logger == nil {
		logger = logging.New(logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Format, nil)
	}

	tools := builtinTools(cfg)
	tools = append(tools, opts.Tools...)

	toolEntries := make([]capability.Capability, 0, len(tools))
	for _, t := range tools {
		toolEntries = append(toolEntries, capability.NewToolEntry(t))
	}

	specialistRegistry, err := capability.New(toolEntries...)
	if err != nil {
		return nil, fmt.Errorf("building specialist registry: %w", err)
	}

	agentOpts := func(o *agent.Options) {
		o.MaxIterations = cfg.Loop.MaxIterations
		o.ToolTimeout = cfg.Tools.ShellTimeout
		o.Logger = logger
	}

	coordinatorEntries := make([]capability.Capability, 0, len(toolEntries)+3)
	for _, p := range specialistPersonalities() {
		specialist, err := agent.New(p, llm, specialistRegistry, agentOpts)
		if err != nil {
			return nil, fmt.Errorf("building %s agent: %w", p.Name, err)
		}
		coordinatorEntries = append(coordinatorEntries, capability.NewAgentEntry(specialist))
	}
	coordinatorEntries = append(coordinatorEntries, toolEntries...)

	coordinatorRegistry, err := capability.New(coordinatorEntries...)
	if err != nil {
		return nil, fmt.Errorf("building coordinator registry: %w", err)
	}

	coordinator, err := agent.New(coordinatorPersonality(), llm, coordinatorRegistry, agentOpts)
	if err != nil {
		return nil, fmt.Errorf("building coordinator agent: %w", err)
	}

	return orchestrator.New(coordinator, func(o *orchestrator.Options) {
		o.EventBufferSize = cfg.Loop.EventBufferSize
		o.Logger = logger
	})
}

// NewFromConfig builds the model named by cfg.Model and wires the façade
// around it.
func NewFromConfig(cfg *config.Config, optFns ...func(o *Options)) (*orchestrator.Orchestrator, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	var llm model.Model
	switch cfg.Model.Provider {
	case "openai":
		m, err := openai.NewModel(func(o *openai.Options) {
			o.Model = cfg.Model.Name
			o.Temperature = cfg.Model.Temperature
			o.APIKey = cfg.Model.APIKey
		})
		if err != nil {
			return nil, err
		}
		llm = m
	case "anthropic":
		m, err := anthropic.NewModel(func(o *anthropic.Options) {
			o.Model = anthropic.ModelName(cfg.Model.Name)
			o.Temperature = cfg.Model.Temperature
			o.APIKey = cfg.Model.APIKey
		})
		if err != nil {
			return nil, err
		}
		llm = m
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Model.Provider)
	}

	withCfg := append([]func(o *Options){func(o *Options) { o.Config = cfg }}, optFns...)
	return New(llm, withCfg...)
}

func builtinTools(cfg *config.Config) []tool.Tool {
	tools := []tool.Tool{
		tool.NewShellTool(func(o *tool.ShellOptions) {
			o.Timeout = cfg.Tools.ShellTimeout
			if len(cfg.Tools.ShellDenyPatterns) > 0 {
				o.DenyPatterns = cfg.Tools.ShellDenyPatterns
			}
		}),
	}
	if cfg.Tools.BraveAPIKey != "" {
		tools = append(tools, tool.NewWebSearchTool(func(o *tool.WebSearchOptions) {
			o.APIKey = cfg.Tools.BraveAPIKey
		}))
	}
	return tools
}

func coordinatorPersonality() core.AgentPersonality {
	return core.AgentPersonality{
		Name:      "Coordinator",
		Icon:      "🧭",
		Expertise: "triaging DevOps and SRE requests, delegating to specialists, synthesizing answers",
		SystemPrompt: strings.Join([]string{
			"You are the coordinator of a team of AI assistants for DevOps engineers and site reliability engineers.",
			"Your goal is to enhance their productivity with insightful, actionable and context-aware assistance.",
			"Route infrastructure-as-code and cloud platform work to the infrastructure specialist, CI/CD and release work to the delivery specialist, and monitoring or incident work to the observability specialist.",
			"Handle simple questions and host inspection yourself using the available tools.",
			"Be concise yet thorough. Ask clarifying questions when a request is ambiguous.",
			"Always prioritize security, reliability and automation in your recommendations.",
			"When you use a tool, clearly state what it found and how it relates to the request.",
		}, " "),
	}
}

func specialistPersonalities() []core.AgentPersonality {
	return []core.AgentPersonality{
		{
			Name:      "Infrastructure",
			Icon:      "🏗️",
			Expertise: "infrastructure as code (Terraform, Ansible, Pulumi), Kubernetes, cloud platforms (AWS, Azure, GCP)",
			SystemPrompt: strings.Join([]string{
				"You are an infrastructure specialist for DevOps teams.",
				"You advise on infrastructure as code, containerization and cloud platform architecture.",
				"Analyze provided code snippets and task descriptions, suggest optimizations and automation opportunities, and name concrete tools with their prerequisites.",
				"Always prioritize security and reliability.",
			}, " "),
		},
		{
			Name:      "Delivery",
			Icon:      "🚀",
			Expertise: "CI/CD pipelines (GitHub Actions, Jenkins, GitLab CI), release engineering, build tooling",
			SystemPrompt: strings.Join([]string{
				"You are a delivery specialist for DevOps teams.",
				"You design and troubleshoot CI/CD pipelines, release processes and build tooling.",
				"Suggest best practices and automation opportunities, and call out prerequisites of any tool you recommend.",
			}, " "),
		},
		{
			Name:      "Observability",
			Icon:      "📈",
			Expertise: "monitoring and observability (Prometheus, Grafana, Datadog, ELK), incident response, troubleshooting",
			SystemPrompt: strings.Join([]string{
				"You are an observability specialist for DevOps teams.",
				"You help diagnose issues from logs, metrics and error messages, identify likely root causes and suggest solutions or diagnostic tools.",
				"Be explicit about what evidence supports each hypothesis.",
			}, " "),
		},
	}
}
