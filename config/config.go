package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete agentcore configuration.
type Config struct {
	Model   ModelConfig   `yaml:"model"`
	Loop    LoopConfig    `yaml:"loop"`
	Tools   ToolsConfig   `yaml:"tools"`
	Logging LoggingConfig `yaml:"logging"`
}

// ModelConfig selects and parameterizes the language model provider.
type ModelConfig struct {
	Provider    string  `yaml:"provider"` // "openai" or "anthropic"
	Name        string  `yaml:"name"`
	APIKey      string  `yaml:"api_key"`
	Temperature float64 `yaml:"temperature"`
}

// LoopConfig bounds the reasoning loop.
type LoopConfig struct {
	MaxIterations   int `yaml:"max_iterations"`
	EventBufferSize int `yaml:"event_buffer_size"`
}

// ToolsConfig holds built-in tool settings.
type ToolsConfig struct {
	ShellTimeout time.Duration `yaml:"-"`

	// Raw string value for YAML unmarshaling
	ShellTimeoutRaw   string   `yaml:"shell_timeout"`
	ShellDenyPatterns []string `yaml:"shell_deny_patterns"`
	BraveAPIKey       string   `yaml:"brave_api_key"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the baseline configuration: gpt-4o-mini via OpenAI,
// five loop iterations, a 30 second shell timeout and JSON info logging.
func Default() *Config {
	return &Config{
		Model: ModelConfig{
			Provider:    "openai",
			Name:        "gpt-4o-mini",
			Temperature: 0.3,
		},
		Loop: LoopConfig{
			MaxIterations:   5,
			EventBufferSize: 100,
		},
		Tools: ToolsConfig{
			ShellTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Load reads a configuration file from the given path and returns a parsed
// Config merged over Default(). Environment variables in the format
// ${VAR_NAME} are expanded before parsing; duration strings are parsed into
// time.Duration values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := envVarPattern.ReplaceAllStringFunc(string(data), func(match string) string {
		name := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(name)
	})

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.Tools.ShellTimeoutRaw != "" {
		d, err := time.ParseDuration(cfg.Tools.ShellTimeoutRaw)
		if err != nil {
			return nil, fmt.Errorf("parsing tools.shell_timeout: %w", err)
		}
		cfg.Tools.ShellTimeout = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for values the core cannot run with.
func (c *Config) Validate() error {
	switch c.Model.Provider {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("unknown model provider %q", c.Model.Provider)
	}
	if c.Loop.MaxIterations <= 0 {
		return fmt.Errorf("loop.max_iterations must be positive, got %d", c.Loop.MaxIterations)
	}
	if c.Tools.ShellTimeout <= 0 {
		return fmt.Errorf("tools.shell_timeout must be positive, got %s", c.Tools.ShellTimeout)
	}
	return nil
}
