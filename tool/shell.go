package tool

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultShellTimeout bounds command execution when no override is given.
const DefaultShellTimeout = 30 * time.Second

// DefaultDenyPatterns lists substrings that reject a command before it runs.
var DefaultDenyPatterns = []string{
	"rm -rf",
	"mkfs",
	"dd if=",
	"shutdown",
	"reboot",
	":(){",
	"> /dev/sd",
}

// ShellResult is the structured outcome of a shell command. Rejections and
// timeouts are reported through Stderr and ExitCode rather than as Go errors
// so the model always receives an observation it can react to.
type ShellResult struct {
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	ExitCode int    `json:"exit_code"`
}

// ShellOptions configures the shell tool.
type ShellOptions struct {
	// Timeout is the hard wall-clock limit per command.
	Timeout time.Duration

	// DenyPatterns rejects any command containing one of these substrings.
	// Matching is case-insensitive.
	DenyPatterns []string

	// WorkDir sets the working directory for executed commands. Empty means
	// the process working directory.
	WorkDir string
}

// ShellTool executes commands through `sh -c` with a deny-list and a hard
// timeout. It is stateless and safe for concurrent use.
type ShellTool struct {
	opts ShellOptions
}

// NewShellTool creates a shell tool with the default timeout and deny-list.
func NewShellTool(optFns ...func(o *ShellOptions)) *ShellTool {
	opts := ShellOptions{
		Timeout:      DefaultShellTimeout,
		DenyPatterns: DefaultDenyPatterns,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultShellTimeout
	}
	return &ShellTool{opts: opts}
}

// Name returns the unique identifier for this tool.
func (t *ShellTool) Name() string { return "shell" }

// Description returns a human-readable description of what this tool does.
func (t *ShellTool) Description() string {
	return "Execute a shell command and return its stdout, stderr and exit code. " +
		"Use for listing files, inspecting processes, running CLI tools and similar read or write operations on the host."
}

// Parameters returns the JSON schema describing the expected input format.
func (t *ShellTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"command": map[string]any{
				"type":        "string",
				"description": "The shell command to execute, interpreted by sh -c.",
			},
		},
		"required": []string{"command"},
	}
}

// Call executes the command. Deny-list rejections and timeouts produce a
// ShellResult describing the failure, not an error: the reasoning loop treats
// every shell outcome as an observation.
func (t *ShellTool) Call(ctx context.Context, args map[string]any) (any, error) {
	command, _ := args["command"].(string)
	if strings.TrimSpace(command) == "" {
		return nil, NewToolError(t.Name(), "command must be a non-empty string", "VALIDATION_ERROR")
	}

	if pattern := t.matchDeny(command); pattern != "" {
		return ShellResult{
			Stderr:   fmt.Sprintf("command rejected: contains forbidden pattern %q", pattern),
			ExitCode: 1,
		}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, t.opts.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	if t.opts.WorkDir != "" {
		cmd.Dir = t.opts.WorkDir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return ShellResult{
			Stdout:   stdout.String(),
			Stderr:   fmt.Sprintf("command timed out after %s", t.opts.Timeout),
			ExitCode: -1,
		}, nil
	}

	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			return ShellResult{
				Stdout:   stdout.String(),
				Stderr:   err.Error(),
				ExitCode: -1,
			}, nil
		}
	}

	return ShellResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}, nil
}

func (t *ShellTool) matchDeny(command string) string {
	lowered := strings.ToLower(command)
	for _, pattern := range t.opts.DenyPatterns {
		if pattern == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(pattern)) {
			return pattern
		}
	}
	return ""
}
