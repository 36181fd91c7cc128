package tool

import (
	"context"
	"fmt"
	"time"

	"github.com/careerate/agentcore/internal/util"
	"github.com/careerate/agentcore/logging"
)

// DefaultInvokeTimeout bounds a single tool execution when no override is given.
const DefaultInvokeTimeout = 30 * time.Second

// Invoke runs a tool under the always-resolve contract: whatever goes wrong
// (validation failure, execution error, timeout, panic), the caller receives
// a result value, never an error. Failures are rendered as "Error: ..."
// strings so the model can observe them and adjust on the next turn.
func Invoke(ctx context.Context, t Tool, args map[string]any, timeout time.Duration, logger logging.Logger) any {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	if timeout <= 0 {
		timeout = DefaultInvokeTimeout
	}

	if err := util.ValidateParameters(args, t.Parameters()); err != nil {
		logger.Warn("tool argument validation failed", "tool", t.Name(), "error", err)
		return fmt.Sprintf("Error: %v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		result any
		err    error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("tool panicked: %v", r)}
			}
		}()
		result, err := t.Call(ctx, args)
		done <- outcome{result: result, err: err}
	}()

	select {
	case <-ctx.Done():
		logger.Warn("tool execution timed out", "tool", t.Name(), "timeout", timeout)
		return fmt.Sprintf("Error: tool %s timed out after %s", t.Name(), timeout)
	case o := <-done:
		if o.err != nil {
			logger.Warn("tool execution failed", "tool", t.Name(), "error", o.err)
			return fmt.Sprintf("Error: %v", o.err)
		}
		return o.result
	}
}
