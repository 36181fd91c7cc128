// Package orchestrator wraps one fixed coordinator agent and owns the
// top-level event stream: it selects the coordinator, runs its loop, surfaces
// failures as error events and guarantees exactly one complete event per
// invocation unless the caller cancels.
package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/careerate/agentcore/agent"
	"github.com/careerate/agentcore/core"
	"github.com/careerate/agentcore/logging"
)

// DefaultEventBufferSize bounds the event channel handed to callers.
const DefaultEventBufferSize = 100

// Request is the normalized invocation input. RequestedAgent is advisory:
// routing always starts at the fixed coordinator and the field is only
// recorded in logs. Context carries opaque caller data, also unused by the
// core.
type Request struct {
	Messages       []core.Message `json:"messages"`
	RequestedAgent string         `json:"requested_agent,omitempty"`
	Context        map[string]any `json:"context,omitempty"`
}

// Options configures the orchestrator.
type Options struct {
	// EventBufferSize sets the capacity of the event channel returned by
	// Invoke. Defaults to DefaultEventBufferSize.
	EventBufferSize int

	// Logger receives orchestration progress. Defaults to a no-op logger.
	Logger logging.Logger
}

// Orchestrator coordinates top-level invocations. It is immutable after
// construction and safe for concurrent use; every Invoke gets its own
// conversation and event channel.
type Orchestrator struct {
	coordinator *agent.Agent
	bufferSize  int
	logger      logging.Logger
}

// New creates an orchestrator around the given coordinator agent.
func New(coordinator *agent.Agent, optFns ...func(o *Options)) (*Orchestrator, error) {
	if coordinator == nil {
		return nil, fmt.Errorf("orchestrator: coordinator agent must not be nil")
	}

	opts := Options{
		EventBufferSize: DefaultEventBufferSize,
		Logger:          logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.EventBufferSize <= 0 {
		opts.EventBufferSize = DefaultEventBufferSize
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	return &Orchestrator{
		coordinator: coordinator,
		bufferSize:  opts.EventBufferSize,
		logger:      opts.Logger,
	}, nil
}

// Invoke starts one reasoning session and returns its event stream. The
// channel is closed when the invocation finishes; unless ctx is cancelled the
// final event is exactly one complete, with at most one error event before it
// when the model fails. Cancellation closes the stream without forcing a
// final event.
func (o *Orchestrator) Invoke(ctx context.Context, req Request) <-chan core.Event {
	events := make(chan core.Event, o.bufferSize)

	go func() {
		defer close(events)

		emit := func(ev core.Event) {
			select {
			case <-ctx.Done():
			case events <- ev:
			}
		}

		if req.RequestedAgent != "" && !strings.EqualFold(req.RequestedAgent, "auto") {
			o.logger.Info("requested agent noted, routing to coordinator",
				"requested", req.RequestedAgent, "coordinator", o.coordinator.Name())
		}

		emit(core.NewAgentSelectedEvent(o.coordinator.Personality()))

		conv := core.NewConversation(req.Messages...)
		if _, err := o.coordinator.Run(ctx, conv, emit); err != nil {
			if ctx.Err() != nil {
				o.logger.Info("invocation cancelled", "coordinator", o.coordinator.Name())
				return
			}
			o.logger.Error("invocation failed", "coordinator", o.coordinator.Name(), "error", err)
			emit(core.NewErrorEvent(err.Error()))
		}

		if ctx.Err() != nil {
			return
		}
		emit(core.NewCompleteEvent())
	}()

	return events
}

// InvokeSync drives Invoke to completion and returns the final assistant text
// of the last generation turn. An error event in the stream is returned as an
// error alongside any text produced before the failure.
func (o *Orchestrator) InvokeSync(ctx context.Context, req Request) (string, error) {
	var turn strings.Builder
	var failure error

	for ev := range o.Invoke(ctx, req) {
		switch ev.Type {
		case core.EventChunk:
			turn.WriteString(ev.Text)
		case core.EventToolCall, core.EventToolResult, core.EventAgentDelegation:
			turn.Reset()
		case core.EventError:
			failure = fmt.Errorf("invocation error: %s", ev.Message)
		}
	}

	if failure != nil {
		return turn.String(), failure
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return turn.String(), nil
}
