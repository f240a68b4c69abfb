// Package retry adds deterministic, error-only retries around the completion
// transport and tool execution. Retry counts are fixed at construction and
// apply uniformly to every call.
package retry

import (
	"context"
	"errors"

	"github.com/ArtAndrew/agentbridge/agent"
)

// Config controls retry behavior for wrapped completer and tool execution calls.
type Config struct {
	MaxAttempts int
	ShouldRetry func(error) bool
}

// WrapCompleter wraps a completion transport with deterministic, error-only retries.
func WrapCompleter(completer agent.Completer, cfg Config) agent.Completer {
	if completer == nil {
		return nil
	}
	return &completerWrapper{
		next: completer,
		cfg:  cfg,
	}
}

type completerWrapper struct {
	next agent.Completer
	cfg  Config
}

func (w *completerWrapper) Complete(ctx context.Context, request agent.CompletionRequest) (string, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}

	attempts := normalizedAttempts(w.cfg.MaxAttempts)
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		text, err := w.next.Complete(ctx, request)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if attempt == attempts || !shouldRetry(ctx, w.cfg, err) {
			break
		}
	}
	return "", lastErr
}

// WrapToolExecutor wraps a tool executor with deterministic, error-only retries.
func WrapToolExecutor(executor agent.ToolExecutor, cfg Config) agent.ToolExecutor {
	if executor == nil {
		return nil
	}
	return &toolExecutorWrapper{
		next: executor,
		cfg:  cfg,
	}
}

type toolExecutorWrapper struct {
	next agent.ToolExecutor
	cfg  Config
}

func (w *toolExecutorWrapper) Execute(ctx context.Context, call agent.ToolCall) (agent.ToolResult, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return agent.ToolResult{}, ctxErr
	}

	attempts := normalizedAttempts(w.cfg.MaxAttempts)
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		result, err := w.next.Execute(ctx, call)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if attempt == attempts || !shouldRetry(ctx, w.cfg, err) {
			break
		}
	}
	return agent.ToolResult{}, lastErr
}

func normalizedAttempts(maxAttempts int) int {
	if maxAttempts < 1 {
		return 1
	}
	return maxAttempts
}

func shouldRetry(ctx context.Context, cfg Config, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	if cfg.ShouldRetry == nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false
		}
		return true
	}
	return cfg.ShouldRetry(err)
}
