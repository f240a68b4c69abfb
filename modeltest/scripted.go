// Package modeltest provides deterministic test doubles for the completion
// transport.
package modeltest

import (
	"context"
	"fmt"
	"sync"

	"github.com/ArtAndrew/agentbridge/agent"
)

// Completion configures one transport round trip in a scripted sequence.
type Completion struct {
	Text string
	Err  error
}

// ScriptedCompleter is a deterministic agent.Completer for adapter tests. It
// records every request it receives.
type ScriptedCompleter struct {
	mu       sync.Mutex
	index    int
	script   []Completion
	requests []agent.CompletionRequest
}

func NewScriptedCompleter(script ...Completion) *ScriptedCompleter {
	cloned := make([]Completion, len(script))
	copy(cloned, script)
	return &ScriptedCompleter{
		script: cloned,
	}
}

var _ agent.Completer = (*ScriptedCompleter)(nil)

func (c *ScriptedCompleter) Complete(_ context.Context, request agent.CompletionRequest) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.requests = append(c.requests, request)
	if c.index >= len(c.script) {
		return "", fmt.Errorf("script exhausted at call %d", c.index+1)
	}
	current := c.script[c.index]
	c.index++
	if current.Err != nil {
		return "", current.Err
	}
	return current.Text, nil
}

// Requests returns a copy of every request observed so far.
func (c *ScriptedCompleter) Requests() []agent.CompletionRequest {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]agent.CompletionRequest, len(c.requests))
	copy(out, c.requests)
	return out
}
