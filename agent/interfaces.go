package agent

import "context"

// CompletionRequest is the chat-completion wire request assembled by a model
// adapter and executed by a Completer.
type CompletionRequest struct {
	Model           string          `json:"model"`
	Messages        []PromptMessage `json:"messages"`
	Temperature     float64         `json:"temperature"`
	MaxTokens       int             `json:"max_tokens"`
	TopP            float64         `json:"top_p"`
	PresencePenalty float64         `json:"presence_penalty"`
	Stop            []string        `json:"stop,omitempty"`
}

// Completer executes one chat-completion round trip and returns the top
// choice's raw text.
type Completer interface {
	Complete(ctx context.Context, request CompletionRequest) (string, error)
}

// Model turns a transcript into an assistant reply. Implementations never
// fail: transport and provider errors degrade to a synthesized reply so the
// calling agent's parser always receives well-formed text.
type Model interface {
	Generate(ctx context.Context, transcript []any, opts GenerateOptions) PromptMessage
}

// ToolExecutor resolves and executes tool calls.
type ToolExecutor interface {
	Execute(ctx context.Context, call ToolCall) (ToolResult, error)
}
