// Package modelcloudru adapts agent transcripts to the Cloud.ru Foundation
// Models chat-completion API and guarantees protocol-conformant replies: no
// transport failure or free-form provider response ever reaches the calling
// agent's parser unshaped.
package modelcloudru

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ArtAndrew/agentbridge/agent"
	"github.com/ArtAndrew/agentbridge/policy/retry"
	"github.com/ArtAndrew/agentbridge/preflight"
)

// Adapter turns agent transcripts into Cloud.ru completion calls. It holds no
// mutable state beyond its immutable configuration, so one instance is safe
// for concurrent use.
type Adapter struct {
	cfg       Config
	completer agent.Completer
	logger    *slog.Logger
}

var _ agent.Model = (*Adapter)(nil)

// New builds an adapter. The credential comes from cfg.APIKey or, failing
// that, $CLOUD_RU_API_KEY then $API_KEY; construction fails when none is set.
func New(cfg Config) (*Adapter, error) {
	cfg = cfg.withDefaults()
	apiKey, err := cfg.resolveAPIKey()
	if err != nil {
		return nil, fmt.Errorf("new cloudru adapter: %w", err)
	}

	completer := cfg.Completer
	if completer == nil {
		completer = retry.WrapCompleter(
			newHTTPCompleter(cfg.BaseURL, apiKey, cfg.HTTPClient),
			retry.Config{MaxAttempts: cfg.MaxAttempts},
		)
	}

	return &Adapter{
		cfg:       cfg,
		completer: completer,
		logger:    cfg.Logger,
	}, nil
}

// Generate implements agent.Model. It never returns an error: any failure
// during dispatch is logged, then degraded to a synthesized reply that still
// satisfies the caller's parsing contract.
func (a *Adapter) Generate(ctx context.Context, transcript []any, opts agent.GenerateOptions) agent.PromptMessage {
	codeMode := codeProtocolMode(opts.StopSequences)
	request := a.buildRequest(transcript, opts, codeMode)

	raw, err := a.completer.Complete(ctx, request)
	if err != nil {
		a.logger.Error("cloudru completion failed", "model", request.Model, "error", err)
		return agent.PromptMessage{Role: agent.RoleAssistant, Content: errorContent(err, codeMode)}
	}

	if codeMode {
		raw = conform(raw)
	}
	return agent.PromptMessage{Role: agent.RoleAssistant, Content: raw}
}

// GenerateText returns just the reply content. It shares Generate's
// no-failure contract.
func (a *Adapter) GenerateText(ctx context.Context, transcript []any, opts agent.GenerateOptions) string {
	return a.Generate(ctx, transcript, opts).Content
}

func (a *Adapter) buildRequest(transcript []any, opts agent.GenerateOptions, codeMode bool) agent.CompletionRequest {
	messages := preflight.Normalize(transcript)
	if len(messages) == 0 {
		// The provider rejects empty conversations.
		messages = []agent.PromptMessage{{Role: agent.RoleUser, Content: "Hello"}}
	}

	if messages[0].Role == agent.RoleSystem && len(messages[0].Content) > systemPromptLimit {
		messages[0].Content = compactSystemPrompt
	}

	if codeMode {
		if last := len(messages) - 1; messages[last].Role == agent.RoleUser {
			messages[last].Content += protocolReminder
		}
	}

	return agent.CompletionRequest{
		Model:           a.cfg.Model,
		Messages:        messages,
		Temperature:     floatOption(opts.Temperature, a.cfg.Temperature),
		MaxTokens:       intOption(opts.MaxTokens, a.cfg.MaxTokens),
		TopP:            floatOption(opts.TopP, a.cfg.TopP),
		PresencePenalty: floatOption(opts.PresencePenalty, a.cfg.PresencePenalty),
		Stop:            sanitizeStops(opts.StopSequences),
	}
}

// Info describes the configured provider endpoint and sampling defaults.
type Info struct {
	Provider        string  `json:"provider"`
	Model           string  `json:"model"`
	BaseURL         string  `json:"base_url"`
	Temperature     float64 `json:"temperature"`
	MaxTokens       int     `json:"max_tokens"`
	TopP            float64 `json:"top_p"`
	PresencePenalty float64 `json:"presence_penalty"`
}

func (a *Adapter) Info() Info {
	return Info{
		Provider:        "Cloud.ru",
		Model:           a.cfg.Model,
		BaseURL:         a.cfg.BaseURL,
		Temperature:     a.cfg.Temperature,
		MaxTokens:       a.cfg.MaxTokens,
		TopP:            a.cfg.TopP,
		PresencePenalty: a.cfg.PresencePenalty,
	}
}

func floatOption(override *float64, fallback float64) float64 {
	if override != nil {
		return *override
	}
	return fallback
}

func intOption(override *int, fallback int) int {
	if override != nil {
		return *override
	}
	return fallback
}
