package modelcloudru

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ArtAndrew/agentbridge/agent"
)

const (
	// DefaultModel and DefaultBaseURL target Cloud.ru Foundation Models.
	DefaultModel   = "zai-org/GLM-4.5"
	DefaultBaseURL = "https://foundation-models.api.cloud.ru/v1"

	defaultTemperature     = 0.5
	defaultMaxTokens       = 5000
	defaultTopP            = 0.95
	defaultPresencePenalty = 0.0
	defaultTimeout         = 60 * time.Second
	defaultMaxAttempts     = 3
)

// Environment variables consulted for the credential, in precedence order,
// when Config.APIKey is empty.
const (
	EnvAPIKey         = "CLOUD_RU_API_KEY"
	EnvAPIKeyFallback = "API_KEY"
)

// ErrMissingAPIKey is returned by New when no credential is resolvable from
// the config or the environment.
var ErrMissingAPIKey = errors.New("api key is required: set Config.APIKey, $CLOUD_RU_API_KEY, or $API_KEY")

// Config controls one adapter instance. A zero value plus a resolvable
// credential is usable: every other field has a working default. Zero-valued
// sampling fields fall back to the defaults; per-call values below a default
// go through agent.GenerateOptions instead.
type Config struct {
	Model   string
	APIKey  string
	BaseURL string

	Temperature     float64
	MaxTokens       int
	TopP            float64
	PresencePenalty float64

	// MaxAttempts bounds transport attempts per call for the built-in HTTP
	// completer. It does not apply to an injected Completer.
	MaxAttempts int

	// Completer overrides the built-in HTTP transport. Used by tests and
	// custom transports; retry wrapping is then the caller's concern.
	Completer agent.Completer

	HTTPClient *http.Client
	Logger     *slog.Logger
}

func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.Model) == "" {
		c.Model = DefaultModel
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Temperature == 0 {
		c.Temperature = defaultTemperature
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = defaultMaxTokens
	}
	if c.TopP == 0 {
		c.TopP = defaultTopP
	}
	if c.PresencePenalty == 0 {
		c.PresencePenalty = defaultPresencePenalty
	}
	if c.MaxAttempts < 1 {
		c.MaxAttempts = defaultMaxAttempts
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// resolveAPIKey applies the credential precedence order. Environment lookups
// happen here, at construction, never inside the call path.
func (c Config) resolveAPIKey() (string, error) {
	for _, candidate := range []string{c.APIKey, os.Getenv(EnvAPIKey), os.Getenv(EnvAPIKeyFallback)} {
		if key := strings.TrimSpace(candidate); key != "" {
			return key, nil
		}
	}
	return "", ErrMissingAPIKey
}
