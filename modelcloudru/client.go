package modelcloudru

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ArtAndrew/agentbridge/agent"
)

const completionsEndpoint = "/chat/completions"

// httpCompleter is the real transport: one POST per call against an
// OpenAI-compatible chat-completions endpoint.
type httpCompleter struct {
	endpointURL string
	apiKey      string
	httpClient  *http.Client
}

var _ agent.Completer = (*httpCompleter)(nil)

func newHTTPCompleter(baseURL, apiKey string, httpClient *http.Client) *httpCompleter {
	return &httpCompleter{
		endpointURL: strings.TrimRight(baseURL, "/") + completionsEndpoint,
		apiKey:      apiKey,
		httpClient:  httpClient,
	}
}

func (c *httpCompleter) Complete(ctx context.Context, request agent.CompletionRequest) (string, error) {
	encoded, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("provider request encode: %w", err)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("provider request build: %w", err)
	}
	httpRequest.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpRequest.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(httpRequest)
	if err != nil {
		return "", fmt.Errorf("provider request execute: %w", err)
	}
	defer response.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(response.Body, 2<<20))
	if err != nil {
		return "", fmt.Errorf("provider response read: %w", err)
	}

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf(
			"provider response status=%d body=%s",
			response.StatusCode,
			string(bodyBytes),
		)
	}

	var parsed completionResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return "", fmt.Errorf("provider response decode: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("provider response decode: no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

type completionResponse struct {
	Choices []completionChoice `json:"choices"`
}

type completionChoice struct {
	Message completionMessage `json:"message"`
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
