package toolset

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ArtAndrew/agentbridge/agent"
	"github.com/ArtAndrew/agentbridge/tooling/registry"
)

const serperEndpoint = "https://google.serper.dev/search"

// SerperSearch queries the Serper.dev Google Search API and formats the top
// organic results.
type SerperSearch struct {
	apiKey      string
	endpointURL string
	httpClient  *http.Client
}

type SerperConfig struct {
	APIKey      string
	EndpointURL string
	HTTPClient  *http.Client
}

func NewSerperSearch(cfg SerperConfig) *SerperSearch {
	endpointURL := cfg.EndpointURL
	if endpointURL == "" {
		endpointURL = serperEndpoint
	}
	return &SerperSearch{
		apiKey:      cfg.APIKey,
		endpointURL: endpointURL,
		httpClient:  httpClientOrDefault(cfg.HTTPClient),
	}
}

// Tool exposes the search as a registry entry.
func (t *SerperSearch) Tool() registry.Tool {
	return registry.Tool{
		Definition: agent.ToolDefinition{
			Name:        "serper_search",
			Description: "Searches for information using the Serper.dev Google Search API. Useful for finding banks near a location.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "Search query to execute",
					},
				},
				"required": []string{"query"},
			},
		},
		Handler: func(ctx context.Context, arguments map[string]any) (string, error) {
			query, err := stringArgument(arguments, "query")
			if err != nil {
				return "", err
			}
			return t.Search(ctx, query), nil
		},
	}
}

// Search runs one query and returns up to five formatted results. Failures
// are reported in the result string.
func (t *SerperSearch) Search(ctx context.Context, query string) string {
	if t.apiKey == "" {
		return "Error: serper api key is not configured"
	}

	payload, err := json.Marshal(map[string]any{"q": query, "num": 10})
	if err != nil {
		return fmt.Sprintf("Error making request to Serper API: %v", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpointURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Sprintf("Error making request to Serper API: %v", err)
	}
	request.Header.Set("X-API-KEY", t.apiKey)
	request.Header.Set("Content-Type", "application/json")

	response, err := t.httpClient.Do(request)
	if err != nil {
		return fmt.Sprintf("Error making request to Serper API: %v", err)
	}
	defer response.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(response.Body, 2<<20))
	if err != nil {
		return fmt.Sprintf("Error processing Serper API response: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		return fmt.Sprintf("Error making request to Serper API: status %d", response.StatusCode)
	}

	var parsed serperResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return fmt.Sprintf("Error processing Serper API response: %v", err)
	}

	var formatted []string
	for i, result := range parsed.Organic {
		if i == 5 {
			break
		}
		formatted = append(formatted, fmt.Sprintf(
			"Title: %s\nAddress: %s\nLink: %s\n",
			orNA(result.Title),
			orNA(result.Snippet),
			orNA(result.Link),
		))
	}
	if len(formatted) == 0 {
		return "No results found"
	}
	return strings.Join(formatted, "\n")
}

type serperResponse struct {
	Organic []serperResult `json:"organic"`
}

type serperResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
