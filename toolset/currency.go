package toolset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ArtAndrew/agentbridge/agent"
	"github.com/ArtAndrew/agentbridge/tooling/registry"
)

const cbrEndpoint = "https://www.cbr-xml-daily.ru/daily_json.js"

// CBRCurrency reports the official USD/RUB rate published by the Central Bank
// of Russia.
type CBRCurrency struct {
	endpointURL string
	httpClient  *http.Client
}

type CBRConfig struct {
	EndpointURL string
	HTTPClient  *http.Client
}

func NewCBRCurrency(cfg CBRConfig) *CBRCurrency {
	endpointURL := cfg.EndpointURL
	if endpointURL == "" {
		endpointURL = cbrEndpoint
	}
	return &CBRCurrency{
		endpointURL: endpointURL,
		httpClient:  httpClientOrDefault(cfg.HTTPClient),
	}
}

// Tool exposes the rate lookup as a registry entry. The tool takes no
// arguments.
func (t *CBRCurrency) Tool() registry.Tool {
	return registry.Tool{
		Definition: agent.ToolDefinition{
			Name:        "cbr_currency",
			Description: "Gets official currency rates from the Central Bank of Russia (CBR).",
			InputSchema: map[string]any{"type": "object"},
		},
		Handler: func(ctx context.Context, _ map[string]any) (string, error) {
			return t.Rate(ctx), nil
		},
	}
}

// Rate fetches today's quote. Failures are reported in the result string.
func (t *CBRCurrency) Rate(ctx context.Context) string {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, t.endpointURL, nil)
	if err != nil {
		return fmt.Sprintf("Error fetching CBR data: %v", err)
	}

	response, err := t.httpClient.Do(request)
	if err != nil {
		return fmt.Sprintf("Error fetching CBR data: %v", err)
	}
	defer response.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(response.Body, 2<<20))
	if err != nil {
		return fmt.Sprintf("Error processing CBR data: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		return fmt.Sprintf("Error fetching CBR data: status %d", response.StatusCode)
	}

	var parsed cbrResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return fmt.Sprintf("Error processing CBR data: %v", err)
	}

	usd, ok := parsed.Valute["USD"]
	if !ok {
		return "Error processing CBR data: no USD quote"
	}

	date := parsed.Date
	if len(date) > 10 {
		date = date[:10]
	}
	return fmt.Sprintf("Official CBR rate for %s:\nUSD/RUB: %.4f RUB", date, usd.Value)
}

type cbrResponse struct {
	Date   string              `json:"Date"`
	Valute map[string]cbrQuote `json:"Valute"`
}

type cbrQuote struct {
	Value float64 `json:"Value"`
}
