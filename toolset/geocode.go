package toolset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/ArtAndrew/agentbridge/agent"
	"github.com/ArtAndrew/agentbridge/tooling/registry"
)

const geoapifyEndpoint = "https://api.geoapify.com/v1/geocode/search"

// Geocoder resolves an address to "(lat, lon)" via the Geoapify API. Lookup
// failures degrade to "(0, 0)" so downstream code always receives a
// coordinate pair.
type Geocoder struct {
	apiKey      string
	endpointURL string
	httpClient  *http.Client
	logger      *slog.Logger
}

type GeocoderConfig struct {
	APIKey      string
	EndpointURL string
	HTTPClient  *http.Client
	Logger      *slog.Logger
}

func NewGeocoder(cfg GeocoderConfig) *Geocoder {
	endpointURL := cfg.EndpointURL
	if endpointURL == "" {
		endpointURL = geoapifyEndpoint
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Geocoder{
		apiKey:      cfg.APIKey,
		endpointURL: endpointURL,
		httpClient:  httpClientOrDefault(cfg.HTTPClient),
		logger:      logger,
	}
}

// Tool exposes the geocoder as a registry entry.
func (t *Geocoder) Tool() registry.Tool {
	return registry.Tool{
		Definition: agent.ToolDefinition{
			Name:        "geocoder",
			Description: "Geocoder which gets coordinates by address.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"address": map[string]any{
						"type":        "string",
						"description": "Address of the bank",
					},
				},
				"required": []string{"address"},
			},
		},
		Handler: func(ctx context.Context, arguments map[string]any) (string, error) {
			address, err := stringArgument(arguments, "address")
			if err != nil {
				return "", err
			}
			return t.Locate(ctx, address), nil
		},
	}
}

// Locate resolves one address. Any failure keeps the zero coordinates.
func (t *Geocoder) Locate(ctx context.Context, address string) string {
	lat, lon := 0.0, 0.0

	if coords, err := t.lookup(ctx, address); err != nil {
		t.logger.Warn("geocoder lookup failed", "address", address, "error", err)
	} else {
		lat, lon = coords.lat, coords.lon
	}

	return fmt.Sprintf("(%v, %v)", lat, lon)
}

type coordinates struct {
	lat float64
	lon float64
}

func (t *Geocoder) lookup(ctx context.Context, address string) (coordinates, error) {
	query := url.Values{
		"text":   {address},
		"lang":   {"ru"},
		"limit":  {"1"},
		"apiKey": {t.apiKey},
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, t.endpointURL+"?"+query.Encode(), nil)
	if err != nil {
		return coordinates{}, fmt.Errorf("geocode request build: %w", err)
	}

	response, err := t.httpClient.Do(request)
	if err != nil {
		return coordinates{}, fmt.Errorf("geocode request execute: %w", err)
	}
	defer response.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(response.Body, 2<<20))
	if err != nil {
		return coordinates{}, fmt.Errorf("geocode response read: %w", err)
	}
	if response.StatusCode != http.StatusOK {
		return coordinates{}, fmt.Errorf("geocode response status=%d", response.StatusCode)
	}

	var parsed geoapifyResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return coordinates{}, fmt.Errorf("geocode response decode: %w", err)
	}
	if len(parsed.Features) == 0 {
		return coordinates{}, fmt.Errorf("geocode response: no features for %q", address)
	}

	properties := parsed.Features[0].Properties
	return coordinates{lat: properties.Lat, lon: properties.Lon}, nil
}

type geoapifyResponse struct {
	Features []geoapifyFeature `json:"features"`
}

type geoapifyFeature struct {
	Properties geoapifyProperties `json:"properties"`
}

type geoapifyProperties struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
