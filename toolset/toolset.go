// Package toolset implements the lookup tools exposed to the code agent: web
// search, official currency rates, geocoding, and interactive user input.
// Remote failures come back as "Error: ..." result strings rather than Go
// errors so the agent's generated code can print and react to them.
package toolset

import (
	"fmt"
	"net/http"
	"time"
)

const defaultHTTPTimeout = 30 * time.Second

func stringArgument(arguments map[string]any, key string) (string, error) {
	raw, ok := arguments[key]
	if !ok {
		return "", fmt.Errorf("missing argument %q", key)
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("argument %q must be a string", key)
	}
	return value, nil
}

func httpClientOrDefault(client *http.Client) *http.Client {
	if client == nil {
		return &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}
