package modelcloudru

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ArtAndrew/agentbridge/agent"
)

func TestHTTPCompleter_SendsRequestAndReadsTopChoice(t *testing.T) {
	t.Parallel()

	var gotPath, gotAuth string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Thought: done"}}]}`))
	}))
	defer server.Close()

	completer := newHTTPCompleter(server.URL, "secret-key", server.Client())
	text, err := completer.Complete(context.Background(), agent.CompletionRequest{
		Model: "zai-org/GLM-4.5",
		Messages: []agent.PromptMessage{
			{Role: agent.RoleUser, Content: "hello"},
		},
		Temperature: 0.5,
		MaxTokens:   5000,
		Stop:        []string{"<code>"},
	})
	if err != nil {
		t.Fatalf("complete returned error: %v", err)
	}

	if text != "Thought: done" {
		t.Fatalf("text mismatch: got=%q", text)
	}
	if gotPath != "/chat/completions" {
		t.Fatalf("endpoint path mismatch: got=%q", gotPath)
	}
	if gotAuth != "Bearer secret-key" {
		t.Fatalf("auth header mismatch: got=%q", gotAuth)
	}
	if gotBody["model"] != "zai-org/GLM-4.5" {
		t.Fatalf("model field mismatch: got=%v", gotBody["model"])
	}
	if _, present := gotBody["stop"]; !present {
		t.Fatalf("expected stop field in request body: %v", gotBody)
	}
}

func TestHTTPCompleter_OmitsEmptyStopField(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer server.Close()

	completer := newHTTPCompleter(server.URL, "k", server.Client())
	if _, err := completer.Complete(context.Background(), agent.CompletionRequest{Model: "m"}); err != nil {
		t.Fatalf("complete returned error: %v", err)
	}

	if _, present := gotBody["stop"]; present {
		t.Fatalf("stop field must be omitted when empty: %v", gotBody)
	}
}

func TestHTTPCompleter_NonSuccessStatusIsError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"rate limit exceeded"}`))
	}))
	defer server.Close()

	completer := newHTTPCompleter(server.URL, "k", server.Client())
	_, err := completer.Complete(context.Background(), agent.CompletionRequest{Model: "m"})
	if err == nil {
		t.Fatalf("expected error for status 429")
	}
	if !strings.Contains(err.Error(), "status=429") || !strings.Contains(err.Error(), "rate limit exceeded") {
		t.Fatalf("error should carry status and body: %v", err)
	}
}

func TestHTTPCompleter_EmptyChoicesIsError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	completer := newHTTPCompleter(server.URL, "k", server.Client())
	if _, err := completer.Complete(context.Background(), agent.CompletionRequest{Model: "m"}); err == nil {
		t.Fatalf("expected error for empty choices")
	}
}

func TestHTTPCompleter_MalformedBodyIsError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	completer := newHTTPCompleter(server.URL, "k", server.Client())
	if _, err := completer.Complete(context.Background(), agent.CompletionRequest{Model: "m"}); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestHTTPCompleter_TrailingSlashBaseURL(t *testing.T) {
	t.Parallel()

	completer := newHTTPCompleter("https://example.com/v1/", "k", http.DefaultClient)
	if completer.endpointURL != "https://example.com/v1/chat/completions" {
		t.Fatalf("endpoint mismatch: got=%q", completer.endpointURL)
	}
}
