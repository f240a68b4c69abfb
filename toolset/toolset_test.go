package toolset

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSerperSearch_FormatsTopResults(t *testing.T) {
	t.Parallel()

	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-KEY")
		_, _ = w.Write([]byte(`{
			"organic": [
				{"title": "Alfa Bank", "snippet": "Tverskaya 1", "link": "https://alfabank.ru"},
				{"title": "Sber", "snippet": "Arbat 5", "link": "https://sber.ru"},
				{"title": "r3"}, {"title": "r4"}, {"title": "r5"}, {"title": "r6"}
			]
		}`))
	}))
	defer server.Close()

	search := NewSerperSearch(SerperConfig{
		APIKey:      "serper-key",
		EndpointURL: server.URL,
		HTTPClient:  server.Client(),
	})

	got := search.Search(context.Background(), "banks near Tverskaya")
	if gotKey != "serper-key" {
		t.Fatalf("api key header mismatch: got=%q", gotKey)
	}
	if !strings.Contains(got, "Title: Alfa Bank") || !strings.Contains(got, "Link: https://sber.ru") {
		t.Fatalf("formatted results mismatch:\n%s", got)
	}
	if strings.Contains(got, "r6") {
		t.Fatalf("expected at most five results:\n%s", got)
	}
	if !strings.Contains(got, "Address: N/A") {
		t.Fatalf("expected N/A placeholder for missing snippet:\n%s", got)
	}
}

func TestSerperSearch_MissingKeyIsErrorString(t *testing.T) {
	t.Parallel()

	search := NewSerperSearch(SerperConfig{})
	got := search.Search(context.Background(), "anything")
	if !strings.HasPrefix(got, "Error:") {
		t.Fatalf("expected error string, got %q", got)
	}
}

func TestSerperSearch_NonSuccessStatusIsErrorString(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	search := NewSerperSearch(SerperConfig{
		APIKey:      "k",
		EndpointURL: server.URL,
		HTTPClient:  server.Client(),
	})

	got := search.Search(context.Background(), "q")
	if !strings.Contains(got, "status 403") {
		t.Fatalf("expected status in error string, got %q", got)
	}
}

func TestSerperSearch_NoOrganicResults(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"organic": []}`))
	}))
	defer server.Close()

	search := NewSerperSearch(SerperConfig{APIKey: "k", EndpointURL: server.URL, HTTPClient: server.Client()})
	if got := search.Search(context.Background(), "q"); got != "No results found" {
		t.Fatalf("empty result mismatch: %q", got)
	}
}

func TestCBRCurrency_FormatsRate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"Date": "2026-08-26T11:30:00+03:00",
			"Valute": {"USD": {"Value": 81.53}}
		}`))
	}))
	defer server.Close()

	currency := NewCBRCurrency(CBRConfig{EndpointURL: server.URL, HTTPClient: server.Client()})

	got := currency.Rate(context.Background())
	want := "Official CBR rate for 2026-08-26:\nUSD/RUB: 81.5300 RUB"
	if got != want {
		t.Fatalf("rate mismatch:\n got=%q\nwant=%q", got, want)
	}
}

func TestCBRCurrency_MissingUSDQuoteIsErrorString(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"Date": "2026-08-26", "Valute": {}}`))
	}))
	defer server.Close()

	currency := NewCBRCurrency(CBRConfig{EndpointURL: server.URL, HTTPClient: server.Client()})
	if got := currency.Rate(context.Background()); !strings.Contains(got, "no USD quote") {
		t.Fatalf("expected missing-quote error string, got %q", got)
	}
}

func TestCBRCurrency_TransportFailureIsErrorString(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	currency := NewCBRCurrency(CBRConfig{EndpointURL: server.URL})
	if got := currency.Rate(context.Background()); !strings.HasPrefix(got, "Error fetching CBR data:") {
		t.Fatalf("expected fetch error string, got %q", got)
	}
}

func TestGeocoder_ReturnsCoordinatePair(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("text") == "" || r.URL.Query().Get("apiKey") != "geo-key" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"features": [{"properties": {"lat": 55.7558, "lon": 37.6173}}]}`))
	}))
	defer server.Close()

	geocoder := NewGeocoder(GeocoderConfig{
		APIKey:      "geo-key",
		EndpointURL: server.URL,
		HTTPClient:  server.Client(),
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	got := geocoder.Locate(context.Background(), "Moscow, Tverskaya 1")
	if got != "(55.7558, 37.6173)" {
		t.Fatalf("coordinates mismatch: got=%q", got)
	}
}

func TestGeocoder_FailureDegradesToZeroCoordinates(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	geocoder := NewGeocoder(GeocoderConfig{
		APIKey:      "bad-key",
		EndpointURL: server.URL,
		HTTPClient:  server.Client(),
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	if got := geocoder.Locate(context.Background(), "nowhere"); got != "(0, 0)" {
		t.Fatalf("expected zero coordinates, got %q", got)
	}
}

func TestGeocoder_NoFeaturesDegradesToZeroCoordinates(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"features": []}`))
	}))
	defer server.Close()

	geocoder := NewGeocoder(GeocoderConfig{
		APIKey:      "k",
		EndpointURL: server.URL,
		HTTPClient:  server.Client(),
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	if got := geocoder.Locate(context.Background(), "unknown address"); got != "(0, 0)" {
		t.Fatalf("expected zero coordinates, got %q", got)
	}
}

func TestUserInput_ReadsTrimmedLine(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	input := NewUserInput(strings.NewReader("  Tverskaya 1  \n"), &out)

	if got := input.Ask("Enter the address"); got != "Tverskaya 1" {
		t.Fatalf("input mismatch: got=%q", got)
	}
	if out.String() != "Enter the address: " {
		t.Fatalf("prompt mismatch: got=%q", out.String())
	}
}

func TestUserInput_EOFWithoutInputIsErrorString(t *testing.T) {
	t.Parallel()

	input := NewUserInput(strings.NewReader(""), io.Discard)
	if got := input.Ask("Anything"); !strings.HasPrefix(got, "Error getting user input:") {
		t.Fatalf("expected error string, got %q", got)
	}
}

func TestUserInput_LastLineWithoutNewline(t *testing.T) {
	t.Parallel()

	input := NewUserInput(strings.NewReader("final answer"), io.Discard)
	if got := input.Ask("Q"); got != "final answer" {
		t.Fatalf("input mismatch: got=%q", got)
	}
}

func TestToolHandlers_ValidateArguments(t *testing.T) {
	t.Parallel()

	search := NewSerperSearch(SerperConfig{APIKey: "k"})
	if _, err := search.Tool().Handler(context.Background(), map[string]any{}); err == nil {
		t.Fatalf("expected missing-argument error for serper_search")
	}

	geocoder := NewGeocoder(GeocoderConfig{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	if _, err := geocoder.Tool().Handler(context.Background(), map[string]any{"address": 5}); err == nil {
		t.Fatalf("expected type error for geocoder address")
	}
}
