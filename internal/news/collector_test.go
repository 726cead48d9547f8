package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"market-pulse/internal/provider"
)

const longBody = "Federal Reserve officials signalled they are prepared to hold interest rates steady through the fourth quarter as inflation pressures continue to ease across most sectors of the economy."

func newsServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
}

func TestCollectWithoutKey(t *testing.T) {
	c := NewCollector(Config{})

	articles, err := c.Collect(context.Background(), 10)
	if err != nil {
		t.Errorf("Expected no error without a key, got %v", err)
	}
	if articles != nil {
		t.Errorf("Expected nil articles without a key, got %d", len(articles))
	}
}

func TestCollectParsesArticles(t *testing.T) {
	srv := newsServer(t, `{
		"data": [
			{
				"uuid": "abc-123",
				"title": "Fed Holds Rates",
				"description": "`+longBody+`",
				"url": "https://example.com/fed",
				"image_url": "https://example.com/fed.jpg",
				"published_at": "2026-08-31T14:00:00.000000Z"
			}
		]
	}`)
	defer srv.Close()

	c := NewCollector(Config{BaseURL: srv.URL, APIKey: "k", MinBodyChars: 100})
	articles, err := c.Collect(context.Background(), 10)
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("Expected 1 article, got %d", len(articles))
	}

	a := articles[0]
	if a.ID != "abc-123" || a.Title != "Fed Holds Rates" {
		t.Errorf("Unexpected article: %+v", a)
	}
	if a.Description != longBody {
		t.Errorf("Unexpected description: %s", a.Description)
	}
}

func TestCollectFiltersShortBodies(t *testing.T) {
	srv := newsServer(t, `{
		"data": [
			{"uuid": "short", "title": "Headline only", "description": "Too brief."},
			{"uuid": "long", "title": "Real article", "description": "`+longBody+`"}
		]
	}`)
	defer srv.Close()

	c := NewCollector(Config{BaseURL: srv.URL, APIKey: "k", MinBodyChars: 100})
	articles, err := c.Collect(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(articles) != 1 {
		t.Fatalf("Expected the short article filtered, got %d articles", len(articles))
	}
	if articles[0].ID != "long" {
		t.Errorf("Expected the long article to survive, got %s", articles[0].ID)
	}
}

func TestCollectFallsBackToSnippet(t *testing.T) {
	srv := newsServer(t, `{
		"data": [
			{"uuid": "s1", "title": "Snippet only", "description": "", "snippet": "`+longBody+`"}
		]
	}`)
	defer srv.Close()

	c := NewCollector(Config{BaseURL: srv.URL, APIKey: "k", MinBodyChars: 100})
	articles, err := c.Collect(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(articles) != 1 {
		t.Fatalf("Expected 1 article, got %d", len(articles))
	}
	if articles[0].Description != longBody {
		t.Errorf("Expected snippet used as body, got %s", articles[0].Description)
	}
}

func TestCollectDegradesOnProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewCollector(Config{BaseURL: srv.URL, APIKey: "bad-key", MinBodyChars: 100})
	articles, err := c.Collect(context.Background(), 10)
	if err != nil {
		t.Errorf("Expected failure to degrade to an empty run, got %v", err)
	}
	if len(articles) != 0 {
		t.Errorf("Expected no articles on failure, got %d", len(articles))
	}
}

func TestCollectWithRateLimit(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	c := NewCollector(Config{BaseURL: srv.URL, APIKey: "k"},
		provider.WithRateLimit(1, 20*time.Millisecond))

	// First call consumes the only token; the second must wait for the
	// refill rather than fail.
	start := time.Now()
	for i := 0; i < 2; i++ {
		if _, err := c.Collect(context.Background(), 5); err != nil {
			t.Fatalf("Expected collect %d to succeed, got %v", i, err)
		}
	}
	if hits != 2 {
		t.Errorf("Expected 2 requests, got %d", hits)
	}
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Errorf("Expected the second request paced by the limiter, took %v", elapsed)
	}
}

func TestCollectSendsQueryParameters(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	c := NewCollector(Config{
		BaseURL:   srv.URL,
		APIKey:    "secret",
		Countries: "us",
		Language:  "en",
	}, provider.WithRetry(1, 0))
	if _, err := c.Collect(context.Background(), 7); err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"countries=us", "language=en", "limit=7", "api_token=secret", "filter_entities=true"} {
		if !strings.Contains(query, want) {
			t.Errorf("Expected query to contain %s, got %s", want, query)
		}
	}
}
