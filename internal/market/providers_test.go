package market

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"market-pulse/internal/provider"
)

func TestYahooFetchParsesChart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"chart": {
				"result": [{
					"timestamp": [1756339200, 1756425600, 1756512000],
					"indicators": {"quote": [{"close": [15000.5, null, 15101.25]}]}
				}],
				"error": null
			}
		}`))
	}))
	defer srv.Close()

	y := NewYahooProvider()
	y.baseURL = srv.URL

	points, err := y.Fetch(context.Background(), "^IXIC", 90)
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("Expected null close skipped, got %d points", len(points))
	}
	if points[0].Close != 15000.5 || points[1].Close != 15101.25 {
		t.Errorf("Unexpected closes: %+v", points)
	}
}

func TestYahooFetchAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found"}}}`))
	}))
	defer srv.Close()

	y := NewYahooProvider()
	y.baseURL = srv.URL

	_, err := y.Fetch(context.Background(), "BOGUS", 90)
	if err == nil {
		t.Fatal("Expected error for an unknown symbol")
	}
	var parse *provider.ParseError
	if !errors.As(err, &parse) {
		t.Errorf("Expected ParseError, got %T", err)
	}
}

func TestStooqFetchParsesCSV(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Date,Open,High,Low,Close,Volume\n" +
			"2026-08-28,5000,5060,4990,5050.25,123456\n" +
			"2026-08-31,5050,5070,5010,5022.5,98765\n"))
	}))
	defer srv.Close()

	s := NewStooqProvider()
	s.baseURL = srv.URL

	points, err := s.Fetch(context.Background(), "^spx", 90)
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("Expected 2 points, got %d", len(points))
	}
	if points[0].Close != 5050.25 {
		t.Errorf("Expected close 5050.25, got %f", points[0].Close)
	}
	if points[1].Date.Format("2006-01-02") != "2026-08-31" {
		t.Errorf("Unexpected date: %v", points[1].Date)
	}
}

func TestStooqFetchNoRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Date,Open,High,Low,Close,Volume\n"))
	}))
	defer srv.Close()

	s := NewStooqProvider()
	s.baseURL = srv.URL

	_, err := s.Fetch(context.Background(), "^none", 90)
	if err == nil {
		t.Fatal("Expected error for an empty CSV")
	}
	var parse *provider.ParseError
	if !errors.As(err, &parse) {
		t.Errorf("Expected ParseError, got %T", err)
	}
}

func TestExchangeRateFetchWithKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": "success", "conversion_rates": {"KRW": 1390.5, "EUR": 0.92}}`))
	}))
	defer srv.Close()

	e := NewExchangeRateProvider("test-key")
	e.baseURL = srv.URL

	points, err := e.Fetch(context.Background(), "USD/KRW", 30)
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if len(points) != 30 {
		t.Fatalf("Expected 30 points, got %d", len(points))
	}
	// The walk ends at the latest observed rate.
	if points[29].Close != 1390.5 {
		t.Errorf("Expected final point at the latest rate 1390.5, got %f", points[29].Close)
	}
}

func TestExchangeRateFetchWithoutKey(t *testing.T) {
	e := NewExchangeRateProvider("")

	points, err := e.Fetch(context.Background(), "USD/KRW", 30)
	if err != nil {
		t.Fatalf("Expected the default rate without a key, got %v", err)
	}
	if len(points) != 30 {
		t.Fatalf("Expected 30 points, got %d", len(points))
	}
	if points[29].Close != defaultUSDKRW {
		t.Errorf("Expected final point at the default rate, got %f", points[29].Close)
	}
}

func TestExchangeRateFetchDeterministicWithinDay(t *testing.T) {
	e := NewExchangeRateProvider("")

	a, err := e.Fetch(context.Background(), "USD/KRW", 30)
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Fetch(context.Background(), "USD/KRW", 30)
	if err != nil {
		t.Fatal(err)
	}

	for i := range a {
		if a[i].Close != b[i].Close {
			t.Fatalf("Expected identical series on the same day, diverged at %d", i)
		}
	}
}

func TestExchangeRateInvalidPair(t *testing.T) {
	e := NewExchangeRateProvider("")

	for _, symbol := range []string{"USDKRW", "USD/", "/KRW", "USD/KRW/JPY"} {
		if _, err := e.Fetch(context.Background(), symbol, 30); err == nil {
			t.Errorf("Expected error for invalid pair %q", symbol)
		}
	}
}

func TestExchangeRateMissingQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": "success", "conversion_rates": {"EUR": 0.92}}`))
	}))
	defer srv.Close()

	e := NewExchangeRateProvider("test-key")
	e.baseURL = srv.URL

	_, err := e.Fetch(context.Background(), "USD/KRW", 30)
	if err == nil {
		t.Fatal("Expected error when the quote currency is absent")
	}
	var parse *provider.ParseError
	if !errors.As(err, &parse) {
		t.Errorf("Expected ParseError, got %T", err)
	}
}
