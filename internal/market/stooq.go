package market

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"market-pulse/internal/provider"
	"market-pulse/internal/types"
)

// StooqProvider fetches daily closes from the free Stooq CSV endpoint.
// Used as the unauthenticated fallback behind Yahoo.
type StooqProvider struct {
	baseURL string
	client  *provider.Client
}

func NewStooqProvider(opts ...provider.Option) *StooqProvider {
	return &StooqProvider{
		baseURL: "https://stooq.com",
		client:  provider.NewClient("stooq", opts...),
	}
}

func (s *StooqProvider) Name() string { return "stooq" }

// Fetch returns daily closes for symbol over the trailing window.
// Response is CSV: Date,Open,High,Low,Close,Volume.
func (s *StooqProvider) Fetch(ctx context.Context, symbol string, windowDays int) ([]types.SeriesPoint, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -windowDays)

	u := fmt.Sprintf("%s/q/d/l/?s=%s&d1=%s&d2=%s&i=d",
		s.baseURL, url.QueryEscape(symbol), start.Format("20060102"), end.Format("20060102"))

	body, err := s.client.GetBody(ctx, u)
	if err != nil {
		return nil, err
	}

	records, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	if err != nil {
		return nil, &provider.ParseError{Source: "stooq", Err: err}
	}
	if len(records) < 2 {
		return nil, &provider.ParseError{Source: "stooq", Err: fmt.Errorf("no rows for %s", symbol)}
	}

	points := make([]types.SeriesPoint, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < 5 {
			continue
		}
		date, err := time.Parse("2006-01-02", rec[0])
		if err != nil {
			continue
		}
		close, err := strconv.ParseFloat(rec[4], 64)
		if err != nil {
			continue
		}
		points = append(points, types.SeriesPoint{Date: date, Close: close})
	}
	if len(points) == 0 {
		return nil, &provider.ParseError{Source: "stooq", Err: fmt.Errorf("no parseable rows for %s", symbol)}
	}
	return points, nil
}
