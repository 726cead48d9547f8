package market

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"market-pulse/internal/provider"
	"market-pulse/internal/types"
)

// YahooProvider fetches daily closes from the Yahoo Finance chart API.
type YahooProvider struct {
	baseURL string
	client  *provider.Client
}

// NewYahooProvider creates the provider with its own request client.
// Yahoo rejects the default Go user agent, so a browser one is sent.
func NewYahooProvider(opts ...provider.Option) *YahooProvider {
	base := []provider.Option{
		provider.WithHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"),
	}
	return &YahooProvider{
		baseURL: "https://query1.finance.yahoo.com",
		client:  provider.NewClient("yahoo", append(base, opts...)...),
	}
}

func (y *YahooProvider) Name() string { return "yahoo" }

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Fetch returns up to windowDays of daily closes for symbol.
func (y *YahooProvider) Fetch(ctx context.Context, symbol string, windowDays int) ([]types.SeriesPoint, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -windowDays)

	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		y.baseURL, url.PathEscape(symbol), start.Unix(), end.Unix())

	var resp yahooChartResponse
	if err := y.client.GetJSON(ctx, u, &resp); err != nil {
		return nil, err
	}

	if resp.Chart.Error != nil {
		return nil, &provider.ParseError{Source: "yahoo",
			Err: fmt.Errorf("%s: %s", resp.Chart.Error.Code, resp.Chart.Error.Description)}
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, &provider.ParseError{Source: "yahoo", Err: fmt.Errorf("no result for %s", symbol)}
	}

	result := resp.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close
	if len(result.Timestamp) != len(closes) {
		return nil, &provider.ParseError{Source: "yahoo",
			Err: fmt.Errorf("timestamp/close length mismatch %d != %d", len(result.Timestamp), len(closes))}
	}

	points := make([]types.SeriesPoint, 0, len(closes))
	for i, ts := range result.Timestamp {
		if closes[i] == nil {
			// Yahoo pads non-trading timestamps with nulls.
			continue
		}
		points = append(points, types.SeriesPoint{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *closes[i],
		})
	}
	return points, nil
}
