package news

import (
	"context"
	"fmt"
	"net/url"

	"market-pulse/internal/logger"
	"market-pulse/internal/provider"
	"market-pulse/internal/types"
)

// Collector fetches recent market news from a Marketaux-style JSON API.
type Collector struct {
	baseURL      string
	apiKey       string
	countries    string
	language     string
	minBodyChars int
	client       *provider.Client
}

// Config configures the collector.
type Config struct {
	BaseURL      string
	APIKey       string
	Countries    string
	Language     string
	MinBodyChars int
}

func NewCollector(cfg Config, opts ...provider.Option) *Collector {
	return &Collector{
		baseURL:      cfg.BaseURL,
		apiKey:       cfg.APIKey,
		countries:    cfg.Countries,
		language:     cfg.Language,
		minBodyChars: cfg.MinBodyChars,
		client:       provider.NewClient("marketaux", opts...),
	}
}

type newsResponse struct {
	Data []struct {
		UUID        string `json:"uuid"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Snippet     string `json:"snippet"`
		URL         string `json:"url"`
		ImageURL    string `json:"image_url"`
		PublishedAt string `json:"published_at"`
	} `json:"data"`
}

// Collect returns up to limit recent articles. Without an API key it
// returns an empty list so the rest of the pipeline still runs. Articles
// whose body is too short to summarize meaningfully are filtered out.
func (c *Collector) Collect(ctx context.Context, limit int) ([]types.Article, error) {
	if c.apiKey == "" {
		logger.Warn(ctx, "No news API key configured, skipping news collection")
		return nil, nil
	}

	q := url.Values{}
	q.Set("countries", c.countries)
	q.Set("language", c.language)
	q.Set("filter_entities", "true")
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("api_token", c.apiKey)

	var resp newsResponse
	if err := c.client.GetJSON(ctx, c.baseURL+"?"+q.Encode(), &resp); err != nil {
		// Source unavailable degrades to a newsless run.
		logger.ErrorWithErr(ctx, "News collection failed", err)
		return nil, nil
	}

	articles := make([]types.Article, 0, len(resp.Data))
	for _, raw := range resp.Data {
		body := raw.Description
		if body == "" {
			body = raw.Snippet
		}
		if len(body) < c.minBodyChars {
			continue
		}
		articles = append(articles, types.Article{
			ID:          raw.UUID,
			Title:       raw.Title,
			Description: body,
			URL:         raw.URL,
			ImageURL:    raw.ImageURL,
			PublishedAt: raw.PublishedAt,
		})
	}

	logger.Info(ctx, "News collection completed",
		"fetched", len(resp.Data), "usable", len(articles))
	return articles, nil
}
