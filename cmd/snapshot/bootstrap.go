package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"market-pulse/internal/logger"
	"market-pulse/internal/market"
	"market-pulse/internal/market/marketobs"
	"market-pulse/internal/news"
	"market-pulse/internal/pipeline"
	"market-pulse/internal/provider"
	"market-pulse/internal/sentiment"
	"market-pulse/internal/sentiment/sentimentobs"
	"market-pulse/internal/store"
	"market-pulse/internal/trace"
)

// initializeSystem loads the environment and sets up logging and tracing
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}
	return nil
}

// buildPipeline wires the run's collaborators from config and secrets
func buildPipeline(ctx context.Context, cfg *store.Config, secrets store.Secrets) (*pipeline.Pipeline, error) {
	// Marketaux and exchangerate-api both enforce request quotas, so
	// their clients carry a token bucket.
	collector := news.NewCollector(news.Config{
		BaseURL:      cfg.News.BaseURL,
		APIKey:       secrets.MarketauxKey,
		Countries:    cfg.News.Countries,
		Language:     cfg.News.Language,
		MinBodyChars: cfg.News.MinBodyChars,
	},
		provider.WithTimeout(10*time.Second),
		provider.WithRateLimit(1, time.Second),
	)

	analyzer, err := sentiment.NewAnalyzer(ctx, secrets.GeminiKey,
		sentiment.WithModel(cfg.Sentiment.Model),
		sentiment.WithMaxChars(cfg.Sentiment.MaxChars),
		sentiment.WithTemperature(*cfg.Sentiment.Temperature),
		sentiment.WithTimeout(time.Duration(cfg.Sentiment.TimeoutSeconds)*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sentiment analyzer: %w", err)
	}

	acquirer := market.NewAcquirer(
		cfg.Forecast.WindowDays,
		cfg.Forecast.MinPoints,
		market.NewYahooProvider(),
		market.NewStooqProvider(),
		market.NewExchangeRateProvider(secrets.ExchangeRateKey,
			provider.WithRateLimit(1, time.Second)),
	)

	db, err := store.OpenDB(cfg.Store.DatabasePath)
	if err != nil {
		return nil, err
	}

	return pipeline.New(
		cfg,
		collector,
		sentimentobs.Wrap(analyzer),
		marketobs.Wrap(acquirer),
		db,
	), nil
}
