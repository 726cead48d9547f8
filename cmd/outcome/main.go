// Command outcome records the realized market direction for the previous
// day, closing the feedback loop the retrainer learns from.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
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
	"market-pulse/internal/store"
	"market-pulse/internal/trace"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	dateArg := flag.String("date", "", "observation date (2006-01-02), default yesterday")
	flag.Parse()

	_ = godotenv.Load()
	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	ctx := context.Background()
	cfg, err := store.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	date := time.Now().AddDate(0, 0, -1)
	if *dateArg != "" {
		date, err = time.Parse("2006-01-02", *dateArg)
		if err != nil {
			log.Fatalf("invalid -date: %v", err)
		}
	}

	db, err := store.OpenDB(cfg.Store.DatabasePath)
	if err != nil {
		log.Fatal(err)
	}

	secrets := store.LoadSecrets()
	acquirer := market.NewAcquirer(
		cfg.Forecast.WindowDays,
		cfg.Forecast.MinPoints,
		market.NewYahooProvider(),
		market.NewStooqProvider(),
		market.NewExchangeRateProvider(secrets.ExchangeRateKey,
			provider.WithRateLimit(1, time.Second)),
	)

	// The observation pass needs no news or sentiment; disabled
	// collaborators keep the pipeline wiring uniform.
	collector := news.NewCollector(news.Config{})
	analyzer, err := sentiment.NewAnalyzer(ctx, "")
	if err != nil {
		log.Fatal(err)
	}

	pipe := pipeline.New(cfg, collector, analyzer, marketobs.Wrap(acquirer), db)
	if err := pipe.ObserveOutcome(ctx, date); err != nil {
		logger.ErrorWithErr(ctx, "Outcome observation failed", err)
		log.Fatal(err)
	}
}
