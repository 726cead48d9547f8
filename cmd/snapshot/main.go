package main

import (
	"context"
	"flag"
	"log"
	"time"

	"market-pulse/internal/logger"
	"market-pulse/internal/store"
	"market-pulse/internal/trace"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := initializeSystem(); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = trace.Shutdown(shutdownCtx)
	}()

	cfg, err := store.LoadConfig(*configPath)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		log.Fatal(err)
	}

	pipe, err := buildPipeline(ctx, cfg, store.LoadSecrets())
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to build pipeline", err)
		log.Fatal(err)
	}

	snap, err := pipe.Run(ctx, time.Now())
	if err != nil {
		logger.ErrorWithErr(ctx, "Snapshot run failed", err)
		log.Fatal(err)
	}

	logger.Info(ctx, "Snapshot run completed",
		"articles", len(snap.Articles),
		"sentiment_score", snap.MarketSentimentScore,
		"trend", string(snap.PredictedTrend),
		"snapshot", cfg.Store.SnapshotPath)
}
