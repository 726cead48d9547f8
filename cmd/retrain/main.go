// Command retrain refits the trend classifier from the accumulated
// (prediction, outcome) history. Scheduled independently of the daily
// snapshot pass; the fresh artifact is picked up on the next run.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"market-pulse/internal/logger"
	"market-pulse/internal/predictor"
	"market-pulse/internal/store"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	_ = godotenv.Load()
	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	cfg, err := store.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	db, err := store.OpenDB(cfg.Store.DatabasePath)
	if err != nil {
		log.Fatal(err)
	}

	trainer := predictor.NewTrainer(db, predictor.TrainerConfig{
		MinPairs:        cfg.Retrain.MinPairs,
		HoldoutFraction: cfg.Retrain.HoldoutFraction,
		Seed:            cfg.Retrain.Seed,
		ArtifactPath:    cfg.Predictor.ArtifactPath,
	})

	model, err := trainer.Retrain(ctx)
	if err != nil {
		logger.ErrorWithErr(ctx, "Retraining failed", err)
		log.Fatal(err)
	}
	if model == nil {
		logger.Info(ctx, "Retraining skipped")
		return
	}
	logger.Info(ctx, "Retraining finished", "holdout_accuracy", model.Accuracy)
}
