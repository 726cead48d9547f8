package predictor

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"market-pulse/internal/logger"
	"market-pulse/internal/store"
	"market-pulse/internal/types"
)

const (
	epochs       = 2000
	learningRate = 0.5
)

// PairSource provides the historical (prediction, outcome) pairs.
type PairSource interface {
	TrainingPairs() ([]store.TrainingPair, error)
}

// TrainerConfig controls the retraining pass.
type TrainerConfig struct {
	MinPairs        int
	HoldoutFraction float64
	Seed            int64
	ArtifactPath    string
}

// Trainer refits the trend classifier from realized outcomes.
type Trainer struct {
	source PairSource
	cfg    TrainerConfig
}

func NewTrainer(source PairSource, cfg TrainerConfig) *Trainer {
	return &Trainer{source: source, cfg: cfg}
}

// Retrain joins predictions with realized outcomes and fits a fresh
// classifier. Too few pairs is a skip, not an error: the returned model
// is nil and no artifact is written. The new artifact takes effect on
// the predictor's next run.
func (t *Trainer) Retrain(ctx context.Context) (*Model, error) {
	pairs, err := t.source.TrainingPairs()
	if err != nil {
		return nil, fmt.Errorf("failed to load training pairs: %w", err)
	}

	if len(pairs) < t.cfg.MinPairs {
		logger.Info(ctx, "Not enough training data, skipping retraining",
			"pairs", len(pairs), "min_pairs", t.cfg.MinPairs)
		return nil, nil
	}

	train, holdout := split(pairs, t.cfg.HoldoutFraction, t.cfg.Seed)
	weight, bias := fitLogistic(train)

	model := &Model{
		Weight:    weight,
		Bias:      bias,
		Accuracy:  accuracy(weight, bias, holdout),
		Samples:   len(pairs),
		TrainedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if err := model.Save(t.cfg.ArtifactPath); err != nil {
		return nil, fmt.Errorf("failed to persist classifier artifact: %w", err)
	}

	logger.Info(ctx, "Classifier retrained",
		"pairs", len(pairs),
		"holdout", len(holdout),
		"holdout_accuracy", model.Accuracy,
		"artifact", t.cfg.ArtifactPath)
	return model, nil
}

// split shuffles deterministically and carves off the holdout fraction.
func split(pairs []store.TrainingPair, holdoutFraction float64, seed int64) (train, holdout []store.TrainingPair) {
	shuffled := append([]store.TrainingPair(nil), pairs...)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	holdoutN := int(float64(len(shuffled)) * holdoutFraction)
	if holdoutN < 1 {
		holdoutN = 1
	}
	return shuffled[holdoutN:], shuffled[:holdoutN]
}

// fitLogistic runs full-batch gradient descent on the single feature.
func fitLogistic(train []store.TrainingPair) (weight, bias float64) {
	n := float64(len(train))
	for epoch := 0; epoch < epochs; epoch++ {
		var gradW, gradB float64
		for _, p := range train {
			pred := sigmoid(weight*p.SentimentScore + bias)
			diff := pred - label(p.ActualTrend)
			gradW += diff * p.SentimentScore
			gradB += diff
		}
		weight -= learningRate * gradW / n
		bias -= learningRate * gradB / n
	}
	return weight, bias
}

func accuracy(weight, bias float64, holdout []store.TrainingPair) float64 {
	if len(holdout) == 0 {
		return 0.0
	}
	correct := 0
	m := Model{Weight: weight, Bias: bias}
	for _, p := range holdout {
		if m.Predict(p.SentimentScore) == p.ActualTrend {
			correct++
		}
	}
	return float64(correct) / float64(len(holdout))
}

func label(t types.Trend) float64 {
	if t == types.TrendUp {
		return 1.0
	}
	return 0.0
}
