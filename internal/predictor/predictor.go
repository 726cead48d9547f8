// Package predictor maps the run's aggregate sentiment score to a trend
// label, preferring a feedback-trained classifier over the fixed rule.
package predictor

import (
	"context"

	"market-pulse/internal/interfaces"
	"market-pulse/internal/logger"
	"market-pulse/internal/types"
)

// DefaultThreshold is the canonical rule cutoff: scores strictly above
// it predict up, everything else down.
const DefaultThreshold = 0.1

// RuleBased predicts with a single deterministic cutoff.
type RuleBased struct {
	Threshold float64
}

func NewRuleBased(threshold float64) *RuleBased {
	return &RuleBased{Threshold: threshold}
}

func (r *RuleBased) Predict(score float64) types.Trend {
	if score > r.Threshold {
		return types.TrendUp
	}
	return types.TrendDown
}

func (r *RuleBased) Name() string { return "rule-based" }

// ModelBased delegates to a previously trained classifier.
type ModelBased struct {
	model *Model
}

func NewModelBased(model *Model) *ModelBased {
	return &ModelBased{model: model}
}

func (m *ModelBased) Predict(score float64) types.Trend {
	return m.model.Predict(score)
}

func (m *ModelBased) Name() string { return "model-based" }

// Select picks the predictor for this run: the trained artifact when one
// loads cleanly, else the rule. Selection happens once per run, never
// per call.
func Select(ctx context.Context, artifactPath string, threshold float64) interfaces.TrendPredictor {
	model, err := LoadModel(artifactPath)
	if err != nil {
		logger.Info(ctx, "No trained classifier available, using rule-based predictor",
			"artifact", artifactPath, "reason", err.Error())
		return NewRuleBased(threshold)
	}

	logger.Info(ctx, "Loaded trained classifier",
		"artifact", artifactPath,
		"holdout_accuracy", model.Accuracy,
		"training_samples", model.Samples)
	return NewModelBased(model)
}
