package predictor

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"market-pulse/internal/types"
)

// Model is the trained classifier artifact: a logistic regression over
// the single sentiment-score feature. Loaded once per run.
type Model struct {
	Weight    float64 `json:"weight"`
	Bias      float64 `json:"bias"`
	Accuracy  float64 `json:"holdout_accuracy"`
	Samples   int     `json:"training_samples"`
	TrainedAt string  `json:"trained_at"`
}

// Predict maps a sentiment score to a trend via the fitted sigmoid.
func (m *Model) Predict(score float64) types.Trend {
	p := sigmoid(m.Weight*score + m.Bias)
	if p >= 0.5 {
		return types.TrendUp
	}
	return types.TrendDown
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

// LoadModel reads a classifier artifact from path.
func LoadModel(path string) (*Model, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Model
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("failed to decode model artifact: %w", err)
	}
	return &m, nil
}

// Save writes the artifact atomically so a concurrent pipeline run never
// loads a half-written model.
func (m *Model) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create artifact dir: %w", err)
	}

	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode model artifact: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".model-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
