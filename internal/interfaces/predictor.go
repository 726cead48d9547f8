package interfaces

import "market-pulse/internal/types"

// TrendPredictor maps an aggregate sentiment score to a trend label.
// Implementations are selected once per run, not per call.
type TrendPredictor interface {
	Predict(score float64) types.Trend
	Name() string
}
