package interfaces

import (
	"context"

	"market-pulse/internal/types"
)

// SentimentAnalyzer is the external sentiment/summarization capability.
// Both methods degrade to defined fallback values on any failure; they
// never return an error that could abort the run.
type SentimentAnalyzer interface {
	// AnalyzeArticle scores one article body: sentiment in [-1,1], a short
	// summary and up to three keywords.
	AnalyzeArticle(ctx context.Context, content string) types.SentimentResult

	// TrendReport produces the analyst-style rollup from the run's top
	// keywords and aggregate sentiment score.
	TrendReport(ctx context.Context, keywords []string, score float64) types.TrendReport
}
