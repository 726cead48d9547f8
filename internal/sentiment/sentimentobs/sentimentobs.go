package sentimentobs

import (
	"context"

	"market-pulse/internal/interfaces"
	"market-pulse/internal/logger"
	"market-pulse/internal/trace"
	"market-pulse/internal/types"
)

// observableAnalyzer wraps a SentimentAnalyzer with logging & tracing
type observableAnalyzer struct {
	analyzer interfaces.SentimentAnalyzer
}

// Compile-time interface check
var _ interfaces.SentimentAnalyzer = (*observableAnalyzer)(nil)

// Wrap wraps an analyzer with observability middleware
func Wrap(analyzer interfaces.SentimentAnalyzer) interfaces.SentimentAnalyzer {
	return &observableAnalyzer{analyzer: analyzer}
}

func (oa *observableAnalyzer) AnalyzeArticle(ctx context.Context, content string) types.SentimentResult {
	ctx, span := trace.StartSpan(ctx, "sentiment.AnalyzeArticle")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Analyzing article", "chars", len(content))

	result := oa.analyzer.AnalyzeArticle(ctx, content)

	logger.InfoSkip(ctx, 1, "Article analyzed",
		"sentiment", result.Sentiment,
		"keywords", len(result.Keywords),
	)
	return result
}

func (oa *observableAnalyzer) TrendReport(ctx context.Context, keywords []string, score float64) types.TrendReport {
	ctx, span := trace.StartSpan(ctx, "sentiment.TrendReport")
	defer span.End()

	report := oa.analyzer.TrendReport(ctx, keywords, score)

	logger.InfoSkip(ctx, 1, "Trend report generated",
		"title", report.Title,
		"score", score,
	)
	return report
}
