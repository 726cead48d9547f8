package types

import "time"

// Trend is the binary market direction label.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// Article is one news item for a single run. Sentiment, Summary and
// Keywords are attached by the analyzer after collection.
type Article struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	ImageURL    string   `json:"image_url,omitempty"`
	PublishedAt string   `json:"published_at"`
	Sentiment   float64  `json:"sentiment"`
	Summary     string   `json:"summary"`
	Keywords    []string `json:"keywords"`
}

// KeywordCount is one entry of the per-run keyword ranking.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// SentimentAggregate is the run-level rollup of per-article results.
type SentimentAggregate struct {
	MeanSentiment float64        `json:"mean_sentiment"`
	TopKeywords   []KeywordCount `json:"top_keywords"`
}

// SentimentResult is the external capability's verdict on one article.
type SentimentResult struct {
	Sentiment float64
	Summary   string
	Keywords  []string
}

// TrendReport is the analyst-style summary generated from the aggregate.
type TrendReport struct {
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	Keywords []string `json:"keywords"`
}

// SeriesPoint is one (calendar date, close price) observation.
type SeriesPoint struct {
	Date  time.Time
	Close float64
}

// Series is the provider-agnostic price series handed to the forecaster.
// Points are strictly ascending by date with no duplicates.
type Series struct {
	InstrumentID string
	Points       []SeriesPoint
}

// ForecastSeries holds a merged historical+forecast series positioned
// against one label axis. Forecast has the same length as Labels with the
// historical positions left nil so both arrays plot against Labels as-is.
type ForecastSeries struct {
	Labels     []string   `json:"labels"`
	Historical []float64  `json:"historical"`
	Forecast   []*float64 `json:"forecast"`
}

// Snapshot is the single run artifact consumed by the serving layer.
type Snapshot struct {
	Articles             []Article                  `json:"articles"`
	TrendSummary         TrendReport                `json:"trend_summary"`
	MarketSentimentScore float64                    `json:"market_sentiment_score"`
	PredictedTrend       Trend                      `json:"predicted_trend"`
	Charts               map[string]*ForecastSeries `json:"charts"`
	LastUpdated          string                     `json:"last_updated"`
}
