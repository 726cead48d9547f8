// Package pipeline runs the daily snapshot pass: news sentiment, market
// forecasts and the day's trend prediction, merged into one artifact.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"market-pulse/internal/forecast"
	"market-pulse/internal/interfaces"
	"market-pulse/internal/logger"
	"market-pulse/internal/predictor"
	"market-pulse/internal/sentiment"
	"market-pulse/internal/store"
	"market-pulse/internal/types"
)

const dateFormat = "2006-01-02"

// Pipeline wires the run's collaborators together.
type Pipeline struct {
	cfg       *store.Config
	collector interfaces.NewsCollector
	analyzer  interfaces.SentimentAnalyzer
	acquirer  interfaces.SeriesAcquirer
	db        *store.DB
}

func New(cfg *store.Config, collector interfaces.NewsCollector, analyzer interfaces.SentimentAnalyzer,
	acquirer interfaces.SeriesAcquirer, db *store.DB) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		collector: collector,
		analyzer:  analyzer,
		acquirer:  acquirer,
		db:        db,
	}
}

// Run executes one batch pass for runDate and writes the snapshot.
// Collection and acquisition failures degrade to partial data; only the
// final persistence steps can abort the run.
func (p *Pipeline) Run(ctx context.Context, runDate time.Time) (*types.Snapshot, error) {
	op := logger.StartOperation(ctx, "pipeline.Run", "date", runDate.Format(dateFormat))
	ctx = op.GetContext()

	articles, aggregate := p.collectAndScore(ctx)
	report := p.trendReport(ctx, aggregate)
	charts := p.buildCharts(ctx)

	pred := predictor.Select(ctx, p.cfg.Predictor.ArtifactPath, *p.cfg.Predictor.UpThreshold)
	trend := pred.Predict(aggregate.MeanSentiment)
	logger.Info(ctx, "Trend predicted",
		"predictor", pred.Name(),
		"score", aggregate.MeanSentiment,
		"trend", trend)

	date := runDate.Format(dateFormat)
	if err := p.db.UpsertPrediction(date, aggregate.MeanSentiment, trend); err != nil {
		op.EndWithError(err)
		return nil, fmt.Errorf("failed to store prediction: %w", err)
	}

	snap := &types.Snapshot{
		Articles:             articles,
		TrendSummary:         report,
		MarketSentimentScore: aggregate.MeanSentiment,
		PredictedTrend:       trend,
		Charts:               charts,
		LastUpdated:          time.Now().UTC().Format(time.RFC3339),
	}
	if err := store.WriteSnapshot(p.cfg.Store.SnapshotPath, snap); err != nil {
		op.EndWithError(err)
		return nil, fmt.Errorf("failed to write snapshot: %w", err)
	}

	op.End("articles", len(articles), "trend", string(trend))
	return snap, nil
}

// collectAndScore fetches the news batch and scores each article in
// place, returning the articles and the run aggregate.
func (p *Pipeline) collectAndScore(ctx context.Context) ([]types.Article, types.SentimentAggregate) {
	logger.Stage(ctx, "news", "start")

	articles, err := p.collector.Collect(ctx, p.cfg.News.Limit)
	if err != nil {
		// Collector degrades internally; an error here is still non-fatal.
		logger.ErrorWithErr(ctx, "News collection errored, continuing without articles", err)
		articles = nil
	}

	pace := time.Duration(p.cfg.Sentiment.PaceSeconds) * time.Second
	results := make([]types.SentimentResult, 0, len(articles))
	for i := range articles {
		result := p.analyzer.AnalyzeArticle(ctx, articles[i].Description)
		articles[i].Sentiment = result.Sentiment
		articles[i].Summary = result.Summary
		articles[i].Keywords = result.Keywords
		results = append(results, result)

		if i < len(articles)-1 {
			time.Sleep(pace)
		}
	}

	aggregate := sentiment.Aggregate(results)
	logger.Stage(ctx, "news", "done",
		"articles", len(articles), "mean_sentiment", aggregate.MeanSentiment)

	if articles == nil {
		articles = []types.Article{}
	}
	return articles, aggregate
}

func (p *Pipeline) trendReport(ctx context.Context, aggregate types.SentimentAggregate) types.TrendReport {
	keywords := make([]string, 0, len(aggregate.TopKeywords))
	for _, kc := range aggregate.TopKeywords {
		keywords = append(keywords, kc.Keyword)
	}
	return p.analyzer.TrendReport(ctx, keywords, aggregate.MeanSentiment)
}

// buildCharts acquires and forecasts every tracked instrument. An
// instrument with no usable series gets an explicit null entry so the
// serving layer renders a reduced view instead of erroring.
func (p *Pipeline) buildCharts(ctx context.Context) map[string]*types.ForecastSeries {
	logger.Stage(ctx, "market", "start", "instruments", len(p.cfg.Instruments))

	charts := make(map[string]*types.ForecastSeries, len(p.cfg.Instruments))
	for _, inst := range p.cfg.Instruments {
		series := p.acquirer.Acquire(ctx, inst)
		if series == nil {
			charts[inst.ID] = nil
			continue
		}

		fc, err := forecast.Forecast(series, p.cfg.Forecast.HorizonDays)
		if err != nil {
			logger.ErrorWithErr(ctx, "Forecast failed, omitting instrument", err,
				"instrument", inst.ID)
			charts[inst.ID] = nil
			continue
		}
		charts[inst.ID] = fc
	}

	logger.Stage(ctx, "market", "done")
	return charts
}
