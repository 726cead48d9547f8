package sentiment

import (
	"testing"

	"market-pulse/internal/types"
)

func TestAggregateEmpty(t *testing.T) {
	agg := Aggregate(nil)

	if agg.MeanSentiment != 0.0 {
		t.Errorf("Expected mean 0.0 for empty run, got %f", agg.MeanSentiment)
	}
	if agg.TopKeywords == nil {
		t.Error("Expected empty keyword slice, got nil")
	}
	if len(agg.TopKeywords) != 0 {
		t.Errorf("Expected no keywords, got %d", len(agg.TopKeywords))
	}
}

func TestAggregateMean(t *testing.T) {
	results := []types.SentimentResult{
		{Sentiment: 0.8},
		{Sentiment: -0.2},
		{Sentiment: 0.0},
	}

	agg := Aggregate(results)
	want := (0.8 - 0.2 + 0.0) / 3
	if agg.MeanSentiment != want {
		t.Errorf("Expected mean %f, got %f", want, agg.MeanSentiment)
	}
}

func TestAggregateFailedArticlesDiluteMean(t *testing.T) {
	// Articles whose analysis failed carry 0.0 and still count.
	results := []types.SentimentResult{
		{Sentiment: 1.0},
		{Sentiment: 0.0, Summary: "analysis unavailable"},
	}

	agg := Aggregate(results)
	if agg.MeanSentiment != 0.5 {
		t.Errorf("Expected mean 0.5, got %f", agg.MeanSentiment)
	}
}

func TestAggregateTopKeywords(t *testing.T) {
	results := []types.SentimentResult{
		{Keywords: []string{"fed", "rates", "inflation"}},
		{Keywords: []string{"rates", "earnings", "tech"}},
		{Keywords: []string{"rates", "fed", "oil"}},
	}

	agg := Aggregate(results)
	if len(agg.TopKeywords) != 5 {
		t.Fatalf("Expected 5 keywords, got %d", len(agg.TopKeywords))
	}
	if agg.TopKeywords[0].Keyword != "rates" || agg.TopKeywords[0].Count != 3 {
		t.Errorf("Expected 'rates' x3 first, got %s x%d",
			agg.TopKeywords[0].Keyword, agg.TopKeywords[0].Count)
	}
	if agg.TopKeywords[1].Keyword != "fed" || agg.TopKeywords[1].Count != 2 {
		t.Errorf("Expected 'fed' x2 second, got %s x%d",
			agg.TopKeywords[1].Keyword, agg.TopKeywords[1].Count)
	}
}

func TestAggregateTieBreakByFirstSeen(t *testing.T) {
	results := []types.SentimentResult{
		{Keywords: []string{"alpha", "beta"}},
		{Keywords: []string{"gamma"}},
	}

	agg := Aggregate(results)
	want := []string{"alpha", "beta", "gamma"}
	for i, kw := range want {
		if agg.TopKeywords[i].Keyword != kw {
			t.Errorf("Expected keyword %s at rank %d, got %s", kw, i, agg.TopKeywords[i].Keyword)
		}
	}
}

func TestAggregateKeywordCap(t *testing.T) {
	results := []types.SentimentResult{
		{Keywords: []string{"a", "b", "c"}},
		{Keywords: []string{"d", "e", "f"}},
		{Keywords: []string{"g", "h"}},
	}

	agg := Aggregate(results)
	if len(agg.TopKeywords) != 5 {
		t.Errorf("Expected keyword list capped at 5, got %d", len(agg.TopKeywords))
	}
}
