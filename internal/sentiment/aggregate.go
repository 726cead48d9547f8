package sentiment

import (
	"sort"

	"market-pulse/internal/types"
)

const topKeywordCount = 5

// Aggregate rolls per-article results into the run aggregate: mean
// sentiment (0.0 for an empty run; no signal is not a negative signal)
// and the five most frequent keywords, ties broken by first appearance.
func Aggregate(results []types.SentimentResult) types.SentimentAggregate {
	if len(results) == 0 {
		return types.SentimentAggregate{MeanSentiment: 0.0, TopKeywords: []types.KeywordCount{}}
	}

	total := 0.0
	var keywords []string
	for _, r := range results {
		total += r.Sentiment
		keywords = append(keywords, r.Keywords...)
	}

	return types.SentimentAggregate{
		MeanSentiment: total / float64(len(results)),
		TopKeywords:   topKeywords(keywords, topKeywordCount),
	}
}

// topKeywords ranks keywords by frequency, first-seen order breaking ties.
func topKeywords(keywords []string, n int) []types.KeywordCount {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, kw := range keywords {
		if _, ok := counts[kw]; !ok {
			firstSeen[kw] = i
		}
		counts[kw]++
	}

	ranked := make([]types.KeywordCount, 0, len(counts))
	for kw, c := range counts {
		ranked = append(ranked, types.KeywordCount{Keyword: kw, Count: c})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return firstSeen[ranked[i].Keyword] < firstSeen[ranked[j].Keyword]
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
