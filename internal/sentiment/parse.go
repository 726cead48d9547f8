package sentiment

import (
	"strconv"
	"strings"

	"market-pulse/internal/types"
)

const maxKeywordsPerArticle = 3

// parseSentimentResponse extracts the SENTIMENT/SUMMARY/KEYWORDS lines
// from a model response. Tolerates case and ordering drift. Returns
// ok=false when no recognizable line was found.
func parseSentimentResponse(text string) (types.SentimentResult, bool) {
	result := types.SentimentResult{Summary: "analysis unavailable"}
	found := false

	for _, line := range strings.Split(text, "\n") {
		key, value, ok := splitTaggedLine(line)
		if !ok {
			continue
		}
		switch key {
		case "SENTIMENT":
			fields := strings.Fields(value)
			if len(fields) == 0 {
				continue
			}
			if v, err := strconv.ParseFloat(fields[0], 64); err == nil {
				result.Sentiment = clamp(v, -1.0, 1.0)
				found = true
			}
		case "SUMMARY":
			if value != "" {
				result.Summary = value
				found = true
			}
		case "KEYWORDS":
			result.Keywords = splitKeywords(value, maxKeywordsPerArticle)
			if len(result.Keywords) > 0 {
				found = true
			}
		}
	}
	return result, found
}

// parseTrendResponse extracts the TITLE/SUMMARY lines of a trend report.
func parseTrendResponse(text string) types.TrendReport {
	report := types.TrendReport{
		Title:   "Market trend analysis",
		Summary: "Report generation failed.",
	}
	for _, line := range strings.Split(text, "\n") {
		key, value, ok := splitTaggedLine(line)
		if !ok || value == "" {
			continue
		}
		switch key {
		case "TITLE":
			report.Title = value
		case "SUMMARY":
			report.Summary = value
		}
	}
	return report
}

// splitTaggedLine splits "KEY: value" returning the uppercased key.
func splitTaggedLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", "", false
	}
	key = strings.ToUpper(strings.TrimSpace(strings.Trim(line[:idx], "*# ")))
	value = strings.TrimSpace(line[idx+1:])
	value = strings.Trim(value, "[]")
	return key, value, true
}

func splitKeywords(value string, max int) []string {
	parts := strings.Split(value, ",")
	keywords := make([]string, 0, max)
	for _, p := range parts {
		kw := strings.TrimSpace(strings.Trim(strings.TrimSpace(p), "[]"))
		if kw == "" {
			continue
		}
		keywords = append(keywords, kw)
		if len(keywords) == max {
			break
		}
	}
	return keywords
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
