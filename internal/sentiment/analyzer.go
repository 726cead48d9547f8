// Package sentiment scores news articles and produces the run-level
// sentiment rollup via the Gemini API.
package sentiment

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"google.golang.org/genai"

	"market-pulse/internal/logger"
	"market-pulse/internal/types"
)

const (
	DefaultModel = "gemini-2.0-flash-lite"

	// defaultTimeout bounds each model call so a hung request cannot
	// stall the batch pass.
	defaultTimeout = 30 * time.Second
)

// fallback values used whenever the capability cannot produce a verdict
var (
	analysisUnavailable = types.SentimentResult{
		Sentiment: 0.0,
		Summary:   "analysis unavailable",
		Keywords:  []string{"error"},
	}
	reportUnavailable = types.TrendReport{
		Title:   "Trend analysis unavailable",
		Summary: "Not enough data to generate a trend report.",
	}
)

// Analyzer implements the sentiment/summarization capability. A nil
// underlying client (no API key) is valid: every call then returns the
// defined fallback so the pipeline still completes.
type Analyzer struct {
	client      *genai.Client
	model       string
	maxChars    int
	temperature float32
	timeout     time.Duration
}

// Option configures the analyzer.
type Option func(*Analyzer)

// WithModel sets the model to use.
func WithModel(model string) Option {
	return func(a *Analyzer) {
		if model != "" {
			a.model = model
		}
	}
}

// WithMaxChars bounds the article prefix sent for analysis.
func WithMaxChars(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.maxChars = n
		}
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float32) Option {
	return func(a *Analyzer) { a.temperature = t }
}

// WithTimeout sets the per-call deadline for model requests.
func WithTimeout(d time.Duration) Option {
	return func(a *Analyzer) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// NewAnalyzer creates the analyzer. An empty apiKey yields a disabled
// analyzer rather than an error.
func NewAnalyzer(ctx context.Context, apiKey string, opts ...Option) (*Analyzer, error) {
	a := &Analyzer{
		model:       DefaultModel,
		maxChars:    1500,
		temperature: 0.3,
		timeout:     defaultTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}

	if apiKey == "" {
		logger.Warn(ctx, "No Gemini API key configured, sentiment analysis disabled")
		return a, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	a.client = client
	return a, nil
}

// Enabled reports whether a real model backs this analyzer.
func (a *Analyzer) Enabled() bool { return a.client != nil }

// AnalyzeArticle scores one article body. Never returns an error: any
// failure collapses to the defined fallback so one bad article cannot
// abort the run.
func (a *Analyzer) AnalyzeArticle(ctx context.Context, content string) types.SentimentResult {
	if a.client == nil || content == "" {
		return types.SentimentResult{Sentiment: 0.0, Summary: "analysis unavailable"}
	}

	prompt := a.buildArticlePrompt(content)
	text, err := a.generate(ctx, prompt)
	if err != nil {
		logger.ErrorWithErr(ctx, "Article analysis failed", err)
		return analysisUnavailable
	}

	result, ok := parseSentimentResponse(text)
	if !ok {
		logger.Warn(ctx, "Article analysis returned no parseable lines")
		return analysisUnavailable
	}
	return result
}

// TrendReport produces the analyst rollup for the snapshot.
func (a *Analyzer) TrendReport(ctx context.Context, keywords []string, score float64) types.TrendReport {
	if a.client == nil || len(keywords) == 0 {
		return reportUnavailable
	}

	prompt := buildTrendPrompt(keywords, score)
	text, err := a.generate(ctx, prompt)
	if err != nil {
		logger.ErrorWithErr(ctx, "Trend report generation failed", err)
		report := reportUnavailable
		report.Keywords = keywords
		return report
	}

	report := parseTrendResponse(text)
	report.Keywords = keywords
	return report
}

func (a *Analyzer) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(a.temperature),
		SafetySettings: []*genai.SafetySetting{
			{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockNone},
			{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockNone},
			{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockNone},
			{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockNone},
		},
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return extractText(result)
}

func extractText(result *genai.GenerateContentResponse) (string, error) {
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}

func (a *Analyzer) buildArticlePrompt(content string) string {
	content = truncateOnRuneBoundary(content, a.maxChars)
	return fmt.Sprintf(`Analyze the following financial news article and provide the response strictly in the following format:
SENTIMENT: [A single number between -1.0 and 1.0]
SUMMARY: [A 3-sentence summary]
KEYWORDS: [keyword1], [keyword2], [keyword3]

News Content:
%s`, content)
}

// truncateOnRuneBoundary cuts s to at most max bytes without splitting a
// multi-byte rune mid-sequence.
func truncateOnRuneBoundary(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func buildTrendPrompt(keywords []string, score float64) string {
	return fmt.Sprintf(`As a professional financial analyst, analyze the following data and write a concise market trend report for investors.
- Key Keywords: %s
- Overall Market Sentiment Score: %.3f (closer to 1.0 is positive, closer to -1.0 is negative)

Please strictly adhere to the following format:
TITLE: [An engaging one-sentence title summarizing today's market trend]
SUMMARY: [Analyze the market situation in 2-3 sentences from an expert's perspective, combining the data above. Use a gentle, advisory tone.]`,
		strings.Join(keywords, ", "), score)
}
